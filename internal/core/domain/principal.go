package domain

// Principal is the per-request identity produced by the auth middleware.
// The zero value is the anonymous principal.
type Principal struct {
	Login string
	Roles []string
}

// Anonymous is the principal bound to requests without credentials.
var Anonymous = Principal{}

// IsAnonymous reports whether the principal carries no identity.
func (p Principal) IsAnonymous() bool {
	return p.Login == ""
}

// HasRole reports whether the principal holds the named role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
