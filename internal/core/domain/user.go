package domain

// Built-in role names. New accounts always receive RoleUser; RoleAdmin is
// assigned out of band.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Role is a named authorization grant.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User models an account. PasswordHash is the bcrypt digest and never
// leaves the process boundary.
type User struct {
	ID           int64  `json:"id"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"`
	Roles        []Role `json:"roles"`
}

// RoleNames returns the names of the user's roles in declaration order.
func (u User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}
