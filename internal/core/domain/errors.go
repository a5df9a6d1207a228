package domain

import (
	"errors"
	"fmt"
)

// Resource names used in error codes and message lookups.
const (
	ResourceTag         = "Tag"
	ResourceCertificate = "GiftCertificate"
	ResourceUser        = "User"
	ResourceOrder       = "UserOrder"
	ResourceRole        = "Role"
)

// ResourceCode returns the per-resource suffix appended to the HTTP status
// when building error codes (e.g. 404 + Tag → 40401).
func ResourceCode(resource string) int {
	switch resource {
	case ResourceTag:
		return 1
	case ResourceCertificate:
		return 2
	case ResourceUser:
		return 3
	case ResourceOrder:
		return 4
	case ResourceRole:
		return 5
	default:
		return 0
	}
}

var (
	// ErrAuthenticationFailed covers both unknown login and wrong password;
	// callers must not be able to tell the two apart.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAuthenticationRequired is raised when a protected route is reached
	// without a principal.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrAccessDenied is raised when the principal lacks the required role.
	ErrAccessDenied = errors.New("access denied")

	// ErrPaginationInvalid is raised for non-positive page or pageSize values.
	ErrPaginationInvalid = errors.New("invalid pagination parameters")

	// ErrEntityNotAuditable marks a programming error: an entity of an
	// unjournaled kind reached the audit recorder. Never user-visible.
	ErrEntityNotAuditable = errors.New("entity is not auditable")
)

// NotFoundError reports a missing resource of a specific kind.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// AlreadyExistsError reports a uniqueness conflict on creation.
type AlreadyExistsError struct {
	Resource string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Resource)
}

// RequiredFieldError reports a missing mandatory field.
type RequiredFieldError struct {
	Field string
}

func (e RequiredFieldError) Error() string {
	return fmt.Sprintf("required field missing: %s", e.Field)
}

// ValidationError reports a present but invalid field value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports broken deployment state, such as a missing
// built-in role. Surfaces as a generic 500.
type ConfigurationError struct {
	Detail string
}

func (e ConfigurationError) Error() string {
	return "configuration error: " + e.Detail
}
