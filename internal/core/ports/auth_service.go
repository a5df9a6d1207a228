package ports

import (
	"context"
	"time"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Login     string
	Token     string
	ExpiresAt time.Time
}

// AuthService implements credential checking and account registration.
type AuthService interface {
	// Login verifies credentials and mints a bearer token. Unknown login and
	// wrong password both fail with domain.ErrAuthenticationFailed.
	Login(ctx context.Context, login, password string) (*LoginResult, error)

	// Register creates an account with ROLE_USER assigned.
	Register(ctx context.Context, login, password string) (*domain.User, error)
}
