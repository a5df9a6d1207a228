package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
	"github.com/giftvault/catalog-api/internal/pkg/hash"
	"github.com/giftvault/catalog-api/internal/pkg/token"
)

// dummyDigest is verified against when the login does not exist, so unknown
// logins and wrong passwords take comparable time.
const dummyDigest = "$2a$12$wtSkxmYqBYf0HhJzKQ9eUOFGvQYyUzXG0reapnS0NGJ1l2l8lVVfa"

// AuthService implements login and registration. Password hashing happens
// outside any transaction; bcrypt is deliberately slow and must not extend
// database lock lifetimes.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	audit  ports.AuditRecorder
	feed   ports.AuditFeed
	tx     ports.TxManager
	hasher *hash.Hasher
	tokens *token.Provider
	log    zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	audit ports.AuditRecorder,
	feed ports.AuditFeed,
	tx ports.TxManager,
	hasher *hash.Hasher,
	tokens *token.Provider,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		audit:  audit,
		feed:   feed,
		tx:     tx,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

// Login verifies credentials and mints a bearer token. Unknown login and
// wrong password produce the identical domain.ErrAuthenticationFailed so
// callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, login, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		var notFound domain.NotFoundError
		if errors.As(err, &notFound) {
			// burn the same bcrypt cost as a real verification
			s.hasher.Verify(password, dummyDigest)
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrAuthenticationFailed
	}

	tokenString, expiresAt, err := s.tokens.Issue(user.Login, user.RoleNames())
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("login", user.Login).Msg("user authenticated")
	return &ports.LoginResult{Login: user.Login, Token: tokenString, ExpiresAt: expiresAt}, nil
}

// Register creates an account with ROLE_USER assigned. A missing ROLE_USER
// row is broken deployment state, not user error.
func (s *AuthService) Register(ctx context.Context, login, password string) (*domain.User, error) {
	if login == "" {
		return nil, domain.RequiredFieldError{Field: "login"}
	}
	if password == "" {
		return nil, domain.RequiredFieldError{Field: "password"}
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Login: login, PasswordHash: digest}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		role, err := s.roles.FindByName(ctx, domain.RoleUser)
		if err != nil {
			var notFound domain.NotFoundError
			if errors.As(err, &notFound) {
				return domain.ConfigurationError{Detail: "built-in role ROLE_USER is missing"}
			}
			return err
		}
		user.Roles = []domain.Role{*role}

		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
		return s.audit.Record(ctx, domain.OpPersist, *user)
	})
	if err != nil {
		return nil, err
	}

	notify(s.feed, domain.OpPersist, *user)
	s.log.Info().Str("login", user.Login).Msg("user registered")
	return user, nil
}
