package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/pkg/hash"
	"github.com/giftvault/catalog-api/internal/pkg/token"
)

func newAuthFixture(users *stubUserRepo, roles *stubRoleRepo, audit *stubAudit, feed *stubFeed) *AuthService {
	return NewAuthService(
		users, roles, audit, feed, &stubTx{},
		hash.NewHasher(hash.MinCost),
		token.NewProvider("test-secret", time.Hour),
		testLog,
	)
}

func TestAuthService_Login_Success(t *testing.T) {
	hasher := hash.NewHasher(hash.MinCost)
	digest, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	users := &stubUserRepo{
		findByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			if login != "alice" {
				t.Fatalf("unexpected login %q", login)
			}
			return &domain.User{
				ID:           1,
				Login:        "alice",
				PasswordHash: digest,
				Roles:        []domain.Role{{ID: 1, Name: domain.RoleUser}},
			}, nil
		},
	}
	svc := newAuthFixture(users, nil, nil, nil)

	result, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Login != "alice" || result.Token == "" {
		t.Fatalf("unexpected result: %+v", result)
	}

	tokens := token.NewProvider("test-secret", time.Hour)
	principal, err := tokens.Validate(result.Token)
	if err != nil {
		t.Fatalf("token not valid: %v", err)
	}
	if !principal.HasRole(domain.RoleUser) {
		t.Fatalf("token lost roles: %+v", principal)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hasher := hash.NewHasher(hash.MinCost)
	digest, _ := hasher.Hash("s3cret")

	users := &stubUserRepo{
		findByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			return &domain.User{ID: 1, Login: "alice", PasswordHash: digest}, nil
		},
	}
	svc := newAuthFixture(users, nil, nil, nil)

	_, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestAuthService_Login_UnknownUserSameError(t *testing.T) {
	users := &stubUserRepo{
		findByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			return nil, domain.NotFoundError{Resource: domain.ResourceUser}
		},
	}
	svc := newAuthFixture(users, nil, nil, nil)

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}

func TestAuthService_Register_AssignsUserRoleAndAudits(t *testing.T) {
	var created *domain.User
	users := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			user.ID = 10
			created = user
			return nil
		},
	}
	roles := &stubRoleRepo{
		findByNameFn: func(ctx context.Context, name string) (*domain.Role, error) {
			if name != domain.RoleUser {
				t.Fatalf("unexpected role lookup %q", name)
			}
			return &domain.Role{ID: 1, Name: domain.RoleUser}, nil
		},
	}
	audit := &stubAudit{}
	feed := &stubFeed{}
	svc := newAuthFixture(users, roles, audit, feed)

	user, err := svc.Register(context.Background(), "bob", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created == nil || user.ID != 10 {
		t.Fatalf("user not persisted: %+v", user)
	}
	if len(user.Roles) != 1 || user.Roles[0].Name != domain.RoleUser {
		t.Fatalf("expected ROLE_USER assigned, got %+v", user.Roles)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password stored as plaintext")
	}

	if len(audit.records) != 1 || audit.records[0].op != domain.OpPersist {
		t.Fatalf("expected one PERSIST audit record, got %+v", audit.records)
	}
	if len(feed.events) != 1 || feed.events[0].Kind != domain.KindUser {
		t.Fatalf("expected one post-commit user event, got %+v", feed.events)
	}
}

func TestAuthService_Register_MissingCredentials(t *testing.T) {
	svc := newAuthFixture(nil, nil, nil, nil)

	var required domain.RequiredFieldError
	_, err := svc.Register(context.Background(), "", "s3cret")
	if !errors.As(err, &required) || required.Field != "login" {
		t.Fatalf("expected required login error, got %v", err)
	}

	_, err = svc.Register(context.Background(), "bob", "")
	if !errors.As(err, &required) || required.Field != "password" {
		t.Fatalf("expected required password error, got %v", err)
	}
}

func TestAuthService_Register_MissingBuiltinRole(t *testing.T) {
	roles := &stubRoleRepo{
		findByNameFn: func(ctx context.Context, name string) (*domain.Role, error) {
			return nil, domain.NotFoundError{Resource: domain.ResourceRole}
		},
	}
	feed := &stubFeed{}
	svc := newAuthFixture(nil, roles, nil, feed)

	_, err := svc.Register(context.Background(), "bob", "s3cret")
	var confErr domain.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if len(feed.events) != 0 {
		t.Fatalf("no event expected on failure, got %+v", feed.events)
	}
}

func TestAuthService_Register_DuplicateLogin(t *testing.T) {
	users := &stubUserRepo{
		createFn: func(ctx context.Context, user *domain.User) error {
			return domain.AlreadyExistsError{Resource: domain.ResourceUser}
		},
	}
	roles := &stubRoleRepo{
		findByNameFn: func(ctx context.Context, name string) (*domain.Role, error) {
			return &domain.Role{ID: 1, Name: domain.RoleUser}, nil
		},
	}
	audit := &stubAudit{}
	feed := &stubFeed{}
	svc := newAuthFixture(users, roles, audit, feed)

	_, err := svc.Register(context.Background(), "bob", "s3cret")
	var exists domain.AlreadyExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("expected AlreadyExistsError, got %v", err)
	}
	if len(audit.records) != 0 || len(feed.events) != 0 {
		t.Fatal("failed registration must not journal or notify")
	}
}
