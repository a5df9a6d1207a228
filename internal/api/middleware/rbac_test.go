package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

func contextWithPrincipal(principal domain.Principal) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/tag", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.Set(principalKey, principal)
	return c
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		role      string
		wantErr   error
	}{
		{
			name:      "anonymous gets 401",
			principal: domain.Anonymous,
			role:      domain.RoleUser,
			wantErr:   domain.ErrAuthenticationRequired,
		},
		{
			name:      "missing role gets 403",
			principal: domain.Principal{Login: "alice", Roles: []string{domain.RoleUser}},
			role:      domain.RoleAdmin,
			wantErr:   domain.ErrAccessDenied,
		},
		{
			name:      "matching role passes",
			principal: domain.Principal{Login: "alice", Roles: []string{domain.RoleUser}},
			role:      domain.RoleUser,
		},
		{
			name:      "admin with both roles passes user gate",
			principal: domain.Principal{Login: "admin", Roles: []string{domain.RoleUser, domain.RoleAdmin}},
			role:      domain.RoleUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := contextWithPrincipal(tt.principal)

			err := RequireRole(tt.role)(func(c echo.Context) error {
				return nil
			})(c)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRequireAuthenticated(t *testing.T) {
	c := contextWithPrincipal(domain.Anonymous)
	err := RequireAuthenticated()(func(c echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}

	c = contextWithPrincipal(domain.Principal{Login: "alice", Roles: []string{domain.RoleUser}})
	if err := RequireAuthenticated()(func(c echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
