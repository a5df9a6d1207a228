package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/core/domain"
)

// RequireRole admits only principals holding the named role. Anonymous
// requests fail with 401, authenticated principals without the role with 403.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal.IsAnonymous() {
				return domain.ErrAuthenticationRequired
			}
			if !principal.HasRole(role) {
				return domain.ErrAccessDenied
			}
			return next(c)
		}
	}
}

// RequireAuthenticated admits any non-anonymous principal.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PrincipalFrom(c).IsAnonymous() {
				return domain.ErrAuthenticationRequired
			}
			return next(c)
		}
	}
}
