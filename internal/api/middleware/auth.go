package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/pkg/token"
)

const principalKey = "principal"

const bearerPrefix = "Bearer "

// Auth binds a Principal for the lifetime of the request. A missing or
// non-Bearer Authorization header means anonymous and the request proceeds;
// a Bearer token that fails validation stops the request with 401 before any
// authorization rule runs. The middleware is stateless and never touches
// the database.
func Auth(tokens *token.Provider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, bearerPrefix) {
				c.Set(principalKey, domain.Anonymous)
				return next(c)
			}

			principal, err := tokens.Validate(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				return errors.Join(domain.ErrAuthenticationFailed, err)
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal bound by Auth, or Anonymous when the
// middleware did not run.
func PrincipalFrom(c echo.Context) domain.Principal {
	principal, _ := c.Get(principalKey).(domain.Principal)
	return principal
}
