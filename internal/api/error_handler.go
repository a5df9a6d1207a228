package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/pkg/i18n"
)

// errorResponse is the canonical error envelope for all API errors.
// errorCode follows the httpStatus*100+kind convention, e.g. 40101 for
// authentication failures and 40403 for a missing user.
type errorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    int    `json:"errorCode"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their status and error code.
//   - Resolves the message from the locale catalog (cookie or ?locale=).
//   - Logs unexpected errors internally without leaking details.
func NewHTTPErrorHandler(catalog *i18n.Catalog, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, message := resolveError(err, catalog, requestLocale(c), log, c)
		_ = c.JSON(status, errorResponse{ErrorMessage: message, ErrorCode: code})
	}
}

// requestLocale picks the message locale: cookie first, then query
// parameter. Unknown locales fall back inside the catalog.
func requestLocale(c echo.Context) string {
	if cookie, err := c.Cookie("locale"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return c.QueryParam("locale")
}

func resolveError(err error, catalog *i18n.Catalog, locale string, log zerolog.Logger, c echo.Context) (int, int, string) {
	// Echo's own errors (404 from the router, method not allowed, bind
	// failures) keep their status with a bare status*100 code.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, he.Code * 100, fmt.Sprintf("%v", he.Message)
	}

	var (
		notFound      domain.NotFoundError
		alreadyExists domain.AlreadyExistsError
		requiredField domain.RequiredFieldError
		validation    domain.ValidationError
		configuration domain.ConfigurationError
	)

	switch {
	case errors.Is(err, domain.ErrAuthenticationFailed),
		errors.Is(err, domain.ErrAuthenticationRequired):
		return http.StatusUnauthorized, 40101, catalog.Message(locale, "error.authentication")

	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, 40301, catalog.Message(locale, "error.forbidden")

	case errors.As(err, &notFound):
		code := http.StatusNotFound*100 + domain.ResourceCode(notFound.Resource)
		return http.StatusNotFound, code, catalog.Message(locale, "error.notFound."+notFound.Resource)

	case errors.As(err, &alreadyExists):
		return http.StatusConflict, 40901, catalog.Message(locale, "error.alreadyExists")

	case errors.As(err, &requiredField):
		return http.StatusBadRequest, 40001, catalog.Message(locale, "error.requiredField", requiredField.Field)

	case errors.As(err, &validation):
		return http.StatusBadRequest, 40002, catalog.Message(locale, "error.validation", validation.Field, validation.Reason)

	case errors.Is(err, domain.ErrPaginationInvalid):
		return http.StatusBadRequest, 40003, catalog.Message(locale, "error.pagination")

	case errors.As(err, &configuration), errors.Is(err, domain.ErrEntityNotAuditable):
		// internal kinds: operator log only, generic body
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("internal error")
		return http.StatusInternalServerError, 50000, catalog.Message(locale, "error.internal")
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, 50000, catalog.Message(locale, "error.internal")
}
