package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/api/metrics"
	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Login string `json:"login"`
	Token string `json:"token"`
}

type registerRequest struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	domain.User
	Links selfLinks `json:"_links"`
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorBody
// @Router       /user/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{Login: result.Login, Token: result.Token})
}

// Register creates a new account with ROLE_USER assigned.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "New account"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /user [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newUserResponse(*user))
}

func newUserResponse(user domain.User) userResponse {
	return userResponse{
		User:  user,
		Links: selfLinks{Self: "/user/" + itoa(user.ID)},
	}
}
