package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/core/ports"
)

// UserHandler serves account listing, lookup and removal, plus the role
// catalog.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type userListResponse struct {
	Users []userResponse `json:"users"`
	Links selfLinks      `json:"_links"`
}

type roleListResponse struct {
	Roles []roleResponse `json:"roles"`
	Links selfLinks      `json:"_links"`
}

type roleResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GetAll lists accounts.
//
// @Summary      List users
// @Tags         user
// @Produce      json
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  userListResponse
// @Failure      400       {object}  errorBody
// @Security     BearerAuth
// @Router       /user [get]
func (h *UserHandler) GetAll(c echo.Context) error {
	page, err := paginationParams(c)
	if err != nil {
		return err
	}

	users, err := h.userService.GetAll(c.Request().Context(), page)
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, user := range users {
		out = append(out, newUserResponse(user))
	}

	return c.JSON(http.StatusOK, userListResponse{
		Users: out,
		Links: selfLinks{Self: c.Request().URL.RequestURI()},
	})
}

// GetByID returns a single account.
//
// @Summary      Get a user by id
// @Tags         user
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorBody
// @Security     BearerAuth
// @Router       /user/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newUserResponse(*user))
}

// Delete removes an account.
//
// @Summary      Delete a user
// @Tags         user
// @Param        id   path  int  true  "User id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Security     BearerAuth
// @Router       /user/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetRoles lists the role catalog.
//
// @Summary      List roles
// @Tags         role
// @Produce      json
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  roleListResponse
// @Security     BearerAuth
// @Router       /role [get]
func (h *UserHandler) GetRoles(c echo.Context) error {
	page, err := paginationParams(c)
	if err != nil {
		return err
	}

	roles, err := h.userService.GetRoles(c.Request().Context(), page)
	if err != nil {
		return err
	}

	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleResponse{ID: role.ID, Name: role.Name})
	}

	return c.JSON(http.StatusOK, roleListResponse{
		Roles: out,
		Links: selfLinks{Self: c.Request().URL.RequestURI()},
	})
}
