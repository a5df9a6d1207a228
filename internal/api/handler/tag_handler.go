package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// TagHandler serves tag CRUD and the spend analytics query.
type TagHandler struct {
	tagService ports.TagService
}

func NewTagHandler(tagService ports.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

type createTagRequest struct {
	Name string `json:"name" validate:"required"`
}

type tagResponse struct {
	domain.Tag
	Links selfLinks `json:"_links"`
}

type tagListResponse struct {
	Tags  []tagResponse `json:"tags"`
	Links selfLinks     `json:"_links"`
}

func newTagResponse(tag domain.Tag) tagResponse {
	return tagResponse{Tag: tag, Links: selfLinks{Self: "/tag/" + itoa(tag.ID)}}
}

// GetAll lists tags.
//
// @Summary      List tags
// @Tags         tag
// @Produce      json
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  tagListResponse
// @Failure      400       {object}  errorBody
// @Security     BearerAuth
// @Router       /tag [get]
func (h *TagHandler) GetAll(c echo.Context) error {
	page, err := paginationParams(c)
	if err != nil {
		return err
	}

	tags, err := h.tagService.GetAll(c.Request().Context(), page)
	if err != nil {
		return err
	}

	out := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, newTagResponse(tag))
	}

	return c.JSON(http.StatusOK, tagListResponse{
		Tags:  out,
		Links: selfLinks{Self: c.Request().URL.RequestURI()},
	})
}

// GetByID returns a single tag.
//
// @Summary      Get a tag by id
// @Tags         tag
// @Produce      json
// @Param        id   path      int  true  "Tag id"
// @Success      200  {object}  tagResponse
// @Failure      404  {object}  errorBody
// @Security     BearerAuth
// @Router       /tag/{id} [get]
func (h *TagHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tag, err := h.tagService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newTagResponse(*tag))
}

// Create adds a tag.
//
// @Summary      Create a tag
// @Tags         tag
// @Accept       json
// @Produce      json
// @Param        body  body      createTagRequest  true  "Tag"
// @Success      201   {object}  tagResponse
// @Failure      409   {object}  errorBody
// @Security     BearerAuth
// @Router       /tag [post]
func (h *TagHandler) Create(c echo.Context) error {
	var req createTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	tag, err := h.tagService.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newTagResponse(*tag))
}

// Delete removes a tag and its certificate links.
//
// @Summary      Delete a tag
// @Tags         tag
// @Param        id   path  int  true  "Tag id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Security     BearerAuth
// @Router       /tag/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.tagService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// MostUsed returns the most frequent tag(s) across the orders of the
// highest-spending user(s).
//
// @Summary      Most used tag of the top spender
// @Tags         tag
// @Produce      json
// @Success      200  {object}  tagListResponse
// @Security     BearerAuth
// @Router       /tag/most-used [get]
func (h *TagHandler) MostUsed(c echo.Context) error {
	tags, err := h.tagService.MostUsedTagsOfTopSpender(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]tagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, newTagResponse(tag))
	}

	return c.JSON(http.StatusOK, tagListResponse{
		Tags:  out,
		Links: selfLinks{Self: "/tag/most-used"},
	})
}
