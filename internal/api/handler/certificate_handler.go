package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// CertificateHandler serves the certificate catalog.
type CertificateHandler struct {
	certService ports.CertificateService
}

func NewCertificateHandler(certService ports.CertificateService) *CertificateHandler {
	return &CertificateHandler{certService: certService}
}

type certificateRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       int64    `json:"price"       validate:"required,gt=0"`
	Duration    int64    `json:"duration"    validate:"required,gt=0"`
	Tags        []string `json:"tags"`
}

// patchCertificateRequest mirrors ports.CertificatePatch on the wire.
// Absent keys stay nil and are not applied; unknown keys are dropped by the
// decoder.
type patchCertificateRequest struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	Price          *int64  `json:"price"`
	Duration       *int64  `json:"duration"`
	CreateDate     *string `json:"createDate"`
	LastUpdateDate *string `json:"lastUpdateDate"`
}

type certificateResponse struct {
	domain.GiftCertificate
	Links selfLinks `json:"_links"`
}

type certificateListResponse struct {
	Certificates []certificateResponse `json:"giftCertificates"`
	Links        selfLinks             `json:"_links"`
}

func newCertificateResponse(cert domain.GiftCertificate) certificateResponse {
	return certificateResponse{
		GiftCertificate: cert,
		Links:           selfLinks{Self: "/gift/" + itoa(cert.ID)},
	}
}

// GetAll lists certificates with optional filters and sorting.
//
// @Summary      List gift certificates
// @Tags         gift
// @Produce      json
// @Param        tagName      query     string  false  "Filter by tag name"
// @Param        name         query     string  false  "Substring filter on name"
// @Param        description  query     string  false  "Substring filter on description"
// @Param        sortBy       query     string  false  "name or createDate, prefix with - for descending"
// @Param        page         query     int     false  "Page number"
// @Param        pageSize     query     int     false  "Page size"
// @Success      200          {object}  certificateListResponse
// @Failure      400          {object}  errorBody
// @Router       /gift [get]
func (h *CertificateHandler) GetAll(c echo.Context) error {
	page, err := paginationParams(c)
	if err != nil {
		return err
	}

	filter, err := certificateFilter(c)
	if err != nil {
		return err
	}

	certs, err := h.certService.GetAll(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}

	out := make([]certificateResponse, 0, len(certs))
	for _, cert := range certs {
		out = append(out, newCertificateResponse(cert))
	}

	return c.JSON(http.StatusOK, certificateListResponse{
		Certificates: out,
		Links:        selfLinks{Self: c.Request().URL.RequestURI()},
	})
}

// GetByID returns a single certificate.
//
// @Summary      Get a gift certificate by id
// @Tags         gift
// @Produce      json
// @Param        id   path      int  true  "Certificate id"
// @Success      200  {object}  certificateResponse
// @Failure      404  {object}  errorBody
// @Router       /gift/{id} [get]
func (h *CertificateHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cert, err := h.certService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCertificateResponse(*cert))
}

// Create adds a certificate, creating any unknown tags.
//
// @Summary      Create a gift certificate
// @Tags         gift
// @Accept       json
// @Produce      json
// @Param        body  body      certificateRequest  true  "Certificate"
// @Success      201   {object}  certificateResponse
// @Failure      400   {object}  errorBody
// @Security     BearerAuth
// @Router       /gift [post]
func (h *CertificateHandler) Create(c echo.Context) error {
	var req certificateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	cert, err := h.certService.Create(c.Request().Context(), ports.CreateCertificateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newCertificateResponse(*cert))
}

// Update replaces every updatable field of a certificate.
//
// @Summary      Replace a gift certificate
// @Tags         gift
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "Certificate id"
// @Param        body  body      certificateRequest  true  "Certificate"
// @Success      200   {object}  certificateResponse
// @Failure      404   {object}  errorBody
// @Security     BearerAuth
// @Router       /gift/{id} [put]
func (h *CertificateHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req certificateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	cert, err := h.certService.Update(c.Request().Context(), id, ports.CreateCertificateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCertificateResponse(*cert))
}

// Patch applies a partial update. Only keys present in the body change; an
// empty body is a no-op returning the current state.
//
// @Summary      Patch a gift certificate
// @Tags         gift
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "Certificate id"
// @Param        body  body      patchCertificateRequest  true  "Fields to change"
// @Success      200   {object}  certificateResponse
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Security     BearerAuth
// @Router       /gift/{id} [patch]
func (h *CertificateHandler) Patch(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req patchCertificateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cert, err := h.certService.Patch(c.Request().Context(), id, ports.CertificatePatch{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Duration:       req.Duration,
		CreateDate:     req.CreateDate,
		LastUpdateDate: req.LastUpdateDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newCertificateResponse(*cert))
}

// Delete removes a certificate.
//
// @Summary      Delete a gift certificate
// @Tags         gift
// @Param        id   path  int  true  "Certificate id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Security     BearerAuth
// @Router       /gift/{id} [delete]
func (h *CertificateHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.certService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// certificateFilter reads the listing filters. sortBy accepts "name" and
// "createDate", optionally prefixed with "-" for descending order.
func certificateFilter(c echo.Context) (ports.CertificateFilter, error) {
	filter := ports.CertificateFilter{
		TagName:     c.QueryParam("tagName"),
		Name:        c.QueryParam("name"),
		Description: c.QueryParam("description"),
	}

	sortBy := c.QueryParam("sortBy")
	if sortBy == "" {
		return filter, nil
	}
	if sortBy[0] == '-' {
		filter.Descending = true
		sortBy = sortBy[1:]
	}
	switch sortBy {
	case "name", "createDate":
		filter.SortBy = sortBy
	default:
		return ports.CertificateFilter{}, domain.ValidationError{
			Field:  "sortBy",
			Reason: "must be name or createDate",
		}
	}
	return filter, nil
}
