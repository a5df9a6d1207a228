package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/api/metrics"
	"github.com/giftvault/catalog-api/internal/api/middleware"
	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// OrderHandler serves order placement and retrieval.
type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type placeOrderRequest struct {
	CertificateID int64 `json:"certificateId" validate:"required,gt=0"`
}

type orderResponse struct {
	domain.UserOrder
	Links selfLinks `json:"_links"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"userOrders"`
	Links  selfLinks       `json:"_links"`
}

func newOrderResponse(order domain.UserOrder) orderResponse {
	return orderResponse{UserOrder: order, Links: selfLinks{Self: "/userOrder/" + itoa(order.ID)}}
}

// Place creates an order for the authenticated user.
//
// @Summary      Place an order
// @Tags         userOrder
// @Accept       json
// @Produce      json
// @Param        body  body      placeOrderRequest  true  "Certificate to buy"
// @Success      201   {object}  orderResponse
// @Failure      404   {object}  errorBody
// @Security     BearerAuth
// @Router       /userOrder [post]
func (h *OrderHandler) Place(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	principal := middleware.PrincipalFrom(c)
	order, err := h.orderService.Place(c.Request().Context(), principal.Login, req.CertificateID)
	if err != nil {
		return err
	}
	metrics.OrdersPlacedTotal.Inc()

	return c.JSON(http.StatusCreated, newOrderResponse(*order))
}

// GetAll lists orders, optionally restricted to one user via ?userId=.
//
// @Summary      List orders
// @Tags         userOrder
// @Produce      json
// @Param        userId    query     int  false  "Restrict to one user"
// @Param        page      query     int  false  "Page number"
// @Param        pageSize  query     int  false  "Page size"
// @Success      200       {object}  orderListResponse
// @Failure      400       {object}  errorBody
// @Security     BearerAuth
// @Router       /userOrder [get]
func (h *OrderHandler) GetAll(c echo.Context) error {
	page, err := paginationParams(c)
	if err != nil {
		return err
	}

	var orders []domain.UserOrder
	if raw := c.QueryParam("userId"); raw != "" {
		userID, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil {
			return domain.ValidationError{Field: "userId", Reason: "must be an integer"}
		}
		orders, err = h.orderService.GetByUser(c.Request().Context(), userID, page)
	} else {
		orders, err = h.orderService.GetAll(c.Request().Context(), page)
	}
	if err != nil {
		return err
	}

	out := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, newOrderResponse(order))
	}

	return c.JSON(http.StatusOK, orderListResponse{
		Orders: out,
		Links:  selfLinks{Self: c.Request().URL.RequestURI()},
	})
}

// GetByID returns a single order.
//
// @Summary      Get an order by id
// @Tags         userOrder
// @Produce      json
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  orderResponse
// @Failure      404  {object}  errorBody
// @Security     BearerAuth
// @Router       /userOrder/{id} [get]
func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, newOrderResponse(*order))
}

// Delete removes an order.
//
// @Summary      Delete an order
// @Tags         userOrder
// @Param        id   path  int  true  "Order id"
// @Success      204
// @Failure      404  {object}  errorBody
// @Security     BearerAuth
// @Router       /userOrder/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.orderService.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
