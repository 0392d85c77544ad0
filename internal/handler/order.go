package handler

import (
	"net/http"

	"github.com/deppfellow/grubdash/internal/model"
	"github.com/deppfellow/grubdash/internal/server"
	"github.com/deppfellow/grubdash/internal/service"
	"github.com/labstack/echo/v4"
)

// OrderHandler serves /orders.
type OrderHandler struct {
	Handler
	orders *service.OrderService
}

func NewOrderHandler(s *server.Server, orders *service.OrderService) *OrderHandler {
	return &OrderHandler{
		Handler: NewHandler(s),
		orders:  orders,
	}
}

// ListOrders handles GET /orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	return Handle(h.Handler, func(c echo.Context, _ *model.ListOrdersRequest) ([]model.Order, error) {
		return h.orders.List(c.Request().Context())
	}, http.StatusOK)(c)
}

// CreateOrder handles POST /orders. New orders start pending.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateOrderRequest) (*model.Order, error) {
		return h.orders.Create(c.Request().Context(), req.Input())
	}, http.StatusCreated)(c)
}

// GetOrder handles GET /orders/:orderId.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	return HandleFound(h.Handler, h.orders.GetByID, func(_ echo.Context, _ *model.GetOrderRequest, order *model.Order) (*model.Order, error) {
		return order, nil
	}, http.StatusOK)(c)
}

// UpdateOrder handles PUT /orders/:orderId.
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	return HandleFound(h.Handler, h.orders.GetByID, func(c echo.Context, req *model.UpdateOrderRequest, order *model.Order) (*model.Order, error) {
		return h.orders.Update(c.Request().Context(), order, req.PayloadID(), req.Input())
	}, http.StatusOK)(c)
}

// DeleteOrder handles DELETE /orders/:orderId. Only pending orders can be deleted.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	return HandleFoundNoContent(h.Handler, h.orders.GetByID, func(c echo.Context, _ *model.DeleteOrderRequest, order *model.Order) error {
		return h.orders.Delete(c.Request().Context(), order)
	}, http.StatusNoContent)(c)
}
