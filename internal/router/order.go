package router

import (
	"github.com/deppfellow/grubdash/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerOrderRoutes(r *echo.Echo, h *handler.Handlers) {
	orders := r.Group("/orders")

	orders.GET("", h.Order.ListOrders)
	orders.POST("", h.Order.CreateOrder)
	orders.GET("/:orderId", h.Order.GetOrder)
	orders.PUT("/:orderId", h.Order.UpdateOrder)
	orders.DELETE("/:orderId", h.Order.DeleteOrder)
}
