package router

import (
	"github.com/deppfellow/grubdash/internal/handler"
	"github.com/labstack/echo/v4"
)

// Dishes have no delete.
func registerDishRoutes(r *echo.Echo, h *handler.Handlers) {
	dishes := r.Group("/dishes")

	dishes.GET("", h.Dish.ListDishes)
	dishes.POST("", h.Dish.CreateDish)
	dishes.GET("/:dishId", h.Dish.GetDish)
	dishes.PUT("/:dishId", h.Dish.UpdateDish)
}
