package handler

import (
	"net/http"

	"github.com/deppfellow/grubdash/internal/model"
	"github.com/deppfellow/grubdash/internal/server"
	"github.com/deppfellow/grubdash/internal/service"
	"github.com/labstack/echo/v4"
)

// DishHandler serves /dishes.
type DishHandler struct {
	Handler
	dishes *service.DishService
}

func NewDishHandler(s *server.Server, dishes *service.DishService) *DishHandler {
	return &DishHandler{
		Handler: NewHandler(s),
		dishes:  dishes,
	}
}

// ListDishes handles GET /dishes.
func (h *DishHandler) ListDishes(c echo.Context) error {
	return Handle(h.Handler, func(c echo.Context, _ *model.ListDishesRequest) ([]model.Dish, error) {
		return h.dishes.List(c.Request().Context())
	}, http.StatusOK)(c)
}

// CreateDish handles POST /dishes.
func (h *DishHandler) CreateDish(c echo.Context) error {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateDishRequest) (*model.Dish, error) {
		return h.dishes.Create(c.Request().Context(), req.Input())
	}, http.StatusCreated)(c)
}

// GetDish handles GET /dishes/:dishId.
func (h *DishHandler) GetDish(c echo.Context) error {
	return HandleFound(h.Handler, h.dishes.GetByID, func(_ echo.Context, _ *model.GetDishRequest, dish *model.Dish) (*model.Dish, error) {
		return dish, nil
	}, http.StatusOK)(c)
}

// UpdateDish handles PUT /dishes/:dishId.
func (h *DishHandler) UpdateDish(c echo.Context) error {
	return HandleFound(h.Handler, h.dishes.GetByID, func(c echo.Context, req *model.UpdateDishRequest, dish *model.Dish) (*model.Dish, error) {
		return h.dishes.Update(c.Request().Context(), dish, req.PayloadID(), req.Input())
	}, http.StatusOK)(c)
}
