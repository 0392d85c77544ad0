package router_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/deppfellow/grubdash/internal/database"
	"github.com/deppfellow/grubdash/internal/errs"
	"github.com/deppfellow/grubdash/internal/handler"
	"github.com/deppfellow/grubdash/internal/middleware"
	"github.com/deppfellow/grubdash/internal/model"
	"github.com/deppfellow/grubdash/internal/repository"
	"github.com/deppfellow/grubdash/internal/router"
	"github.com/deppfellow/grubdash/internal/server"
	"github.com/deppfellow/grubdash/internal/service"
	"github.com/deppfellow/grubdash/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope[T any] struct {
	Data T `json:"data"`
}

func newRouter(t *testing.T) (*echo.Echo, *server.Server) {
	t.Helper()

	s := testutil.NewServer(t)
	repos := repository.NewRepositories(s)
	services := service.NewServices(s, repos)
	return router.NewRouter(s, handler.NewHandlers(s, services)), s
}

func dishBody(fields map[string]any) map[string]any {
	data := map[string]any{
		"name":        "Falafel bagel",
		"description": "A warm bagel filled with falafel",
		"price":       6,
		"image_url":   "https://images.example.com/falafel.jpg",
	}
	for k, v := range fields {
		if v == nil {
			delete(data, k)
			continue
		}
		data[k] = v
	}
	return map[string]any{"data": data}
}

func orderBody(fields map[string]any) map[string]any {
	data := map[string]any{
		"deliverTo":    "Rick Sanchez (C-132)",
		"mobileNumber": "(202) 456-1111",
		"dishes":       []any{map[string]any{"dishId": "d1", "quantity": 2}},
	}
	for k, v := range fields {
		if v == nil {
			delete(data, k)
			continue
		}
		data[k] = v
	}
	return map[string]any{"data": data}
}

func createDish(t *testing.T, e *echo.Echo, fields map[string]any) model.Dish {
	t.Helper()

	rec := testutil.Do(t, e, http.MethodPost, "/dishes", dishBody(fields))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return testutil.Decode[envelope[model.Dish]](t, rec).Data
}

func createOrder(t *testing.T, e *echo.Echo, fields map[string]any) model.Order {
	t.Helper()

	rec := testutil.Do(t, e, http.MethodPost, "/orders", orderBody(fields))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return testutil.Decode[envelope[model.Order]](t, rec).Data
}

func TestDishes_CreateReadList(t *testing.T) {
	e, _ := newRouter(t)

	rec := testutil.Do(t, e, http.MethodGet, "/dishes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	first := createDish(t, e, nil)
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Falafel bagel", first.Name)
	assert.Equal(t, 6, first.Price)

	second := createDish(t, e, map[string]any{"name": "Broccoli stir fry", "price": 15})
	assert.Equal(t, "2", second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	rec = testutil.Do(t, e, http.MethodGet, "/dishes/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, second, testutil.Decode[envelope[model.Dish]](t, rec).Data)

	rec = testutil.Do(t, e, http.MethodGet, "/dishes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []model.Dish{first, second}, testutil.Decode[envelope[[]model.Dish]](t, rec).Data)
}

func TestDishes_CreateValidation(t *testing.T) {
	e, _ := newRouter(t)

	tests := []struct {
		name    string
		fields  map[string]any
		message string
	}{
		{"missing name", map[string]any{"name": nil}, "Dish must include a name"},
		{"empty name", map[string]any{"name": ""}, "Dish must include a name"},
		{"missing description", map[string]any{"description": nil}, "Dish must include a description"},
		{"missing price", map[string]any{"price": nil}, "Dish must include a price"},
		{"missing image_url", map[string]any{"image_url": nil}, "Dish must include a image_url"},
		{"non-string name", map[string]any{"name": 12}, "Dish must include a name"},
		{"zero price", map[string]any{"price": 0}, "Dish must include a price"},
		{"string price", map[string]any{"price": "10"}, "Dish must have a price that is an integer greater than 0"},
		{"negative price", map[string]any{"price": -1}, "Dish must have a price that is an integer greater than 0"},
		{"fractional price", map[string]any{"price": 1.5}, "Dish must have a price that is an integer greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.Do(t, e, http.MethodPost, "/dishes", dishBody(tt.fields))
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := testutil.Decode[errs.HTTPError](t, rec)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, "BAD_REQUEST", body.Code)
			assert.Equal(t, http.StatusBadRequest, body.Status)
			assert.Len(t, body.Errors, 1)
		})
	}

	rec := testutil.Do(t, e, http.MethodGet, "/dishes", nil)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestDishes_MissingDataAndMalformedBody(t *testing.T) {
	e, _ := newRouter(t)

	rec := testutil.Do(t, e, http.MethodPost, "/dishes", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Dish must include a name", testutil.Decode[errs.HTTPError](t, rec).Message)

	rec = testutil.Do(t, e, http.MethodPost, "/dishes", `{"data": {"name": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, http.StatusBadRequest, testutil.Decode[errs.HTTPError](t, rec).Status)
}

func TestDishes_NotFound(t *testing.T) {
	e, _ := newRouter(t)

	rec := testutil.Do(t, e, http.MethodGet, "/dishes/abc-123", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := testutil.Decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Dish id not found: abc-123", body.Message)
	assert.Equal(t, "NOT_FOUND", body.Code)

	// An unknown id wins over an invalid payload.
	rec = testutil.Do(t, e, http.MethodPut, "/dishes/abc-123", dishBody(map[string]any{"price": "nope"}))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, testutil.Decode[errs.HTTPError](t, rec).Message, "abc-123")
}

func TestDishes_Update(t *testing.T) {
	e, _ := newRouter(t)
	dish := createDish(t, e, nil)

	t.Run("overwrites fields", func(t *testing.T) {
		rec := testutil.Do(t, e, http.MethodPut, "/dishes/"+dish.ID, dishBody(map[string]any{
			"name":  "Spicy falafel bagel",
			"price": 7,
		}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		updated := testutil.Decode[envelope[model.Dish]](t, rec).Data
		assert.Equal(t, dish.ID, updated.ID)
		assert.Equal(t, "Spicy falafel bagel", updated.Name)
		assert.Equal(t, 7, updated.Price)
	})

	t.Run("matching payload id is accepted", func(t *testing.T) {
		rec := testutil.Do(t, e, http.MethodPut, "/dishes/"+dish.ID, dishBody(map[string]any{"id": dish.ID}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("empty payload id is ignored", func(t *testing.T) {
		rec := testutil.Do(t, e, http.MethodPut, "/dishes/"+dish.ID, dishBody(map[string]any{"id": ""}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("mismatched payload id leaves the dish unchanged", func(t *testing.T) {
		before := testutil.Do(t, e, http.MethodGet, "/dishes/"+dish.ID, nil).Body.String()

		rec := testutil.Do(t, e, http.MethodPut, "/dishes/"+dish.ID, dishBody(map[string]any{
			"id":   "99",
			"name": "Something else",
		}))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := testutil.Decode[errs.HTTPError](t, rec)
		assert.Equal(t, "Dish id does not match route id. Dish: 99, Route: "+dish.ID, body.Message)
		assert.Equal(t, service.CodeIDMismatch, body.Code)

		after := testutil.Do(t, e, http.MethodGet, "/dishes/"+dish.ID, nil).Body.String()
		assert.JSONEq(t, before, after)
	})

	t.Run("numeric payload id never matches", func(t *testing.T) {
		rec := testutil.Do(t, e, http.MethodPut, "/dishes/"+dish.ID, dishBody(map[string]any{"id": 1}))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := testutil.Decode[errs.HTTPError](t, rec)
		assert.Equal(t, "Dish id does not match route id. Dish: 1, Route: 1", body.Message)
		assert.Equal(t, service.CodeIDMismatch, body.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		rec := testutil.Do(t, e, http.MethodPut, "/dishes/"+dish.ID, dishBody(map[string]any{"description": nil}))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Dish must include a description", testutil.Decode[errs.HTTPError](t, rec).Message)
	})
}

func TestDishes_NoDelete(t *testing.T) {
	e, _ := newRouter(t)
	dish := createDish(t, e, nil)

	rec := testutil.Do(t, e, http.MethodDelete, "/dishes/"+dish.ID, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = testutil.Do(t, e, http.MethodGet, "/dishes/"+dish.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrders_CreateValidation(t *testing.T) {
	e, _ := newRouter(t)

	tests := []struct {
		name    string
		fields  map[string]any
		message string
	}{
		{"missing deliverTo", map[string]any{"deliverTo": nil}, "Order must include a deliverTo"},
		{"missing mobileNumber", map[string]any{"mobileNumber": ""}, "Order must include a mobileNumber"},
		{"missing dishes", map[string]any{"dishes": nil}, "Order must include a dishes"},
		{"empty dishes", map[string]any{"dishes": []any{}}, "Order must include at least on dish"},
		{"dishes not a list", map[string]any{"dishes": "pizza"}, "Order must include at least on dish"},
		{
			"zero quantity names the index",
			map[string]any{"dishes": []any{
				map[string]any{"dishId": "a", "quantity": 1},
				map[string]any{"dishId": "b", "quantity": 0},
			}},
			"Dish 1 must have a quantity that is an integer greater than 0",
		},
		{
			"missing quantity",
			map[string]any{"dishes": []any{map[string]any{"dishId": "a"}}},
			"Dish 0 must have a quantity that is an integer greater than 0",
		},
		{
			"string quantity",
			map[string]any{"dishes": []any{map[string]any{"dishId": "a", "quantity": "2"}}},
			"Dish 0 must have a quantity that is an integer greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.Do(t, e, http.MethodPost, "/orders", orderBody(tt.fields))
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.message, testutil.Decode[errs.HTTPError](t, rec).Message)
		})
	}
}

func TestOrders_CreateStartsPending(t *testing.T) {
	e, _ := newRouter(t)

	order := createOrder(t, e, map[string]any{"status": "delivered"})
	assert.Equal(t, "1", order.ID)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, []model.OrderDish{{DishID: "d1", Quantity: 2}}, order.Dishes)
}

func TestOrders_ListKeepsCreationOrder(t *testing.T) {
	e, _ := newRouter(t)

	var created []model.Order
	for i := range 5 {
		created = append(created, createOrder(t, e, map[string]any{
			"deliverTo": strings.Repeat("x", i+1),
		}))

		rec := testutil.Do(t, e, http.MethodGet, "/orders", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, created, testutil.Decode[envelope[[]model.Order]](t, rec).Data)
	}
}

func TestOrders_UpdateLifecycle(t *testing.T) {
	e, _ := newRouter(t)
	order := createOrder(t, e, nil)
	path := "/orders/" + order.ID

	update := func(status string) model.Order {
		rec := testutil.Do(t, e, http.MethodPut, path, orderBody(map[string]any{"status": status}))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return testutil.Decode[envelope[model.Order]](t, rec).Data
	}

	assert.Equal(t, model.OrderStatusPreparing, update("preparing").Status)
	assert.Equal(t, model.OrderStatusPreparing, update("preparing").Status)

	// Moving backwards is rejected and nothing changes.
	rec := testutil.Do(t, e, http.MethodPut, path, orderBody(map[string]any{
		"status":    "pending",
		"deliverTo": "Elsewhere",
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := testutil.Decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Order status cannot move from preparing to pending", body.Message)
	assert.Equal(t, service.CodeOrderStatusRegression, body.Code)

	assert.Equal(t, model.OrderStatusOutForDelivery, update("out-for-delivery").Status)

	rec = testutil.Do(t, e, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body = testutil.Decode[errs.HTTPError](t, rec)
	assert.Equal(t, "An order cannot be deleted unless it is pending.", body.Message)
	assert.Equal(t, service.CodeOrderNotPending, body.Code)

	rec = testutil.Do(t, e, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored := testutil.Decode[envelope[model.Order]](t, rec).Data
	assert.Equal(t, model.OrderStatusOutForDelivery, stored.Status)
	assert.Equal(t, order.DeliverTo, stored.DeliverTo)
}

func TestOrders_DeliveredStatusRejected(t *testing.T) {
	e, _ := newRouter(t)
	order := createOrder(t, e, nil)
	path := "/orders/" + order.ID

	before := testutil.Do(t, e, http.MethodGet, path, nil).Body.String()

	rec := testutil.Do(t, e, http.MethodPut, path, orderBody(map[string]any{
		"status":    "delivered",
		"deliverTo": "Elsewhere",
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "A delivered order cannot be changed", testutil.Decode[errs.HTTPError](t, rec).Message)

	after := testutil.Do(t, e, http.MethodGet, path, nil).Body.String()
	assert.JSONEq(t, before, after)
}

func TestOrders_SeededDeliveredOrderIsFinal(t *testing.T) {
	e, s := newRouter(t)
	require.NoError(t, s.DB.Load(&database.Seed{Orders: []model.Order{{
		ID:           "done",
		DeliverTo:    "308 Negra Arroyo Lane",
		MobileNumber: "(505) 143-3369",
		Status:       model.OrderStatusDelivered,
		Dishes:       []model.OrderDish{{DishID: "d1", Quantity: 1}},
	}}}))

	rec := testutil.Do(t, e, http.MethodPut, "/orders/done", orderBody(map[string]any{"status": "out-for-delivery"}))
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	body := testutil.Decode[errs.HTTPError](t, rec)
	assert.Equal(t, "A delivered order cannot be changed", body.Message)
	assert.Equal(t, service.CodeOrderDelivered, body.Code)

	rec = testutil.Do(t, e, http.MethodDelete, "/orders/done", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, service.CodeOrderNotPending, testutil.Decode[errs.HTTPError](t, rec).Code)

	rec = testutil.Do(t, e, http.MethodGet, "/orders/done", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stored := testutil.Decode[envelope[model.Order]](t, rec).Data
	assert.Equal(t, model.OrderStatusDelivered, stored.Status)
	assert.Equal(t, "308 Negra Arroyo Lane", stored.DeliverTo)
}

func TestOrders_UpdateValidation(t *testing.T) {
	e, _ := newRouter(t)
	order := createOrder(t, e, nil)
	path := "/orders/" + order.ID

	tests := []struct {
		name    string
		fields  map[string]any
		message string
	}{
		{"missing status", map[string]any{}, "Order must include a status"},
		{"unknown status", map[string]any{"status": "cooking"}, "Order must have a status of pending, preparing, out-for-delivery, delivered"},
		{"non-string status", map[string]any{"status": 3}, "Order must have a status of pending, preparing, out-for-delivery, delivered"},
		{"empty dishes", map[string]any{"status": "pending", "dishes": []any{}}, "Order must include at least on dish"},
		{"id mismatch", map[string]any{"status": "pending", "id": "42"}, "Order id does not match route id. Order: 42, Route: " + order.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.Do(t, e, http.MethodPut, path, orderBody(tt.fields))
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, tt.message, testutil.Decode[errs.HTTPError](t, rec).Message)
		})
	}

	rec := testutil.Do(t, e, http.MethodPut, "/orders/nope", orderBody(map[string]any{"status": "cooking"}))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order id not found: nope", testutil.Decode[errs.HTTPError](t, rec).Message)
}

func TestOrders_DeletePending(t *testing.T) {
	e, _ := newRouter(t)
	keep := createOrder(t, e, nil)
	drop := createOrder(t, e, nil)

	rec := testutil.Do(t, e, http.MethodDelete, "/orders/"+drop.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = testutil.Do(t, e, http.MethodGet, "/orders", nil)
	assert.Equal(t, []model.Order{keep}, testutil.Decode[envelope[[]model.Order]](t, rec).Data)

	rec = testutil.Do(t, e, http.MethodGet, "/orders/"+drop.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = testutil.Do(t, e, http.MethodDelete, "/orders/"+drop.ID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order id not found: "+drop.ID, testutil.Decode[errs.HTTPError](t, rec).Message)
}

func TestUnknownRoute(t *testing.T) {
	e, _ := newRouter(t)

	rec := testutil.Do(t, e, http.MethodGet, "/menus", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := testutil.Decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Route not found", body.Message)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestStatus(t *testing.T) {
	e, s := newRouter(t)
	createDish(t, e, nil)

	rec := testutil.Do(t, e, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := testutil.Decode[handler.HealthResponse](t, rec)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "local", body.Environment)
	assert.Equal(t, 1, body.Checks["database"].Details["dishes"])
	assert.Equal(t, 0, body.Checks["database"].Details["orders"])

	require.NoError(t, s.DB.Close())

	rec = testutil.Do(t, e, http.MethodGet, "/status", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body = testutil.Decode[handler.HealthResponse](t, rec)
	assert.Equal(t, "unhealthy", body.Status)
	assert.NotEmpty(t, body.Checks["database"].Error)
}

func TestRequestIDIsEchoed(t *testing.T) {
	e, _ := newRouter(t)

	req := testutil.Do(t, e, http.MethodGet, "/dishes", nil)
	assert.NotEmpty(t, req.Header().Get(middleware.RequestIDHeader))
}
