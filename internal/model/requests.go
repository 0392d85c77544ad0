package model

import (
	"strings"

	"github.com/deppfellow/grubdash/internal/validation"
)

// ---- Rule sets --------------------------------------------------------------

var dishSchema = validation.Schema{
	Resource: "Dish",
	Required: []string{"name", "description", "price", "image_url"},
	Text:     []string{"name", "description", "image_url"},
	Positive: []validation.Numeric{
		{Field: "price", Message: "Dish must have a price that is an integer greater than 0"},
	},
}

var orderDishes = validation.List{
	Field:   "dishes",
	Message: "Order must include at least on dish",
	Items: []validation.Numeric{
		{Field: "quantity", Message: "Dish %d must have a quantity that is an integer greater than 0"},
	},
}

var createOrderSchema = validation.Schema{
	Resource: "Order",
	Required: []string{"deliverTo", "mobileNumber", "dishes"},
	Text:     []string{"deliverTo", "mobileNumber"},
	Lists:    []validation.List{orderDishes},
}

var updateOrderSchema = validation.Schema{
	Resource: "Order",
	Required: []string{"deliverTo", "mobileNumber", "dishes", "status"},
	Text:     []string{"deliverTo", "mobileNumber"},
	Lists:    []validation.List{orderDishes},
	Enums: []validation.Enum{
		{
			Field:   "status",
			Message: "Order must have a status of " + strings.Join(statusNames(), ", "),
			Allowed: statusNames(),
		},
	},
	Rules: []validation.Rule{
		validation.Not("status", string(OrderStatusDelivered), DeliveredOrderMessage),
	},
}

// DeliveredOrderMessage answers any update that sets or targets a delivered order.
const DeliveredOrderMessage = "A delivered order cannot be changed"

func statusNames() []string {
	names := make([]string, len(OrderStatuses))
	for i, s := range OrderStatuses {
		names[i] = string(s)
	}
	return names
}

// ---- Dishes -----------------------------------------------------------------

// ListDishesRequest carries nothing; the whole collection is returned.
type ListDishesRequest struct{}

func (r *ListDishesRequest) Validate() error { return nil }

// CreateDishRequest is the body of POST /dishes.
type CreateDishRequest struct {
	Data validation.Payload `json:"data"`
}

func (r *CreateDishRequest) Validate() error { return dishSchema.Validate(r.Data) }

// Input returns the validated dish fields.
func (r *CreateDishRequest) Input() DishInput { return dishInput(r.Data) }

// GetDishRequest addresses GET /dishes/:dishId.
type GetDishRequest struct {
	DishID string `param:"dishId" json:"-" validate:"required"`
}

func (r *GetDishRequest) Validate() error { return validation.ValidateStruct(r) }

func (r *GetDishRequest) RouteID() string { return r.DishID }

// UpdateDishRequest is PUT /dishes/:dishId.
type UpdateDishRequest struct {
	DishID string             `param:"dishId" json:"-"`
	Data   validation.Payload `json:"data"`
}

func (r *UpdateDishRequest) Validate() error { return dishSchema.Validate(r.Data) }

func (r *UpdateDishRequest) RouteID() string { return r.DishID }

// PayloadID is the id repeated in the body, if any.
func (r *UpdateDishRequest) PayloadID() BodyID { return bodyID(r.Data) }

// Input returns the validated dish fields.
func (r *UpdateDishRequest) Input() DishInput { return dishInput(r.Data) }

// BodyID is the optional id an update body repeats.
//
// Absent or falsy ids are ignored. A present id must be the route id as a
// JSON string; the number 1 does not match route "1".
type BodyID struct {
	text     string
	isString bool
}

// StringBodyID is the BodyID of a JSON string id.
func StringBodyID(id string) BodyID {
	return BodyID{text: id, isString: true}
}

func bodyID(p validation.Payload) BodyID {
	_, isString := p["id"].(string)
	return BodyID{text: p.Text("id"), isString: isString}
}

// String renders the id for messages, "" when absent.
func (b BodyID) String() string { return b.text }

// Conflicts reports whether b names a record other than routeID.
func (b BodyID) Conflicts(routeID string) bool {
	if b.text == "" {
		return false
	}
	return !b.isString || b.text != routeID
}

func dishInput(p validation.Payload) DishInput {
	return DishInput{
		Name:        p.String("name"),
		Description: p.String("description"),
		Price:       p.Int("price"),
		ImageURL:    p.String("image_url"),
	}
}

// ---- Orders -----------------------------------------------------------------

// ListOrdersRequest carries nothing; the whole collection is returned.
type ListOrdersRequest struct{}

func (r *ListOrdersRequest) Validate() error { return nil }

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	Data validation.Payload `json:"data"`
}

func (r *CreateOrderRequest) Validate() error { return createOrderSchema.Validate(r.Data) }

// Input returns the validated order fields. Status is left empty.
func (r *CreateOrderRequest) Input() OrderInput {
	return OrderInput{
		DeliverTo:    r.Data.String("deliverTo"),
		MobileNumber: r.Data.String("mobileNumber"),
		Dishes:       orderDishLines(r.Data),
	}
}

// GetOrderRequest addresses GET /orders/:orderId.
type GetOrderRequest struct {
	OrderID string `param:"orderId" json:"-" validate:"required"`
}

func (r *GetOrderRequest) Validate() error { return validation.ValidateStruct(r) }

func (r *GetOrderRequest) RouteID() string { return r.OrderID }

// DeleteOrderRequest addresses DELETE /orders/:orderId.
type DeleteOrderRequest struct {
	OrderID string `param:"orderId" json:"-" validate:"required"`
}

func (r *DeleteOrderRequest) Validate() error { return validation.ValidateStruct(r) }

func (r *DeleteOrderRequest) RouteID() string { return r.OrderID }

// UpdateOrderRequest is PUT /orders/:orderId.
type UpdateOrderRequest struct {
	OrderID string             `param:"orderId" json:"-"`
	Data    validation.Payload `json:"data"`
}

func (r *UpdateOrderRequest) Validate() error { return updateOrderSchema.Validate(r.Data) }

func (r *UpdateOrderRequest) RouteID() string { return r.OrderID }

// PayloadID is the id repeated in the body, if any.
func (r *UpdateOrderRequest) PayloadID() BodyID { return bodyID(r.Data) }

// Input returns the validated order fields including the requested status.
func (r *UpdateOrderRequest) Input() OrderInput {
	return OrderInput{
		DeliverTo:    r.Data.String("deliverTo"),
		MobileNumber: r.Data.String("mobileNumber"),
		Status:       OrderStatus(r.Data.String("status")),
		Dishes:       orderDishLines(r.Data),
	}
}

func orderDishLines(p validation.Payload) []OrderDish {
	items := p.List("dishes")
	lines := make([]OrderDish, len(items))
	for i, item := range items {
		dishID := item.String("dishId")
		if dishID == "" {
			// Lines copied from a dish record carry its "id" instead.
			dishID = item.String("id")
		}
		lines[i] = OrderDish{
			DishID:   dishID,
			Quantity: item.Int("quantity"),
		}
	}
	return lines
}
