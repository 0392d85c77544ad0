package model

import "slices"

// OrderStatus is the delivery state of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out-for-delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// OrderStatuses lists every status in delivery order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// rank is the position of s in OrderStatuses, -1 if unknown.
func (s OrderStatus) rank() int {
	return slices.Index(OrderStatuses, s)
}

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	return s.rank() >= 0
}

// IsTerminal reports whether no further change is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// CanTransitionTo reports whether an order may move from s to next.
// Statuses only move forward; staying put is allowed unless s is terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	return next.rank() >= s.rank()
}

// OrderDish is one line of an order.
type OrderDish struct {
	DishID   string `json:"dishId" yaml:"dishId"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// Order is a customer order.
type Order struct {
	ID           string      `json:"id" yaml:"id"`
	DeliverTo    string      `json:"deliverTo" yaml:"deliverTo"`
	MobileNumber string      `json:"mobileNumber" yaml:"mobileNumber"`
	Status       OrderStatus `json:"status" yaml:"status"`
	Dishes       []OrderDish `json:"dishes" yaml:"dishes"`
}

// OrderID is the key function for order collections.
func OrderID(o Order) string { return o.ID }

// Clone returns a copy of o that shares no memory with it.
func (o Order) Clone() Order {
	o.Dishes = slices.Clone(o.Dishes)
	return o
}

// OrderInput holds the mutable fields of an order.
//
// Status is empty on create; new orders always start pending.
type OrderInput struct {
	DeliverTo    string
	MobileNumber string
	Status       OrderStatus
	Dishes       []OrderDish
}

// Apply overwrites the mutable fields of o.
func (in OrderInput) Apply(o *Order) {
	o.DeliverTo = in.DeliverTo
	o.MobileNumber = in.MobileNumber
	o.Dishes = slices.Clone(in.Dishes)
	if in.Status != "" {
		o.Status = in.Status
	}
}
