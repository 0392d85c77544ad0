package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/grubdash/internal/errs"
	"github.com/deppfellow/grubdash/internal/lib/utils"
	"github.com/deppfellow/grubdash/internal/model"
	"github.com/deppfellow/grubdash/internal/server"
	"github.com/rs/zerolog"
)

const orderResource = "Order"

// OrderStore is the storage the order service needs.
type OrderStore interface {
	List(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id string) (*model.Order, error)
	Insert(ctx context.Context, o *model.Order) error
	Update(ctx context.Context, id string, fn func(*model.Order) error) (*model.Order, error)
	DeleteIf(ctx context.Context, id string, allow func(model.Order) error) error
}

type OrderService struct {
	store OrderStore
	newID utils.IDGenerator
}

func NewOrderService(s *server.Server, store OrderStore) *OrderService {
	return &OrderService{
		store: store,
		newID: s.NewID,
	}
}

func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	return s.store.List(ctx)
}

// Create stores a new pending order under a fresh id.
func (s *OrderService) Create(ctx context.Context, in model.OrderInput) (*model.Order, error) {
	order := &model.Order{ID: s.newID()}
	in.Status = ""
	in.Apply(order)
	order.Status = model.OrderStatusPending

	if err := s.store.Insert(ctx, order); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("order_id", order.ID).
		Int("lines", len(order.Dishes)).
		Msg("order created")
	return order, nil
}

// GetByID resolves a route id to an order or a 404.
func (s *OrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, orderResource, id)
	}
	return order, nil
}

// Update overwrites the mutable fields of found, including its status.
//
// Fails without changing anything when:
//   - payloadID conflicts with found.ID
//   - the new status is delivered, or the stored order already is
//   - the new status is behind the stored one
func (s *OrderService) Update(ctx context.Context, found *model.Order, payloadID model.BodyID, in model.OrderInput) (*model.Order, error) {
	if payloadID.Conflicts(found.ID) {
		return nil, idMismatch(orderResource, payloadID.String(), found.ID)
	}
	if in.Status.IsTerminal() {
		return nil, errs.NewConflictError(model.DeliveredOrderMessage, CodeOrderDelivered)
	}

	var previous model.OrderStatus
	order, err := s.store.Update(ctx, found.ID, func(o *model.Order) error {
		if o.Status.IsTerminal() {
			return errs.NewConflictError(model.DeliveredOrderMessage, CodeOrderDelivered)
		}
		if !o.Status.CanTransitionTo(in.Status) {
			return errs.NewConflictError(
				fmt.Sprintf("Order status cannot move from %s to %s", o.Status, in.Status),
				CodeOrderStatusRegression,
			)
		}
		previous = o.Status
		in.Apply(o)
		return nil
	})
	if err != nil {
		return nil, storeError(err, orderResource, found.ID)
	}

	event := zerolog.Ctx(ctx).Info().Str("order_id", order.ID)
	if previous != order.Status {
		event = event.Str("from_status", string(previous)).Str("to_status", string(order.Status))
	}
	event.Msg("order updated")

	return order, nil
}

// Delete removes found if it is still pending.
func (s *OrderService) Delete(ctx context.Context, found *model.Order) error {
	err := s.store.DeleteIf(ctx, found.ID, func(o model.Order) error {
		if o.Status != model.OrderStatusPending {
			return errs.NewConflictError("An order cannot be deleted unless it is pending.", CodeOrderNotPending)
		}
		return nil
	})
	if err != nil {
		return storeError(err, orderResource, found.ID)
	}

	zerolog.Ctx(ctx).Info().Str("order_id", found.ID).Msg("order deleted")
	return nil
}
