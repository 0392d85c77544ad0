package repository

import (
	"context"

	"github.com/deppfellow/grubdash/internal/database"
	"github.com/deppfellow/grubdash/internal/model"
	"github.com/deppfellow/grubdash/internal/server"
)

type OrderRepository struct {
	orders *database.Collection[model.Order]
}

func NewOrderRepository(s *server.Server) *OrderRepository {
	return &OrderRepository{orders: s.DB.Orders}
}

func (r *OrderRepository) List(ctx context.Context) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.orders.List(), nil
}

// FindByID returns database.ErrNotFound for unknown ids.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o, err := r.orders.Find(id)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Insert(ctx context.Context, o *model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.orders.Insert(*o)
}

// Update runs fn against the stored order under the collection lock.
func (r *OrderRepository) Update(ctx context.Context, id string, fn func(*model.Order) error) (*model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o, err := r.orders.Update(id, fn)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// DeleteIf removes the order when allow accepts its current state.
func (r *OrderRepository) DeleteIf(ctx context.Context, id string, allow func(model.Order) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.orders.RemoveIf(id, allow)
}
