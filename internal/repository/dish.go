package repository

import (
	"context"

	"github.com/deppfellow/grubdash/internal/database"
	"github.com/deppfellow/grubdash/internal/model"
	"github.com/deppfellow/grubdash/internal/server"
)

type DishRepository struct {
	dishes *database.Collection[model.Dish]
}

func NewDishRepository(s *server.Server) *DishRepository {
	return &DishRepository{dishes: s.DB.Dishes}
}

func (r *DishRepository) List(ctx context.Context) ([]model.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.dishes.List(), nil
}

// FindByID returns database.ErrNotFound for unknown ids.
func (r *DishRepository) FindByID(ctx context.Context, id string) (*model.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, err := r.dishes.Find(id)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DishRepository) Insert(ctx context.Context, d *model.Dish) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.dishes.Insert(*d)
}

// Update runs fn against the stored dish under the collection lock.
func (r *DishRepository) Update(ctx context.Context, id string, fn func(*model.Dish) error) (*model.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, err := r.dishes.Update(id, fn)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
