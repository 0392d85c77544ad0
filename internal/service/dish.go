package service

import (
	"context"

	"github.com/deppfellow/grubdash/internal/lib/utils"
	"github.com/deppfellow/grubdash/internal/model"
	"github.com/deppfellow/grubdash/internal/server"
	"github.com/rs/zerolog"
)

const dishResource = "Dish"

// DishStore is the storage the dish service needs.
type DishStore interface {
	List(ctx context.Context) ([]model.Dish, error)
	FindByID(ctx context.Context, id string) (*model.Dish, error)
	Insert(ctx context.Context, d *model.Dish) error
	Update(ctx context.Context, id string, fn func(*model.Dish) error) (*model.Dish, error)
}

type DishService struct {
	store DishStore
	newID utils.IDGenerator
}

func NewDishService(s *server.Server, store DishStore) *DishService {
	return &DishService{
		store: store,
		newID: s.NewID,
	}
}

func (s *DishService) List(ctx context.Context) ([]model.Dish, error) {
	return s.store.List(ctx)
}

// Create stores a new dish under a fresh id.
func (s *DishService) Create(ctx context.Context, in model.DishInput) (*model.Dish, error) {
	dish := &model.Dish{ID: s.newID()}
	in.Apply(dish)

	if err := s.store.Insert(ctx, dish); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("dish_id", dish.ID).Msg("dish created")
	return dish, nil
}

// GetByID resolves a route id to a dish or a 404.
func (s *DishService) GetByID(ctx context.Context, id string) (*model.Dish, error) {
	dish, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, dishResource, id)
	}
	return dish, nil
}

// Update overwrites the mutable fields of found.
//
// A payloadID conflicting with found.ID changes nothing.
func (s *DishService) Update(ctx context.Context, found *model.Dish, payloadID model.BodyID, in model.DishInput) (*model.Dish, error) {
	if payloadID.Conflicts(found.ID) {
		return nil, idMismatch(dishResource, payloadID.String(), found.ID)
	}

	dish, err := s.store.Update(ctx, found.ID, func(d *model.Dish) error {
		in.Apply(d)
		return nil
	})
	if err != nil {
		return nil, storeError(err, dishResource, found.ID)
	}

	zerolog.Ctx(ctx).Info().Str("dish_id", dish.ID).Msg("dish updated")
	return dish, nil
}
