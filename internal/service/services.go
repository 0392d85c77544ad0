package service

import (
	"github.com/deppfellow/grubdash/internal/repository"
	"github.com/deppfellow/grubdash/internal/server"
)

type Services struct {
	Dishes *DishService
	Orders *OrderService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Dishes: NewDishService(s, repos.Dishes),
		Orders: NewOrderService(s, repos.Orders),
	}
}
