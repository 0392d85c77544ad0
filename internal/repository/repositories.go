package repository

import (
	"github.com/deppfellow/grubdash/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Dishes *DishRepository
	Orders *OrderRepository
}

// NewRepositories constructs the repository container over the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Dishes: NewDishRepository(s),
		Orders: NewOrderRepository(s),
	}
}
