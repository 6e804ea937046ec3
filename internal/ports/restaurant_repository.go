package ports

import (
	"catering-fulfillment-service/internal/domain"
	"context"
)

// Port: boundary for reading restaurant pickup locations.
type RestaurantRepository interface {
	// Retrieve a restaurant by id. Returns ErrNotFound when absent.
	GetRestaurant(ctx context.Context, restaurantID string) (*domain.Restaurant, error)
}
