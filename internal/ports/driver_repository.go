package ports

import (
	"catering-fulfillment-service/internal/domain"
	"context"
)

// Port: boundary for reading the driver pool.
type DriverRepository interface {
	// Retrieve all verified drivers in a stable order.
	ListVerifiedDrivers(ctx context.Context) ([]*domain.Driver, error)
}
