package ports

import (
	"catering-fulfillment-service/internal/domain"
	"context"
)

// Port: boundary for reading and assigning daily orders.
type DailyOrderRepository interface {
	// Retrieve a single daily order by id. Returns ErrNotFound when absent.
	GetDailyOrder(ctx context.Context, orderID string) (*domain.DailyOrder, error)

	// Retrieve all daily orders whose status is in the given set.
	ListDailyOrdersByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.DailyOrder, error)

	// Retrieve all daily orders belonging to one user.
	ListDailyOrdersByUser(ctx context.Context, userID string) ([]*domain.DailyOrder, error)

	// Commit a batch of staged assignments atomically: each order gains
	// status=assigned plus its driver reference, or none do.
	ApplyAssignments(ctx context.Context, assignments []domain.Assignment) error
}
