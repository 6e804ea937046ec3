package ports

import (
	"catering-fulfillment-service/internal/domain"
	"context"
)

// Port: boundary for persisting a materialized subscription.
type SubscriptionStore interface {
	// Commit the subscription record and all of its daily orders as one
	// atomic write. Partial state must never become visible. Re-writing the
	// same ids with identical data is allowed (idempotent retries).
	CreateSubscriptionWithOrders(ctx context.Context, sub *domain.Subscription, orders []*domain.DailyOrder) error
}
