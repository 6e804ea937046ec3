package ports

import (
	"catering-fulfillment-service/internal/domain"
	"context"
)

// Port: boundary for the pre-payment order records created at checkout.
type PaymentOrderRepository interface {
	// Persist a new pending payment order.
	CreatePaymentOrder(ctx context.Context, order *domain.PaymentOrder) error

	// Retrieve a payment order by id. Returns ErrNotFound when absent.
	GetPaymentOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error)

	// Record the gateway redirect URL on a pending order.
	SetPaymentURL(ctx context.Context, orderID, paymentURL string) error

	// Transition the order's payment status, storing the raw gateway payload
	// for audit.
	SetPaymentStatus(ctx context.Context, orderID, status string, gatewayPayload []byte) error
}
