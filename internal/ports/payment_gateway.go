package ports

import "context"

// PaymentNotification is the verified content of a gateway webhook call.
type PaymentNotification struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
	GrossAmount       string
	StatusCode        string
	Raw               []byte
}

// Contract for the third-party payment gateway.
type PaymentGateway interface {
	// Create a payment transaction and return the redirect URL the client
	// completes payment at.
	CreateTransaction(ctx context.Context, orderID string, grossAmount int64) (string, error)

	// Parse an incoming webhook payload and verify its authenticity.
	// Returns an error for payloads whose signature does not check out.
	ParseNotification(ctx context.Context, payload []byte) (*PaymentNotification, error)
}
