package payment

import (
	"catering-fulfillment-service/internal/ports"
	"context"
	"encoding/json"
	"fmt"
)

// MockGateway is a canned-response gateway for tests.
type MockGateway struct {
	RedirectURL string
	Err         error

	CreatedOrders []string
}

func (m *MockGateway) CreateTransaction(ctx context.Context, orderID string, grossAmount int64) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	m.CreatedOrders = append(m.CreatedOrders, orderID)
	return m.RedirectURL, nil
}

// ParseNotification decodes the payload without signature checks.
func (m *MockGateway) ParseNotification(ctx context.Context, payload []byte) (*ports.PaymentNotification, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	var n struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
	}
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("mock gateway: %w", err)
	}

	return &ports.PaymentNotification{
		OrderID:           n.OrderID,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		Raw:               payload,
	}, nil
}
