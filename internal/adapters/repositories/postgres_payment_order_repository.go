package repositories

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgreSQL-backed implementation of the PaymentOrderRepository port.
type PostgresPaymentOrderRepository struct{ DB *sql.DB }

func NewPostgresPaymentOrderRepository(db *sql.DB) *PostgresPaymentOrderRepository {
	return &PostgresPaymentOrderRepository{DB: db}
}

func (r *PostgresPaymentOrderRepository) CreatePaymentOrder(ctx context.Context, order *domain.PaymentOrder) error {
	if r.DB == nil {
		return errors.New("payment order repository: DB is nil")
	}

	slots, err := marshalSlots(order.Slots)
	if err != nil {
		return fmt.Errorf("create payment order: %w", err)
	}

	query := `
	INSERT INTO payment_orders (
		order_id, user_id, slots, total_price, shipping_cost, status, payment_url, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = r.DB.ExecContext(ctx, query,
		order.OrderID, order.UserID, slots, order.TotalPrice, order.ShippingCost,
		order.Status, order.PaymentURL, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("create payment order %q: %w", order.OrderID, err)
	}

	return nil
}

func (r *PostgresPaymentOrderRepository) GetPaymentOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	if r.DB == nil {
		return nil, errors.New("payment order repository: DB is nil")
	}

	query := `
	SELECT order_id, user_id, slots, total_price, shipping_cost, status, payment_url, created_at
	FROM payment_orders
	WHERE order_id = $1;
	`
	var (
		order    domain.PaymentOrder
		rawSlots []byte
	)
	err := r.DB.QueryRowContext(ctx, query, orderID).Scan(
		&order.OrderID, &order.UserID, &rawSlots, &order.TotalPrice,
		&order.ShippingCost, &order.Status, &order.PaymentURL, &order.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment order %q: %w", orderID, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment order %q: %w", orderID, err)
	}

	order.Slots, err = unmarshalSlots(rawSlots)
	if err != nil {
		return nil, fmt.Errorf("get payment order %q: %w", orderID, err)
	}

	return &order, nil
}

func (r *PostgresPaymentOrderRepository) SetPaymentURL(ctx context.Context, orderID, paymentURL string) error {
	if r.DB == nil {
		return errors.New("payment order repository: DB is nil")
	}

	query := `
	UPDATE payment_orders
	SET payment_url = $1
	WHERE order_id = $2;
	`
	res, err := r.DB.ExecContext(ctx, query, paymentURL, orderID)
	if err != nil {
		return fmt.Errorf("set payment url for order %q: %w", orderID, err)
	}

	return requireRow(res, orderID, "set payment url")
}

func (r *PostgresPaymentOrderRepository) SetPaymentStatus(ctx context.Context, orderID, status string, gatewayPayload []byte) error {
	if r.DB == nil {
		return errors.New("payment order repository: DB is nil")
	}

	query := `
	UPDATE payment_orders
	SET status = $1,
		gateway_payload = $2
	WHERE order_id = $3;
	`
	res, err := r.DB.ExecContext(ctx, query, status, gatewayPayload, orderID)
	if err != nil {
		return fmt.Errorf("set payment status for order %q: %w", orderID, err)
	}

	return requireRow(res, orderID, "set payment status")
}

func requireRow(res sql.Result, orderID, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s for order %q: rows affected: %w", op, orderID, err)
	}
	if n == 0 {
		return fmt.Errorf("%s for order %q: %w", op, orderID, ports.ErrNotFound)
	}
	return nil
}
