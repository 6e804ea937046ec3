package repositories

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgreSQL-backed implementation of the SubscriptionStore port.
type PostgresSubscriptionStore struct{ DB *sql.DB }

func NewPostgresSubscriptionStore(db *sql.DB) *PostgresSubscriptionStore {
	return &PostgresSubscriptionStore{DB: db}
}

// CreateSubscriptionWithOrders writes the subscription and all daily orders
// in one transaction. Upserts keyed on the deterministic ids make retries of
// a failed materialization harmless.
func (s *PostgresSubscriptionStore) CreateSubscriptionWithOrders(
	ctx context.Context,
	sub *domain.Subscription,
	orders []*domain.DailyOrder,
) (err error) {
	defer obs.Time(ctx, "repo.CreateSubscriptionWithOrders")(&err)

	if s.DB == nil {
		return errors.New("subscription store: DB is nil")
	}

	slots, err := marshalSlots(sub.Slots)
	if err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create subscription: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	subQuery := `
	INSERT INTO subscriptions (
		subscription_id, user_id, slots, total_price, shipping_cost, status, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (subscription_id) DO UPDATE
	SET user_id = EXCLUDED.user_id,
		slots = EXCLUDED.slots,
		total_price = EXCLUDED.total_price,
		shipping_cost = EXCLUDED.shipping_cost,
		status = EXCLUDED.status;
	`
	_, err = tx.ExecContext(ctx, subQuery,
		sub.SubscriptionID, sub.UserID, slots, sub.TotalPrice, sub.ShippingCost, sub.Status, sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("create subscription: insert subscription_id=%s: %w", sub.SubscriptionID, err)
	}

	orderQuery := `
	INSERT INTO daily_orders (
		order_id, subscription_id, user_id, day_index, meal_time,
		menu_id, menu_name, menu_price, menu_image, restaurant_id,
		delivery_date, shipping_fee, status, driver_id, driver_name, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	ON CONFLICT (order_id) DO UPDATE
	SET day_index = EXCLUDED.day_index,
		meal_time = EXCLUDED.meal_time,
		menu_id = EXCLUDED.menu_id,
		menu_name = EXCLUDED.menu_name,
		menu_price = EXCLUDED.menu_price,
		menu_image = EXCLUDED.menu_image,
		restaurant_id = EXCLUDED.restaurant_id,
		delivery_date = EXCLUDED.delivery_date,
		shipping_fee = EXCLUDED.shipping_fee;
	`
	stmt, err := tx.PrepareContext(ctx, orderQuery)
	if err != nil {
		return fmt.Errorf("create subscription: prepare order insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range orders {
		_, err := stmt.ExecContext(ctx,
			o.OrderID, o.SubscriptionID, o.UserID, o.DayIndex, o.MealTime,
			o.Menu.MenuID, o.Menu.Name, o.Menu.Price, o.Menu.ImageURL, o.Menu.RestaurantID,
			o.DeliveryDate, o.ShippingFee, string(o.Status), o.DriverID, o.DriverName, o.CreatedAt)
		if err != nil {
			return fmt.Errorf("create subscription: insert order_id=%s: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create subscription: commit tx: %w", err)
	}

	return nil
}
