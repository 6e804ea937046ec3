package repositories

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/platform/obs"
	"catering-fulfillment-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgreSQL-backed implementation of the DailyOrderRepository port.
type PostgresDailyOrderRepository struct{ DB *sql.DB }

func NewPostgresDailyOrderRepository(db *sql.DB) *PostgresDailyOrderRepository {
	return &PostgresDailyOrderRepository{DB: db}
}

const dailyOrderColumns = `
	order_id,
	subscription_id,
	user_id,
	day_index,
	meal_time,
	menu_id,
	menu_name,
	menu_price,
	menu_image,
	restaurant_id,
	delivery_date,
	shipping_fee,
	status,
	driver_id,
	driver_name,
	created_at
`

func (r *PostgresDailyOrderRepository) GetDailyOrder(ctx context.Context, orderID string) (*domain.DailyOrder, error) {
	if r.DB == nil {
		return nil, errors.New("daily order repository: DB is nil")
	}

	query := `
	SELECT ` + dailyOrderColumns + `
	FROM daily_orders
	WHERE order_id = $1;
	`
	row := r.DB.QueryRowContext(ctx, query, orderID)

	order, err := scanDailyOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get daily order %q: %w", orderID, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get daily order %q: %w", orderID, err)
	}

	return order, nil
}

func (r *PostgresDailyOrderRepository) ListDailyOrdersByStatus(
	ctx context.Context,
	statuses []domain.OrderStatus,
) (_ []*domain.DailyOrder, err error) {
	defer obs.Time(ctx, "repo.ListDailyOrdersByStatus")(&err)

	if r.DB == nil {
		return nil, errors.New("daily order repository: DB is nil")
	}

	set := make([]string, 0, len(statuses))
	for _, s := range statuses {
		set = append(set, string(s))
	}

	query := `
	SELECT ` + dailyOrderColumns + `
	FROM daily_orders
	WHERE status = ANY($1::text[])
	ORDER BY order_id;
	`
	rows, err := r.DB.QueryContext(ctx, query, set)
	if err != nil {
		return nil, fmt.Errorf("list daily orders by status: query daily_orders table: %w", err)
	}
	defer rows.Close()

	return collectDailyOrders(rows)
}

func (r *PostgresDailyOrderRepository) ListDailyOrdersByUser(ctx context.Context, userID string) ([]*domain.DailyOrder, error) {
	if r.DB == nil {
		return nil, errors.New("daily order repository: DB is nil")
	}

	query := `
	SELECT ` + dailyOrderColumns + `
	FROM daily_orders
	WHERE user_id = $1
	ORDER BY delivery_date, order_id;
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list daily orders by user: query daily_orders table: %w", err)
	}
	defer rows.Close()

	return collectDailyOrders(rows)
}

// ApplyAssignments commits a batch of staged assignments in one transaction.
func (r *PostgresDailyOrderRepository) ApplyAssignments(ctx context.Context, assignments []domain.Assignment) error {
	if r.DB == nil {
		return errors.New("daily order repository: DB is nil")
	}

	if len(assignments) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("apply assignments: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	UPDATE daily_orders
	SET status = $1,
		driver_id = $2,
		driver_name = $3
	WHERE order_id = $4;
	`)
	if err != nil {
		return fmt.Errorf("apply assignments: prepare update: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		if _, err := stmt.ExecContext(ctx, string(domain.StatusAssigned), a.DriverID, a.DriverName, a.OrderID); err != nil {
			return fmt.Errorf("apply assignments: update order_id=%s: %w", a.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("apply assignments: commit tx: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDailyOrder(row rowScanner) (*domain.DailyOrder, error) {
	var o domain.DailyOrder
	err := row.Scan(
		&o.OrderID,
		&o.SubscriptionID,
		&o.UserID,
		&o.DayIndex,
		&o.MealTime,
		&o.Menu.MenuID,
		&o.Menu.Name,
		&o.Menu.Price,
		&o.Menu.ImageURL,
		&o.Menu.RestaurantID,
		&o.DeliveryDate,
		&o.ShippingFee,
		&o.Status,
		&o.DriverID,
		&o.DriverName,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func collectDailyOrders(rows *sql.Rows) ([]*domain.DailyOrder, error) {
	orders := make([]*domain.DailyOrder, 0, 64)
	for rows.Next() {
		o, err := scanDailyOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily order row iteration: %w", err)
	}

	return orders, nil
}
