package repositories

import (
	"catering-fulfillment-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgreSQL-backed implementation of the DriverRepository port.
type PostgresDriverRepository struct{ DB *sql.DB }

func NewPostgresDriverRepository(db *sql.DB) *PostgresDriverRepository {
	return &PostgresDriverRepository{DB: db}
}

// ListVerifiedDrivers returns verified drivers ordered by id. The order is
// part of the contract: the assignment engine breaks distance ties by
// iteration order.
func (r *PostgresDriverRepository) ListVerifiedDrivers(ctx context.Context) ([]*domain.Driver, error) {
	if r.DB == nil {
		return nil, errors.New("driver repository: DB is nil")
	}

	query := `
	SELECT driver_id, name, lat, lon, verified
	FROM drivers
	WHERE verified = TRUE
	ORDER BY driver_id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list verified drivers: query drivers table: %w", err)
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0, 16)
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.DriverID, &d.Name, &d.Position.Lat, &d.Position.Lon, &d.Verified); err != nil {
			return nil, fmt.Errorf("list verified drivers: scan row: %w", err)
		}
		drivers = append(drivers, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list verified drivers: row iteration: %w", err)
	}

	return drivers, nil
}
