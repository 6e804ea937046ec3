package repositories

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgreSQL-backed implementation of the RestaurantRepository port.
type PostgresRestaurantRepository struct{ DB *sql.DB }

func NewPostgresRestaurantRepository(db *sql.DB) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{DB: db}
}

func (r *PostgresRestaurantRepository) GetRestaurant(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	if r.DB == nil {
		return nil, errors.New("restaurant repository: DB is nil")
	}

	query := `
	SELECT restaurant_id, lat, lon
	FROM restaurants
	WHERE restaurant_id = $1;
	`
	var rest domain.Restaurant
	err := r.DB.QueryRowContext(ctx, query, restaurantID).
		Scan(&rest.RestaurantID, &rest.Position.Lat, &rest.Position.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get restaurant %q: %w", restaurantID, ports.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get restaurant %q: %w", restaurantID, err)
	}

	return &rest, nil
}
