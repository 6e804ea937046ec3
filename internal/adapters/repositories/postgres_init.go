package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the PostgreSQL database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPaymentOrdersQuery := `
	CREATE TABLE IF NOT EXISTS payment_orders (
		order_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		slots JSONB NOT NULL,
		total_price BIGINT NOT NULL,
		shipping_cost BIGINT NOT NULL,
		status TEXT NOT NULL,
		payment_url TEXT NOT NULL DEFAULT '',
		gateway_payload JSONB,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createSubscriptionsQuery := `
	CREATE TABLE IF NOT EXISTS subscriptions (
		subscription_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		slots JSONB NOT NULL,
		total_price BIGINT NOT NULL,
		shipping_cost BIGINT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createDailyOrdersQuery := `
	CREATE TABLE IF NOT EXISTS daily_orders (
		order_id TEXT PRIMARY KEY,
		subscription_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		day_index INTEGER NOT NULL,
		meal_time TEXT NOT NULL,
		menu_id TEXT NOT NULL,
		menu_name TEXT NOT NULL,
		menu_price BIGINT NOT NULL,
		menu_image TEXT NOT NULL DEFAULT '',
		restaurant_id TEXT NOT NULL,
		delivery_date DATE NOT NULL,
		shipping_fee BIGINT NOT NULL,
		status TEXT NOT NULL,
		driver_id TEXT NOT NULL DEFAULT '',
		driver_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createDriversQuery := `
	CREATE TABLE IF NOT EXISTS drivers (
		driver_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0,
		verified BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createRestaurantsQuery := `
	CREATE TABLE IF NOT EXISTS restaurants (
		restaurant_id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lon DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createStatusIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_daily_orders_status
	ON daily_orders(status);
	`

	createUserIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_daily_orders_user
	ON daily_orders(user_id);
	`

	statements := []string{
		createPaymentOrdersQuery,
		createSubscriptionsQuery,
		createDailyOrdersQuery,
		createDriversQuery,
		createRestaurantsQuery,
		createStatusIndexQuery,
		createUserIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DriverSeed struct {
	DriverID string  `json:"driver_id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Verified bool    `json:"verified"`
}

type RestaurantSeed struct {
	RestaurantID string  `json:"restaurant_id"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

type FleetSeed struct {
	Drivers     []DriverSeed     `json:"drivers"`
	Restaurants []RestaurantSeed `json:"restaurants"`
}

// Populate the database with driver and restaurant data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed fleet: read %q: %w", jsonPath, err)
	}

	var data FleetSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed fleet: parse json: %w", err)
	}

	for i, d := range data.Drivers {
		if strings.TrimSpace(d.DriverID) == "" {
			return fmt.Errorf("seed fleet: driver at index %d: driver_id cannot be empty", i+1)
		}
	}
	for i, r := range data.Restaurants {
		if strings.TrimSpace(r.RestaurantID) == "" {
			return fmt.Errorf("seed fleet: restaurant at index %d: restaurant_id cannot be empty", i+1)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed fleet: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	driverQuery := `
	INSERT INTO drivers (driver_id, name, lat, lon, verified)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (driver_id) DO UPDATE
	SET name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		verified = EXCLUDED.verified;
	`
	driverStmt, err := tx.Prepare(driverQuery)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare driver insert: %w", err)
	}
	defer driverStmt.Close()

	for _, d := range data.Drivers {
		if _, err := driverStmt.Exec(d.DriverID, d.Name, d.Lat, d.Lon, d.Verified); err != nil {
			return fmt.Errorf("seed fleet: insert driver_id=%s: %w", d.DriverID, err)
		}
	}

	restaurantQuery := `
	INSERT INTO restaurants (restaurant_id, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (restaurant_id) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`
	restaurantStmt, err := tx.Prepare(restaurantQuery)
	if err != nil {
		return fmt.Errorf("seed fleet: prepare restaurant insert: %w", err)
	}
	defer restaurantStmt.Close()

	for _, r := range data.Restaurants {
		if _, err := restaurantStmt.Exec(r.RestaurantID, r.Lat, r.Lon); err != nil {
			return fmt.Errorf("seed fleet: insert restaurant_id=%s: %w", r.RestaurantID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed fleet: commit tx: %w", err)
	}

	return nil
}
