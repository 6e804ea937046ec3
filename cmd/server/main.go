package main

import (
	"catering-fulfillment-service/internal/adapters/lock"
	"catering-fulfillment-service/internal/adapters/payment"
	"catering-fulfillment-service/internal/adapters/repositories"
	"catering-fulfillment-service/internal/api"
	"catering-fulfillment-service/internal/api/handlers"
	"catering-fulfillment-service/internal/config"
	"catering-fulfillment-service/internal/platform/db"
	"catering-fulfillment-service/internal/ports"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Midtrans) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if strings.TrimSpace(serverKey) == "" {
		log.Fatal("MIDTRANS_SERVER_KEY is required")
	}

	port := config.Get("PORT", "8080")
	snapBase := config.Get("MIDTRANS_SNAP_BASE", "https://app.sandbox.midtrans.com")
	finishURL := config.Get("FINISH_REDIRECT_URL", "https://katering-app.com/payment-success")

	settings := handlers.Settings{
		MaxOrdersPerDriver: config.GetInt("MAX_ORDERS_PER_DRIVER", 4),
		MaxRadiusKm:        config.GetFloat("MAX_ASSIGN_RADIUS_KM", 5.0),
		EveningCutoffHour:  config.GetInt("EVENING_CUTOFF_HOUR", 20),
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	if err := repositories.InitSchema(database); err != nil {
		log.Fatal(err)
	}

	gateway, err := payment.NewMidtransGateway(serverKey, snapBase, finishURL)
	if err != nil {
		log.Fatal(err)
	}

	// Assignment runs are serialized through Redis when available; a
	// single-instance deployment may run without it.
	var locker ports.RunLocker
	if addr := os.Getenv("REDIS_ADDR"); strings.TrimSpace(addr) != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		locker = lock.NewRedisRunLocker(client)
		log.Printf("Assignment lease backed by redis addr=%s", addr)
	} else {
		locker = lock.NewLocalRunLocker()
		log.Println("REDIS_ADDR not set; assignment lease is process-local")
	}

	router := api.NewRouter(api.Dependencies{
		DB:            database,
		PaymentOrders: repositories.NewPostgresPaymentOrderRepository(database),
		Subscriptions: repositories.NewPostgresSubscriptionStore(database),
		DailyOrders:   repositories.NewPostgresDailyOrderRepository(database),
		Drivers:       repositories.NewPostgresDriverRepository(database),
		Restaurants:   repositories.NewPostgresRestaurantRepository(database),
		Gateway:       gateway,
		Locker:        locker,
		Settings:      settings,
	})

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
