package api

import (
	"catering-fulfillment-service/internal/api/handlers"
	"catering-fulfillment-service/internal/ports"
	"database/sql"
	"net/http"
)

// Dependencies collects every port the HTTP surface needs. Handlers stay
// unaware of concrete adapters; DB is passed only to the health probe.
type Dependencies struct {
	DB            *sql.DB
	PaymentOrders ports.PaymentOrderRepository
	Subscriptions ports.SubscriptionStore
	DailyOrders   ports.DailyOrderRepository
	Drivers       ports.DriverRepository
	Restaurants   ports.RestaurantRepository
	Gateway       ports.PaymentGateway
	Locker        ports.RunLocker
	Settings      handlers.Settings
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root.
func NewRouter(deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	txHandler := &handlers.TransactionHandler{
		PaymentOrders: deps.PaymentOrders,
		Gateway:       deps.Gateway,
	}
	webhookHandler := &handlers.WebhookHandler{
		PaymentOrders: deps.PaymentOrders,
		Subscriptions: deps.Subscriptions,
		DailyOrders:   deps.DailyOrders,
		Drivers:       deps.Drivers,
		Restaurants:   deps.Restaurants,
		Gateway:       deps.Gateway,
		Locker:        deps.Locker,
		Settings:      deps.Settings,
	}
	assignHandler := &handlers.AssignmentHandler{
		DailyOrders: deps.DailyOrders,
		Drivers:     deps.Drivers,
		Restaurants: deps.Restaurants,
		Locker:      deps.Locker,
		Settings:    deps.Settings,
	}
	orderHandler := &handlers.OrderHandler{DailyOrders: deps.DailyOrders}
	healthHandler := &handlers.HealthHandler{DB: deps.DB}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/createTransaction", txHandler.CreateTransaction)
	mux.HandleFunc("/paymentHandler", webhookHandler.HandleNotification)
	mux.HandleFunc("/markReadyAndAutoAssign", assignHandler.MarkReadyAndAutoAssign)
	mux.HandleFunc("/orders", orderHandler.ListByUser)

	return requestIDMiddleware(loggingMiddleware(mux))
}
