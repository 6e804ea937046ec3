package domain

import (
	"fmt"
	"time"
)

// Lifecycle status of a daily order.
type OrderStatus string

const (
	StatusConfirmed      OrderStatus = "confirmed"
	StatusAssigned       OrderStatus = "assigned"
	StatusReadyForPickup OrderStatus = "ready_for_pickup"
	StatusOnDelivery     OrderStatus = "on_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusFailed         OrderStatus = "failed"
)

// ActiveDeliveryStatuses are the states in which an order still occupies
// driver capacity.
var ActiveDeliveryStatuses = []OrderStatus{
	StatusAssigned,
	StatusReadyForPickup,
	StatusOnDelivery,
}

// MenuSnapshot is the menu data copied onto a daily order at creation time.
// It is a snapshot, not a live join: later menu edits must not change
// already-materialized orders.
type MenuSnapshot struct {
	MenuID       string
	Name         string
	Price        int64
	ImageURL     string
	RestaurantID string
}

// DailyOrder is one deliverable unit derived from a subscription slot.
type DailyOrder struct {
	OrderID        string
	SubscriptionID string
	UserID         string
	DayIndex       int
	MealTime       string
	Menu           MenuSnapshot
	DeliveryDate   time.Time
	ShippingFee    int64
	Status         OrderStatus
	DriverID       string
	DriverName     string
	CreatedAt      time.Time
}

// DailyOrderID derives the deterministic identifier for the n-th daily order
// of a subscription (n is 1-based). Re-materializing the same subscription
// always produces the same ids, which makes retries idempotent.
func DailyOrderID(subscriptionID string, n int) string {
	return fmt.Sprintf("%s_day%d", subscriptionID, n)
}

// Assignment is one staged order-to-driver pairing produced by the
// assignment engine.
type Assignment struct {
	OrderID    string
	DriverID   string
	DriverName string
}
