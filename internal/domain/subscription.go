package domain

import "time"

// Slot is one day/meal-time position in a catering plan. Menu is nil when the
// client never resolved a menu for the slot; such slots produce no daily order.
type Slot struct {
	DayIndex int
	MealTime string
	Menu     *MenuSnapshot
}

// Subscription is a paid multi-day catering plan. Created once on payment
// confirmation; immutable afterwards except Status.
type Subscription struct {
	SubscriptionID string
	UserID         string
	Slots          []Slot
	TotalPrice     int64
	ShippingCost   int64
	Status         string
	CreatedAt      time.Time
}

// Payment lifecycle status of a PaymentOrder.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// PaymentOrder is the pre-payment record created when a client requests a
// transaction. The gateway webhook flips its status; a paid order is the
// input to daily-order materialization.
type PaymentOrder struct {
	OrderID      string
	UserID       string
	Slots        []Slot
	TotalPrice   int64
	ShippingCost int64
	Status       string
	PaymentURL   string
	CreatedAt    time.Time
}
