package services

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/platform/obs"
	"catering-fulfillment-service/internal/ports"
	"context"
	"fmt"
	"log"
	"time"
)

// SlotOutcome reports what happened to one subscription slot: either a daily
// order was created, or the slot was skipped with a reason. Skips are lenient
// by design (bad slot data must not sink the whole plan) but they are
// returned, not swallowed.
type SlotOutcome struct {
	DayIndex int
	OrderID  string
	Skipped  bool
	Reason   string
}

type MaterializeRequest struct {
	SubscriptionID string
	UserID         string
	Slots          []domain.Slot
	TotalPrice     int64
	ShippingCost   int64

	// Now is the wall-clock reference for delivery-date computation.
	Now time.Time
	// EveningCutoffHour pushes the delivery start one extra day out for
	// orders placed at or after this local hour.
	EveningCutoffHour int
}

type MaterializeResult struct {
	SubscriptionID string
	OrderIDs       []string
	Slots          []SlotOutcome
}

// MaterializeDailyOrders expands a paid subscription into individually
// addressable daily orders and commits them, together with the subscription
// record, as a single atomic write.
//
// Daily-order ids are deterministic ({subscriptionId}_day{n}, n = 1-based
// slot position), so re-invoking after a failed commit is safe: the same ids
// are written again with identical data.
func MaterializeDailyOrders(
	ctx context.Context,
	req MaterializeRequest,
	store ports.SubscriptionStore,
) (_ *MaterializeResult, err error) {
	defer obs.Time(ctx, "services.MaterializeDailyOrders")(&err)

	if req.SubscriptionID == "" {
		return nil, fmt.Errorf("materialize orders: %w: subscription id must not be empty", ErrInvalidInput)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("materialize orders: %w: user id must not be empty", ErrInvalidInput)
	}

	startDate := deliveryStartDate(req.Now, req.EveningCutoffHour)
	shippingShare := int64(0)
	if len(req.Slots) > 0 {
		// Floor division: the undistributed remainder is deliberately kept
		// by the platform rather than rounded onto any one order.
		shippingShare = req.ShippingCost / int64(len(req.Slots))
	}

	result := &MaterializeResult{SubscriptionID: req.SubscriptionID}
	orders := make([]*domain.DailyOrder, 0, len(req.Slots))

	for i, slot := range req.Slots {
		if slot.Menu == nil || slot.Menu.MenuID == "" {
			result.Slots = append(result.Slots, SlotOutcome{
				DayIndex: i + 1,
				Skipped:  true,
				Reason:   "slot has no resolved menu",
			})
			log.Printf("materialize orders: subscription_id=%s skip slot=%d reason=%q",
				req.SubscriptionID, i+1, "slot has no resolved menu")
			continue
		}

		order := &domain.DailyOrder{
			OrderID:        domain.DailyOrderID(req.SubscriptionID, i+1),
			SubscriptionID: req.SubscriptionID,
			UserID:         req.UserID,
			DayIndex:       i + 1,
			MealTime:       slot.MealTime,
			Menu:           *slot.Menu,
			DeliveryDate:   startDate.AddDate(0, 0, i),
			ShippingFee:    shippingShare,
			Status:         domain.StatusConfirmed,
			CreatedAt:      req.Now,
		}

		orders = append(orders, order)
		result.OrderIDs = append(result.OrderIDs, order.OrderID)
		result.Slots = append(result.Slots, SlotOutcome{DayIndex: i + 1, OrderID: order.OrderID})
	}

	sub := &domain.Subscription{
		SubscriptionID: req.SubscriptionID,
		UserID:         req.UserID,
		Slots:          req.Slots,
		TotalPrice:     req.TotalPrice,
		ShippingCost:   req.ShippingCost,
		Status:         "active",
		CreatedAt:      req.Now,
	}

	// All-or-nothing: a subscription without its daily orders (or the
	// reverse) must never become visible.
	if err := store.CreateSubscriptionWithOrders(ctx, sub, orders); err != nil {
		return nil, fmt.Errorf("materialize orders: commit subscription %q: %w", req.SubscriptionID, err)
	}

	return result, nil
}

// deliveryStartDate computes the first delivery day: tomorrow, or the day
// after when the order lands at or past the evening cutoff.
func deliveryStartDate(now time.Time, eveningCutoffHour int) time.Time {
	days := 1
	if now.Hour() >= eveningCutoffHour {
		days = 2
	}

	start := now.AddDate(0, 0, days)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
}
