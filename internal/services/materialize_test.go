package services

import (
	"catering-fulfillment-service/internal/adapters/repositories"
	"catering-fulfillment-service/internal/domain"
	"context"
	"errors"
	"testing"
	"time"
)

func mealSlot(menuID, restaurantID string) domain.Slot {
	return domain.Slot{
		MealTime: "lunch",
		Menu: &domain.MenuSnapshot{
			MenuID:       menuID,
			Name:         "Nasi " + menuID,
			Price:        25000,
			RestaurantID: restaurantID,
		},
	}
}

func TestMaterializeCreatesOrderPerSlot(t *testing.T) {
	store := repositories.NewMemoryStore()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	req := MaterializeRequest{
		SubscriptionID: "SUB-1",
		UserID:         "user-1",
		Slots: []domain.Slot{
			mealSlot("m1", "resto-1"),
			mealSlot("m2", "resto-1"),
			mealSlot("m3", "resto-2"),
		},
		TotalPrice:        90000,
		ShippingCost:      9000,
		Now:               now,
		EveningCutoffHour: 20,
	}

	result, err := MaterializeDailyOrders(context.Background(), req, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.OrderIDs) != 3 {
		t.Fatalf("expected 3 order ids, got %d", len(result.OrderIDs))
	}
	if result.OrderIDs[0] != "SUB-1_day1" || result.OrderIDs[2] != "SUB-1_day3" {
		t.Fatalf("unexpected order ids: %v", result.OrderIDs)
	}

	sub, ok := store.Subscriptions["SUB-1"]
	if !ok {
		t.Fatal("subscription record missing")
	}
	if sub.Status != "active" {
		t.Errorf("subscription status = %q, want active", sub.Status)
	}

	if len(store.DailyOrders) != 3 {
		t.Fatalf("expected 3 daily orders, got %d", len(store.DailyOrders))
	}

	// Delivery dates increase by exactly one day per slot, starting tomorrow.
	wantStart := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	for i, id := range result.OrderIDs {
		o := store.DailyOrders[id]
		if o == nil {
			t.Fatalf("order %q missing", id)
		}
		if o.Status != domain.StatusConfirmed {
			t.Errorf("order %q status = %q, want confirmed", id, o.Status)
		}
		want := wantStart.AddDate(0, 0, i)
		if !o.DeliveryDate.Equal(want) {
			t.Errorf("order %q delivery date = %v, want %v", id, o.DeliveryDate, want)
		}
		if o.ShippingFee != 3000 {
			t.Errorf("order %q shipping fee = %d, want 3000", id, o.ShippingFee)
		}
	}
}

func TestMaterializeSkipsSlotWithoutMenu(t *testing.T) {
	store := repositories.NewMemoryStore()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	req := MaterializeRequest{
		SubscriptionID: "SUB-2",
		UserID:         "user-1",
		Slots: []domain.Slot{
			mealSlot("m1", "resto-1"),
			{MealTime: "dinner"}, // no resolved menu
			mealSlot("m3", "resto-1"),
		},
		ShippingCost:      9000,
		Now:               now,
		EveningCutoffHour: 20,
	}

	result, err := MaterializeDailyOrders(context.Background(), req, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.OrderIDs) != 2 {
		t.Fatalf("expected 2 order ids, got %d: %v", len(result.OrderIDs), result.OrderIDs)
	}

	// Ids and dates keep the slot position, leaving a day2 gap.
	if result.OrderIDs[0] != "SUB-2_day1" || result.OrderIDs[1] != "SUB-2_day3" {
		t.Fatalf("unexpected order ids: %v", result.OrderIDs)
	}

	if len(result.Slots) != 3 {
		t.Fatalf("expected 3 slot outcomes, got %d", len(result.Slots))
	}
	skipped := result.Slots[1]
	if !skipped.Skipped || skipped.Reason == "" {
		t.Errorf("slot 2 outcome = %+v, want skipped with reason", skipped)
	}

	// The per-item share still divides by the full slot count.
	if got := store.DailyOrders["SUB-2_day1"].ShippingFee; got != 3000 {
		t.Errorf("shipping fee = %d, want 3000", got)
	}
}

func TestMaterializeEveningCutoffPushesStart(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		wantDay int
	}{
		{name: "before cutoff", hour: 19, wantDay: 3},
		{name: "at cutoff", hour: 20, wantDay: 4},
		{name: "after cutoff", hour: 23, wantDay: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := repositories.NewMemoryStore()
			now := time.Date(2026, 3, 2, tt.hour, 30, 0, 0, time.UTC)

			result, err := MaterializeDailyOrders(context.Background(), MaterializeRequest{
				SubscriptionID:    "SUB-3",
				UserID:            "user-1",
				Slots:             []domain.Slot{mealSlot("m1", "resto-1")},
				Now:               now,
				EveningCutoffHour: 20,
			}, store)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := time.Date(2026, 3, tt.wantDay, 0, 0, 0, 0, time.UTC)
			got := store.DailyOrders[result.OrderIDs[0]].DeliveryDate
			if !got.Equal(want) {
				t.Errorf("delivery date = %v, want %v", got, want)
			}
		})
	}
}

func TestMaterializeShippingFloorInvariant(t *testing.T) {
	store := repositories.NewMemoryStore()

	result, err := MaterializeDailyOrders(context.Background(), MaterializeRequest{
		SubscriptionID: "SUB-4",
		UserID:         "user-1",
		Slots: []domain.Slot{
			mealSlot("m1", "resto-1"),
			mealSlot("m2", "resto-1"),
			mealSlot("m3", "resto-1"),
		},
		ShippingCost:      10000,
		Now:               time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EveningCutoffHour: 20,
	}, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var distributed int64
	for _, id := range result.OrderIDs {
		distributed += store.DailyOrders[id].ShippingFee
	}
	if distributed > 10000 {
		t.Errorf("distributed shipping %d exceeds total 10000", distributed)
	}
	if per := store.DailyOrders[result.OrderIDs[0]].ShippingFee; per != 3333 {
		t.Errorf("per-item share = %d, want 3333", per)
	}
}

func TestMaterializeCommitFailureLeavesNothing(t *testing.T) {
	store := repositories.NewMemoryStore()
	store.FailCommits = true

	_, err := MaterializeDailyOrders(context.Background(), MaterializeRequest{
		SubscriptionID:    "SUB-5",
		UserID:            "user-1",
		Slots:             []domain.Slot{mealSlot("m1", "resto-1")},
		Now:               time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EveningCutoffHour: 20,
	}, store)
	if err == nil {
		t.Fatal("expected commit error")
	}

	if len(store.Subscriptions) != 0 || len(store.DailyOrders) != 0 {
		t.Errorf("partial state visible after failed commit: subs=%d orders=%d",
			len(store.Subscriptions), len(store.DailyOrders))
	}
}

func TestMaterializeIdempotentRetry(t *testing.T) {
	store := repositories.NewMemoryStore()
	req := MaterializeRequest{
		SubscriptionID:    "SUB-6",
		UserID:            "user-1",
		Slots:             []domain.Slot{mealSlot("m1", "resto-1"), mealSlot("m2", "resto-1")},
		ShippingCost:      4000,
		Now:               time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EveningCutoffHour: 20,
	}

	for i := 0; i < 2; i++ {
		if _, err := MaterializeDailyOrders(context.Background(), req, store); err != nil {
			t.Fatalf("run %d: unexpected error: %v", i+1, err)
		}
	}

	if len(store.DailyOrders) != 2 {
		t.Errorf("expected 2 daily orders after retry, got %d", len(store.DailyOrders))
	}
	if len(store.Subscriptions) != 1 {
		t.Errorf("expected 1 subscription after retry, got %d", len(store.Subscriptions))
	}
}

func TestMaterializeRejectsMissingUser(t *testing.T) {
	store := repositories.NewMemoryStore()

	_, err := MaterializeDailyOrders(context.Background(), MaterializeRequest{
		SubscriptionID:    "SUB-7",
		EveningCutoffHour: 20,
		Now:               time.Now(),
	}, store)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(store.Subscriptions) != 0 {
		t.Error("store must not be touched on invalid input")
	}
}
