package services

import (
	"catering-fulfillment-service/internal/adapters/repositories"
	"catering-fulfillment-service/internal/domain"
	"context"
	"testing"
)

func TestWorkloadSnapshotCountsActiveStatuses(t *testing.T) {
	store := repositories.NewMemoryStore()
	store.Drivers = []*domain.Driver{
		{DriverID: "A", Name: "Driver A", Verified: true},
		{DriverID: "B", Name: "Driver B", Verified: true},
	}

	store.DailyOrders["o-1"] = &domain.DailyOrder{OrderID: "o-1", Status: domain.StatusAssigned, DriverID: "A"}
	store.DailyOrders["o-2"] = &domain.DailyOrder{OrderID: "o-2", Status: domain.StatusReadyForPickup, DriverID: "A"}
	store.DailyOrders["o-3"] = &domain.DailyOrder{OrderID: "o-3", Status: domain.StatusOnDelivery, DriverID: "B"}
	// Neither of these occupies capacity.
	store.DailyOrders["o-4"] = &domain.DailyOrder{OrderID: "o-4", Status: domain.StatusDelivered, DriverID: "A"}
	store.DailyOrders["o-5"] = &domain.DailyOrder{OrderID: "o-5", Status: domain.StatusConfirmed}

	snap, err := BuildWorkloadSnapshot(context.Background(), store, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Drivers) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(snap.Drivers))
	}
	if got := snap.Load("A").Active; got != 2 {
		t.Errorf("driver A load = %d, want 2", got)
	}
	if got := snap.Load("B").Active; got != 1 {
		t.Errorf("driver B load = %d, want 1", got)
	}
}

func TestWorkloadSnapshotExcludesUnverifiedDrivers(t *testing.T) {
	store := repositories.NewMemoryStore()
	store.Drivers = []*domain.Driver{
		{DriverID: "A", Name: "Driver A", Verified: true},
		{DriverID: "revoked", Name: "Revoked", Verified: false},
	}
	// An order held by a driver revoked mid-flight increments nothing.
	store.DailyOrders["o-1"] = &domain.DailyOrder{OrderID: "o-1", Status: domain.StatusOnDelivery, DriverID: "revoked"}

	snap, err := BuildWorkloadSnapshot(context.Background(), store, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(snap.Drivers) != 1 || snap.Drivers[0].Driver.DriverID != "A" {
		t.Fatalf("expected only driver A, got %+v", snap.Drivers)
	}
	if snap.Load("revoked") != nil {
		t.Error("revoked driver must not be eligible")
	}
}
