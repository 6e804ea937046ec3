package services

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/ports"
	"context"
	"fmt"
)

// DriverLoad pairs a driver with its reserved active-order count.
type DriverLoad struct {
	Driver *domain.Driver
	Active int
}

// WorkloadSnapshot is the per-run view of each verified driver's workload.
// It is owned by exactly one assignment run: the engine's in-memory
// reservations mutate this snapshot and nothing else, and the snapshot is
// discarded when the run ends. Concurrent runs are serialized by the run
// lease, not by sharing this value.
type WorkloadSnapshot struct {
	// Drivers keeps repository order; the engine iterates it to break
	// distance ties deterministically (first at the minimum wins).
	Drivers []*DriverLoad

	byID map[string]*DriverLoad
}

// BuildWorkloadSnapshot loads all verified drivers and counts each one's
// active orders by scanning orders in active delivery states.
//
// Orders referencing a driver outside the verified set (revoked mid-flight)
// increment nothing: such drivers are simply not eligible this run.
func BuildWorkloadSnapshot(
	ctx context.Context,
	driverRepo ports.DriverRepository,
	orderRepo ports.DailyOrderRepository,
) (*WorkloadSnapshot, error) {
	drivers, err := driverRepo.ListVerifiedDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("workload snapshot: list verified drivers: %w", err)
	}

	snap := &WorkloadSnapshot{
		Drivers: make([]*DriverLoad, 0, len(drivers)),
		byID:    make(map[string]*DriverLoad, len(drivers)),
	}
	for _, d := range drivers {
		dl := &DriverLoad{Driver: d}
		snap.Drivers = append(snap.Drivers, dl)
		snap.byID[d.DriverID] = dl
	}

	active, err := orderRepo.ListDailyOrdersByStatus(ctx, domain.ActiveDeliveryStatuses)
	if err != nil {
		return nil, fmt.Errorf("workload snapshot: list active orders: %w", err)
	}

	for _, o := range active {
		if o.DriverID == "" {
			continue
		}
		if dl, ok := snap.byID[o.DriverID]; ok {
			dl.Active++
		}
	}

	return snap, nil
}

// Load returns the tracked load entry for a driver, or nil if the driver is
// not in the verified set.
func (s *WorkloadSnapshot) Load(driverID string) *DriverLoad {
	return s.byID[driverID]
}
