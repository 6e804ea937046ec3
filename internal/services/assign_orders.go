package services

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/platform/obs"
	"catering-fulfillment-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
)

// assignmentLease names the global mutual-exclusion region around an
// assignment run. Two runs must never interleave between snapshot and
// commit, or the same driver could be booked past capacity.
const assignmentLease = "assignment:run"

type AssignOrdersRequest struct {
	// OrderIDs are processed strictly in this order.
	OrderIDs []string
	// MaxOrdersPerDriver is the per-driver capacity ceiling.
	MaxOrdersPerDriver int
	// MaxRadiusKm is the farthest a driver may be from the order's
	// restaurant at assignment time.
	MaxRadiusKm float64
}

// UnassignedOrder explains why one candidate was left unassigned.
type UnassignedOrder struct {
	OrderID string
	Reason  string
}

type AssignmentReport struct {
	AssignedCount int
	Assignments   []domain.Assignment
	Unassigned    []UnassignedOrder
}

// AssignOrders assigns each candidate order to the nearest feasible driver.
//
// Feasible means: verified, reserved load strictly below capacity, and within
// MaxRadiusKm of the order's restaurant. Reservations are greedy and
// sequential, so capacity is never overbooked within one run; the run lease
// serializes runs so it is never overbooked across them either. Per-order
// problems (missing order, missing restaurant, no feasible driver) skip that
// order and continue; the batch commit at the end is one atomic transaction.
func AssignOrders(
	ctx context.Context,
	req AssignOrdersRequest,
	orderRepo ports.DailyOrderRepository,
	driverRepo ports.DriverRepository,
	restaurantRepo ports.RestaurantRepository,
	locker ports.RunLocker,
) (_ *AssignmentReport, err error) {
	defer obs.Time(ctx, "services.AssignOrders")(&err)

	if len(req.OrderIDs) == 0 {
		return nil, fmt.Errorf("assign orders: %w: order id list must not be empty", ErrInvalidInput)
	}
	if req.MaxOrdersPerDriver < 1 {
		return nil, fmt.Errorf("assign orders: %w: max orders per driver must be >= 1", ErrInvalidInput)
	}
	if req.MaxRadiusKm <= 0 {
		return nil, fmt.Errorf("assign orders: %w: max radius must be > 0", ErrInvalidInput)
	}

	release, err := locker.Acquire(ctx, assignmentLease)
	if err != nil {
		return nil, fmt.Errorf("assign orders: acquire run lease: %w", err)
	}
	defer release()

	snap, err := BuildWorkloadSnapshot(ctx, driverRepo, orderRepo)
	if err != nil {
		return nil, fmt.Errorf("assign orders: %w", err)
	}

	report := &AssignmentReport{}

	for _, orderID := range req.OrderIDs {
		order, err := orderRepo.GetDailyOrder(ctx, orderID)
		if errors.Is(err, ports.ErrNotFound) {
			report.skip(orderID, "order not found")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("assign orders: get order %q: %w", orderID, err)
		}

		// Only confirmed orders are assignable. Re-running on an already
		// assigned order is a visible no-op, not a reassignment.
		if order.Status != domain.StatusConfirmed {
			report.skip(orderID, fmt.Sprintf("not assignable from status %q", order.Status))
			continue
		}

		restaurant, err := restaurantRepo.GetRestaurant(ctx, order.Menu.RestaurantID)
		if errors.Is(err, ports.ErrNotFound) {
			report.skip(orderID, fmt.Sprintf("restaurant %q not found", order.Menu.RestaurantID))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("assign orders: get restaurant %q: %w", order.Menu.RestaurantID, err)
		}

		best := nearestFeasibleDriver(snap, restaurant.Position, req.MaxOrdersPerDriver, req.MaxRadiusKm)
		if best == nil {
			report.skip(orderID, fmt.Sprintf("no feasible driver within %.1f km", req.MaxRadiusKm))
			continue
		}

		// Reserve capacity so later candidates in this run see the load.
		best.Active++
		report.Assignments = append(report.Assignments, domain.Assignment{
			OrderID:    orderID,
			DriverID:   best.Driver.DriverID,
			DriverName: best.Driver.Name,
		})
		report.AssignedCount++
	}

	if len(report.Assignments) > 0 {
		if err := orderRepo.ApplyAssignments(ctx, report.Assignments); err != nil {
			return nil, fmt.Errorf("assign orders: commit assignments: %w", err)
		}
	}

	return report, nil
}

// nearestFeasibleDriver picks the minimum-distance driver with spare capacity
// within the radius. Snapshot order breaks ties: the first driver seen at the
// minimum distance wins.
func nearestFeasibleDriver(
	snap *WorkloadSnapshot,
	at domain.Coordinates,
	capacity int,
	radiusKm float64,
) *DriverLoad {
	var best *DriverLoad
	var bestKm float64

	for _, dl := range snap.Drivers {
		if dl.Active >= capacity {
			continue
		}

		km := domain.HaversineKm(dl.Driver.Position, at)
		if km > radiusKm {
			continue
		}

		if best == nil || km < bestKm {
			best = dl
			bestKm = km
		}
	}

	return best
}

func (r *AssignmentReport) skip(orderID, reason string) {
	r.Unassigned = append(r.Unassigned, UnassignedOrder{OrderID: orderID, Reason: reason})
	log.Printf("assign orders: skip order_id=%s reason=%q", orderID, reason)
}
