package repositories

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory implementation of the repository ports, used
// by service tests in place of PostgreSQL. Writes hold a mutex so tests may
// exercise concurrent runs.
type MemoryStore struct {
	mu sync.Mutex

	Subscriptions map[string]*domain.Subscription
	DailyOrders   map[string]*domain.DailyOrder
	PaymentOrders map[string]*domain.PaymentOrder
	Restaurants   map[string]*domain.Restaurant

	// Drivers keeps insertion order, mirroring the ORDER BY id contract of
	// the Postgres repository.
	Drivers []*domain.Driver

	// FailCommits makes multi-record commits fail, for atomicity tests.
	FailCommits bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Subscriptions: make(map[string]*domain.Subscription),
		DailyOrders:   make(map[string]*domain.DailyOrder),
		PaymentOrders: make(map[string]*domain.PaymentOrder),
		Restaurants:   make(map[string]*domain.Restaurant),
	}
}

func (m *MemoryStore) CreateSubscriptionWithOrders(ctx context.Context, sub *domain.Subscription, orders []*domain.DailyOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCommits {
		return errors.New("memory store: commit failed")
	}

	m.Subscriptions[sub.SubscriptionID] = sub
	for _, o := range orders {
		existing, ok := m.DailyOrders[o.OrderID]
		if ok {
			// Re-materialization must not clobber an assignment already made.
			cp := *o
			cp.Status = existing.Status
			cp.DriverID = existing.DriverID
			cp.DriverName = existing.DriverName
			m.DailyOrders[o.OrderID] = &cp
			continue
		}
		m.DailyOrders[o.OrderID] = o
	}

	return nil
}

func (m *MemoryStore) GetDailyOrder(ctx context.Context, orderID string) (*domain.DailyOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.DailyOrders[orderID]
	if !ok {
		return nil, fmt.Errorf("get daily order %q: %w", orderID, ports.ErrNotFound)
	}

	cp := *o
	return &cp, nil
}

func (m *MemoryStore) ListDailyOrdersByStatus(ctx context.Context, statuses []domain.OrderStatus) ([]*domain.DailyOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := make(map[domain.OrderStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}

	orders := make([]*domain.DailyOrder, 0, len(m.DailyOrders))
	for _, o := range m.DailyOrders {
		if _, ok := set[o.Status]; ok {
			cp := *o
			orders = append(orders, &cp)
		}
	}

	return orders, nil
}

func (m *MemoryStore) ListDailyOrdersByUser(ctx context.Context, userID string) ([]*domain.DailyOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orders := make([]*domain.DailyOrder, 0, len(m.DailyOrders))
	for _, o := range m.DailyOrders {
		if o.UserID == userID {
			cp := *o
			orders = append(orders, &cp)
		}
	}

	return orders, nil
}

func (m *MemoryStore) ApplyAssignments(ctx context.Context, assignments []domain.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCommits {
		return errors.New("memory store: commit failed")
	}

	for _, a := range assignments {
		o, ok := m.DailyOrders[a.OrderID]
		if !ok {
			return fmt.Errorf("apply assignments: order %q: %w", a.OrderID, ports.ErrNotFound)
		}
		o.Status = domain.StatusAssigned
		o.DriverID = a.DriverID
		o.DriverName = a.DriverName
	}

	return nil
}

func (m *MemoryStore) ListVerifiedDrivers(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drivers := make([]*domain.Driver, 0, len(m.Drivers))
	for _, d := range m.Drivers {
		if d.Verified {
			cp := *d
			drivers = append(drivers, &cp)
		}
	}

	return drivers, nil
}

func (m *MemoryStore) GetRestaurant(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.Restaurants[restaurantID]
	if !ok {
		return nil, fmt.Errorf("get restaurant %q: %w", restaurantID, ports.ErrNotFound)
	}

	cp := *r
	return &cp, nil
}

func (m *MemoryStore) CreatePaymentOrder(ctx context.Context, order *domain.PaymentOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *order
	m.PaymentOrders[order.OrderID] = &cp
	return nil
}

func (m *MemoryStore) GetPaymentOrder(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.PaymentOrders[orderID]
	if !ok {
		return nil, fmt.Errorf("get payment order %q: %w", orderID, ports.ErrNotFound)
	}

	cp := *o
	return &cp, nil
}

func (m *MemoryStore) SetPaymentURL(ctx context.Context, orderID, paymentURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.PaymentOrders[orderID]
	if !ok {
		return fmt.Errorf("set payment url for order %q: %w", orderID, ports.ErrNotFound)
	}
	o.PaymentURL = paymentURL
	return nil
}

func (m *MemoryStore) SetPaymentStatus(ctx context.Context, orderID, status string, gatewayPayload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.PaymentOrders[orderID]
	if !ok {
		return fmt.Errorf("set payment status for order %q: %w", orderID, ports.ErrNotFound)
	}
	o.Status = status
	return nil
}
