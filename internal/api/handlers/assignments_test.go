package handlers

import (
	"bytes"
	"catering-fulfillment-service/internal/adapters/lock"
	"catering-fulfillment-service/internal/adapters/repositories"
	"catering-fulfillment-service/internal/api/dto"
	"catering-fulfillment-service/internal/domain"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newAssignmentHandler(store *repositories.MemoryStore) *AssignmentHandler {
	return &AssignmentHandler{
		DailyOrders: store,
		Drivers:     store,
		Restaurants: store,
		Locker:      lock.NewLocalRunLocker(),
		Settings:    testSettings(),
	}
}

func postAssign(t *testing.T, h *AssignmentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/markReadyAndAutoAssign", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	h.MarkReadyAndAutoAssign(rec, req)
	return rec
}

func TestMarkReadyReportsPartialSuccess(t *testing.T) {
	store := repositories.NewMemoryStore()
	store.Restaurants["resto-1"] = &domain.Restaurant{RestaurantID: "resto-1"}
	store.Drivers = []*domain.Driver{
		{DriverID: "drv-1", Name: "Budi", Verified: true},
	}
	store.DailyOrders["o-1"] = &domain.DailyOrder{
		OrderID: "o-1",
		Status:  domain.StatusConfirmed,
		Menu:    domain.MenuSnapshot{MenuID: "m1", RestaurantID: "resto-1"},
	}

	rec := postAssign(t, newAssignmentHandler(store), `{"orderIds":["o-1","o-gone"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.AssignOrdersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Success {
		t.Error("success must be false on partial assignment")
	}
	if res.AssignedCount != 1 {
		t.Errorf("assignedCount = %d, want 1", res.AssignedCount)
	}
	if len(res.Unassigned) != 1 || res.Unassigned[0].OrderID != "o-gone" {
		t.Errorf("unassigned = %+v", res.Unassigned)
	}
}

func TestMarkReadyRejectsEmptyList(t *testing.T) {
	store := repositories.NewMemoryStore()

	rec := postAssign(t, newAssignmentHandler(store), `{"orderIds":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMarkReadyRejectsUnknownFields(t *testing.T) {
	store := repositories.NewMemoryStore()

	rec := postAssign(t, newAssignmentHandler(store), `{"orderIds":["o-1"],"bogus":true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
