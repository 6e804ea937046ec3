package handlers

import (
	"bytes"
	"catering-fulfillment-service/internal/adapters/payment"
	"catering-fulfillment-service/internal/adapters/repositories"
	"catering-fulfillment-service/internal/api/dto"
	"catering-fulfillment-service/internal/domain"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postTransaction(t *testing.T, h *TransactionHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/createTransaction", bytes.NewReader([]byte(body)))
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)
	return rec
}

func TestCreateTransactionReturnsPaymentURL(t *testing.T) {
	store := repositories.NewMemoryStore()
	gateway := &payment.MockGateway{RedirectURL: "https://pay.example/redirect"}
	h := &TransactionHandler{PaymentOrders: store, Gateway: gateway}

	rec := postTransaction(t, h, `{
		"userId": "u1",
		"finalPrice": 90000,
		"shippingCost": 6000,
		"slots": [{"day": 1, "mealTime": "lunch", "menu": {"menuId": "m1", "restaurantId": "resto-1", "price": 42000}}]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var res dto.CreateTransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.PaymentURL != "https://pay.example/redirect" {
		t.Errorf("paymentUrl = %q", res.PaymentURL)
	}

	if len(gateway.CreatedOrders) != 1 {
		t.Fatalf("gateway calls = %d, want 1", len(gateway.CreatedOrders))
	}
	orderID := gateway.CreatedOrders[0]
	if !strings.HasPrefix(orderID, "KATERING-u1-") {
		t.Errorf("order id = %q, want KATERING-u1-<ts>", orderID)
	}

	order := store.PaymentOrders[orderID]
	if order == nil {
		t.Fatal("payment order not persisted")
	}
	if order.Status != domain.PaymentPending {
		t.Errorf("status = %q, want pending", order.Status)
	}
	if order.PaymentURL != "https://pay.example/redirect" {
		t.Errorf("stored payment url = %q", order.PaymentURL)
	}
	if len(order.Slots) != 1 || order.Slots[0].Menu == nil || order.Slots[0].Menu.RestaurantID != "resto-1" {
		t.Errorf("slots not snapshotted: %+v", order.Slots)
	}
}

func TestCreateTransactionValidatesInput(t *testing.T) {
	h := &TransactionHandler{
		PaymentOrders: repositories.NewMemoryStore(),
		Gateway:       &payment.MockGateway{},
	}

	cases := map[string]string{
		"missing user":   `{"finalPrice": 90000, "slots": [{"day": 1, "mealTime": "lunch"}]}`,
		"zero price":     `{"userId": "u1", "finalPrice": 0, "slots": [{"day": 1, "mealTime": "lunch"}]}`,
		"empty slots":    `{"userId": "u1", "finalPrice": 90000, "slots": []}`,
		"unknown field":  `{"userId": "u1", "finalPrice": 90000, "slots": [{"day": 1, "mealTime": "lunch"}], "bogus": 1}`,
		"trailing bytes": `{"userId": "u1", "finalPrice": 90000, "slots": [{"day": 1, "mealTime": "lunch"}]} {}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if rec := postTransaction(t, h, body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateTransactionGatewayFailureIs502(t *testing.T) {
	store := repositories.NewMemoryStore()
	h := &TransactionHandler{
		PaymentOrders: store,
		Gateway:       &payment.MockGateway{Err: errors.New("snap down")},
	}

	rec := postTransaction(t, h, `{
		"userId": "u1",
		"finalPrice": 90000,
		"slots": [{"day": 1, "mealTime": "lunch", "menu": {"menuId": "m1", "restaurantId": "resto-1"}}]
	}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}

	// The pending order stays recorded so the attempt is auditable.
	if len(store.PaymentOrders) != 1 {
		t.Errorf("payment orders = %d, want 1", len(store.PaymentOrders))
	}
}
