package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateTransactionCallsSnapAPI(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok","redirect_url":"https://pay.example/redirect"}`))
	}))
	defer srv.Close()

	g, err := NewMidtransGateway("server-key", srv.URL, "https://app.example/finish")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := g.CreateTransaction(context.Background(), "KATERING-u1-1", 90000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if url != "https://pay.example/redirect" {
		t.Errorf("redirect url = %q", url)
	}
	if gotPath != "/snap/v1/transactions" {
		t.Errorf("path = %q, want /snap/v1/transactions", gotPath)
	}
	if gotAuth == "" {
		t.Error("missing Authorization header")
	}

	details, _ := gotBody["transaction_details"].(map[string]any)
	if details["order_id"] != "KATERING-u1-1" {
		t.Errorf("order_id = %v", details["order_id"])
	}
	if details["gross_amount"] != float64(90000) {
		t.Errorf("gross_amount = %v", details["gross_amount"])
	}
}

func signedNotification(t *testing.T, serverKey, orderID, statusCode, grossAmount, txStatus string) []byte {
	t.Helper()

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	payload := map[string]string{
		"order_id":           orderID,
		"status_code":        statusCode,
		"gross_amount":       grossAmount,
		"transaction_status": txStatus,
		"fraud_status":       "accept",
		"signature_key":      hex.EncodeToString(sum[:]),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return b
}

func TestParseNotificationAcceptsValidSignature(t *testing.T) {
	g, err := NewMidtransGateway("server-key", "https://app.sandbox.midtrans.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := signedNotification(t, "server-key", "KATERING-u1-1", "200", "90000.00", "settlement")

	n, err := g.ParseNotification(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n.OrderID != "KATERING-u1-1" {
		t.Errorf("order id = %q", n.OrderID)
	}
	if n.TransactionStatus != "settlement" {
		t.Errorf("transaction status = %q", n.TransactionStatus)
	}
	if n.FraudStatus != "accept" {
		t.Errorf("fraud status = %q", n.FraudStatus)
	}
}

func TestParseNotificationRejectsBadSignature(t *testing.T) {
	g, err := NewMidtransGateway("server-key", "https://app.sandbox.midtrans.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Signed with a different server key.
	payload := signedNotification(t, "wrong-key", "KATERING-u1-1", "200", "90000.00", "settlement")

	_, err = g.ParseNotification(context.Background(), payload)
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}
