package payment

import (
	"bytes"
	"catering-fulfillment-service/internal/ports"
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrBadSignature marks webhook payloads whose signature does not match the
// server key. Such payloads must be rejected before any state change.
var ErrBadSignature = errors.New("payment notification signature mismatch")

// MidtransGateway implements the PaymentGateway port against the Midtrans
// Snap API.
type MidtransGateway struct {
	serverKey string
	snapBase  string
	finishURL string
	session   *http.Client
}

func NewMidtransGateway(serverKey, snapBase, finishURL string) (*MidtransGateway, error) {
	if strings.TrimSpace(serverKey) == "" {
		return nil, errors.New("midtrans gateway: server key must not be empty")
	}
	if strings.TrimSpace(snapBase) == "" {
		return nil, errors.New("midtrans gateway: snap base URL must not be empty")
	}

	return &MidtransGateway{
		serverKey: serverKey,
		snapBase:  strings.TrimRight(snapBase, "/"),
		finishURL: finishURL,
		session:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type snapTransactionRequest struct {
	TransactionDetails struct {
		OrderID     string `json:"order_id"`
		GrossAmount int64  `json:"gross_amount"`
	} `json:"transaction_details"`
	Callbacks struct {
		Finish string `json:"finish,omitempty"`
	} `json:"callbacks"`
}

type snapTransactionResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// CreateTransaction creates a Snap transaction and returns the redirect URL
// the client completes payment at.
func (g *MidtransGateway) CreateTransaction(ctx context.Context, orderID string, grossAmount int64) (string, error) {
	var payload snapTransactionRequest
	payload.TransactionDetails.OrderID = orderID
	payload.TransactionDetails.GrossAmount = grossAmount
	payload.Callbacks.Finish = g.finishURL

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("create transaction %q: marshal request: %w", orderID, err)
	}

	url := g.snapBase + "/snap/v1/transactions"
	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodPost, url, bytes.NewReader(body))
	})
	if err != nil {
		return "", fmt.Errorf("create transaction %q: %w", orderID, err)
	}
	defer resp.Body.Close()

	var parsed snapTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("create transaction %q: decode response: %w", orderID, err)
	}
	if parsed.RedirectURL == "" {
		return "", fmt.Errorf("create transaction %q: response has no redirect_url", orderID)
	}

	return parsed.RedirectURL, nil
}

type notificationPayload struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
}

// ParseNotification verifies and decodes a gateway webhook payload. The
// signature is sha512(order_id + status_code + gross_amount + server_key)
// per the gateway's webhook contract.
func (g *MidtransGateway) ParseNotification(ctx context.Context, payload []byte) (*ports.PaymentNotification, error) {
	var n notificationPayload
	if err := json.Unmarshal(payload, &n); err != nil {
		return nil, fmt.Errorf("parse payment notification: %w", err)
	}

	if n.OrderID == "" {
		return nil, errors.New("parse payment notification: order_id missing")
	}

	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + g.serverKey))
	want := hex.EncodeToString(sum[:])
	if subtle.ConstantTimeCompare([]byte(want), []byte(n.SignatureKey)) != 1 {
		return nil, fmt.Errorf("parse payment notification for order %q: %w", n.OrderID, ErrBadSignature)
	}

	return &ports.PaymentNotification{
		OrderID:           n.OrderID,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		GrossAmount:       n.GrossAmount,
		StatusCode:        n.StatusCode,
		Raw:               payload,
	}, nil
}
