package handlers

import (
	"catering-fulfillment-service/internal/api/dto"
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/ports"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// TransactionHandler exposes the checkout entry point: it records a pending
// payment order and delegates payment collection to the gateway.
type TransactionHandler struct {
	PaymentOrders ports.PaymentOrderRepository
	Gateway       ports.PaymentGateway
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CreateTransactionRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.UserID) == "" {
		writeError(w, r, http.StatusBadRequest, "userId is required")
		return
	}
	if req.FinalPrice <= 0 {
		writeError(w, r, http.StatusBadRequest, "finalPrice must be positive")
		return
	}
	if len(req.Slots) == 0 {
		writeError(w, r, http.StatusBadRequest, "slots must not be empty")
		return
	}

	order := &domain.PaymentOrder{
		OrderID:      fmt.Sprintf("KATERING-%s-%d", req.UserID, time.Now().UnixMilli()),
		UserID:       req.UserID,
		Slots:        slotsFromRequest(req.Slots),
		TotalPrice:   req.FinalPrice,
		ShippingCost: req.ShippingCost,
		Status:       domain.PaymentPending,
		CreatedAt:    time.Now(),
	}

	if err := h.PaymentOrders.CreatePaymentOrder(r.Context(), order); err != nil {
		log.Printf("create transaction: persist order failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	paymentURL, err := h.Gateway.CreateTransaction(r.Context(), order.OrderID, order.TotalPrice)
	if err != nil {
		log.Printf("create transaction: gateway call failed order_id=%s: %v", order.OrderID, err)
		writeError(w, r, http.StatusBadGateway, "payment gateway unavailable")
		return
	}

	if err := h.PaymentOrders.SetPaymentURL(r.Context(), order.OrderID, paymentURL); err != nil {
		log.Printf("create transaction: store payment url failed order_id=%s: %v", order.OrderID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.CreateTransactionResponse{PaymentURL: paymentURL})
}

func slotsFromRequest(slots []dto.SlotRequest) []domain.Slot {
	out := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		slot := domain.Slot{DayIndex: s.Day, MealTime: s.MealTime}
		if s.Menu != nil {
			slot.Menu = &domain.MenuSnapshot{
				MenuID:       s.Menu.MenuID,
				Name:         s.Menu.Name,
				Price:        s.Menu.Price,
				ImageURL:     s.Menu.ImageURL,
				RestaurantID: s.Menu.RestaurantID,
			}
		}
		out = append(out, slot)
	}
	return out
}
