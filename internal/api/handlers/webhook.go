package handlers

import (
	"catering-fulfillment-service/internal/domain"
	"catering-fulfillment-service/internal/ports"
	"catering-fulfillment-service/internal/services"
	"errors"
	"io"
	"log"
	"net/http"
	"time"
)

// WebhookHandler receives payment-gateway notifications. A settled payment
// triggers daily-order materialization and an automatic assignment run; a
// failed payment marks the order failed.
type WebhookHandler struct {
	PaymentOrders ports.PaymentOrderRepository
	Subscriptions ports.SubscriptionStore
	DailyOrders   ports.DailyOrderRepository
	Drivers       ports.DriverRepository
	Restaurants   ports.RestaurantRepository
	Gateway       ports.PaymentGateway
	Locker        ports.RunLocker
	Settings      Settings
}

func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	defer r.Body.Close()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unreadable body")
		return
	}

	notification, err := h.Gateway.ParseNotification(r.Context(), payload)
	if err != nil {
		log.Printf("payment webhook: reject notification: %v", err)
		writeError(w, r, http.StatusBadRequest, "invalid notification")
		return
	}

	order, err := h.PaymentOrders.GetPaymentOrder(r.Context(), notification.OrderID)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		log.Printf("payment webhook: load order failed order_id=%s: %v", notification.OrderID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Printf("payment webhook: order_id=%s transaction_status=%s fraud_status=%s",
		notification.OrderID, notification.TransactionStatus, notification.FraudStatus)

	switch notification.TransactionStatus {
	case "capture", "settlement":
		if notification.FraudStatus != "accept" {
			break
		}
		if err := h.settle(w, r, order, notification); err != nil {
			return
		}

	case "cancel", "deny", "expire":
		if err := h.PaymentOrders.SetPaymentStatus(r.Context(), order.OrderID, domain.PaymentFailed, notification.Raw); err != nil {
			log.Printf("payment webhook: mark failed order_id=%s: %v", order.OrderID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// settle marks the order paid, materializes its daily orders, and kicks off
// an assignment run. An assignment failure is logged but does not fail the
// webhook: the orders stay confirmed and remain assignable by a later run.
func (h *WebhookHandler) settle(w http.ResponseWriter, r *http.Request, order *domain.PaymentOrder, notification *ports.PaymentNotification) error {
	ctx := r.Context()

	if err := h.PaymentOrders.SetPaymentStatus(ctx, order.OrderID, domain.PaymentPaid, notification.Raw); err != nil {
		log.Printf("payment webhook: mark paid order_id=%s: %v", order.OrderID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return err
	}

	result, err := services.MaterializeDailyOrders(ctx, services.MaterializeRequest{
		SubscriptionID:    order.OrderID,
		UserID:            order.UserID,
		Slots:             order.Slots,
		TotalPrice:        order.TotalPrice,
		ShippingCost:      order.ShippingCost,
		Now:               time.Now(),
		EveningCutoffHour: h.Settings.EveningCutoffHour,
	}, h.Subscriptions)
	if err != nil {
		log.Printf("payment webhook: materialize failed order_id=%s: %v", order.OrderID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return err
	}

	if len(result.OrderIDs) == 0 {
		log.Printf("payment webhook: no daily orders produced order_id=%s", order.OrderID)
		return nil
	}

	report, err := services.AssignOrders(ctx, services.AssignOrdersRequest{
		OrderIDs:           result.OrderIDs,
		MaxOrdersPerDriver: h.Settings.MaxOrdersPerDriver,
		MaxRadiusKm:        h.Settings.MaxRadiusKm,
	}, h.DailyOrders, h.Drivers, h.Restaurants, h.Locker)
	if err != nil {
		log.Printf("payment webhook: auto-assign failed order_id=%s: %v", order.OrderID, err)
		return nil
	}

	log.Printf("payment webhook: auto-assign order_id=%s assigned=%d unassigned=%d",
		order.OrderID, report.AssignedCount, len(report.Unassigned))
	return nil
}
