package handlers

import (
	"catering-fulfillment-service/internal/api/dto"
	"catering-fulfillment-service/internal/ports"
	"log"
	"net/http"
	"strings"
)

// OrderHandler exposes read-only daily-order retrieval for the client app.
type OrderHandler struct {
	DailyOrders ports.DailyOrderRepository
}

func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID := strings.TrimSpace(r.URL.Query().Get("userId"))
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "userId is required")
		return
	}

	orders, err := h.DailyOrders.ListDailyOrdersByUser(r.Context(), userID)
	if err != nil {
		log.Printf("list daily orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDailyOrdersResponse{
		Orders: make([]dto.DailyOrderResponse, 0, len(orders)),
	}
	for _, o := range orders {
		res.Orders = append(res.Orders, dto.DailyOrderResponse{
			OrderID:        o.OrderID,
			SubscriptionID: o.SubscriptionID,
			DayIndex:       o.DayIndex,
			MealTime:       o.MealTime,
			MenuID:         o.Menu.MenuID,
			MenuName:       o.Menu.Name,
			MenuPrice:      o.Menu.Price,
			RestaurantID:   o.Menu.RestaurantID,
			DeliveryDate:   o.DeliveryDate,
			ShippingFee:    o.ShippingFee,
			Status:         string(o.Status),
			DriverID:       o.DriverID,
			DriverName:     o.DriverName,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
