package handlers

import (
	"catering-fulfillment-service/internal/api/dto"
	"catering-fulfillment-service/internal/ports"
	"catering-fulfillment-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

// AssignmentHandler exposes the manual assignment trigger used by restaurant
// operators once a batch of orders is ready for pickup.
type AssignmentHandler struct {
	DailyOrders ports.DailyOrderRepository
	Drivers     ports.DriverRepository
	Restaurants ports.RestaurantRepository
	Locker      ports.RunLocker
	Settings    Settings
}

func (h *AssignmentHandler) MarkReadyAndAutoAssign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.AssignOrdersRequest

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

	if len(req.OrderIDs) == 0 {
		writeError(w, r, http.StatusBadRequest, "orderIds must not be empty")
		return
	}

	report, err := services.AssignOrders(r.Context(), services.AssignOrdersRequest{
		OrderIDs:           req.OrderIDs,
		MaxOrdersPerDriver: h.Settings.MaxOrdersPerDriver,
		MaxRadiusKm:        h.Settings.MaxRadiusKm,
	}, h.DailyOrders, h.Drivers, h.Restaurants, h.Locker)
	if errors.Is(err, services.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Printf("assign orders failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.AssignOrdersResponse{
		// Partial success is visible: assignedCount below the input size
		// tells the operator which orders still need manual handling.
		Success:       report.AssignedCount == len(req.OrderIDs),
		AssignedCount: report.AssignedCount,
		Unassigned:    make([]dto.UnassignedOrderResponse, 0, len(report.Unassigned)),
	}
	for _, u := range report.Unassigned {
		res.Unassigned = append(res.Unassigned, dto.UnassignedOrderResponse{
			OrderID: u.OrderID,
			Reason:  u.Reason,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
