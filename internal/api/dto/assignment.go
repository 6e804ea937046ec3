package dto

type AssignOrdersRequest struct {
	OrderIDs []string `json:"orderIds"`
}

type UnassignedOrderResponse struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

// AssignOrdersResponse distinguishes full success (AssignedCount equals the
// input size), partial success, and zero assignments: restaurant operators
// need to know which orders still require manual handling.
type AssignOrdersResponse struct {
	Success       bool                      `json:"success"`
	AssignedCount int                       `json:"assignedCount"`
	Unassigned    []UnassignedOrderResponse `json:"unassigned"`
}
