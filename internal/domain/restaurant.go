package domain

// Restaurant is the pickup point for a daily order. Read-only input to
// distance computation.
type Restaurant struct {
	RestaurantID string
	Position     Coordinates
}
