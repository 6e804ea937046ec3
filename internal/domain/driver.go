package domain

// Driver is a delivery agent. Externally managed: this service reads drivers
// and derives per-run workload counts, but never writes them.
type Driver struct {
	DriverID string
	Name     string
	Position Coordinates
	Verified bool
}
