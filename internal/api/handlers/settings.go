package handlers

// Settings are the product-configuration constants the fulfillment core
// runs under. All of them arrive from the environment; none are hardcoded
// because observed deployments disagree on the values.
type Settings struct {
	// MaxOrdersPerDriver caps concurrent active orders per driver.
	MaxOrdersPerDriver int
	// MaxRadiusKm is the assignment feasibility radius.
	MaxRadiusKm float64
	// EveningCutoffHour pushes delivery starts an extra day for late orders.
	EveningCutoffHour int
}
