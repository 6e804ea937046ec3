package domain

import "math"

// Earth radius used for great-circle math, in kilometers.
const earthRadiusKm = 6371.0

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// HaversineKm returns the great-circle surface distance between two points
// in kilometers. Symmetric: HaversineKm(a, b) == HaversineKm(b, a).
// Callers must default missing coordinates to (0, 0) before calling.
func HaversineKm(a, b Coordinates) float64 {
	latA := degToRad(a.Lat)
	latB := degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
