package domain

import (
	"math"
	"testing"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	points := []Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: -6.2001, Lon: 106.8166},
		{Lat: 89.9, Lon: -179.9},
	}

	for _, p := range points {
		if d := HaversineKm(p, p); d != 0 {
			t.Errorf("HaversineKm(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestHaversineSymmetric(t *testing.T) {
	a := Coordinates{Lat: -6.2001, Lon: 106.8166}
	b := Coordinates{Lat: -6.1751, Lon: 106.8650}

	ab := HaversineKm(a, b)
	ba := HaversineKm(b, a)

	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("HaversineKm not symmetric: %v vs %v", ab, ba)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// 0.01 degrees of longitude at the equator is ~1.112 km.
	a := Coordinates{Lat: 0, Lon: 0}
	b := Coordinates{Lat: 0, Lon: 0.01}

	d := HaversineKm(a, b)
	if math.Abs(d-1.112) > 0.01 {
		t.Errorf("HaversineKm = %v, want ~1.112", d)
	}
}
