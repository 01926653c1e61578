package utils

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	// JFK to Newark Liberty
	d := Haversine(40.6413, -73.7781, 40.6895, -74.1745)
	if math.Abs(d-33.86) > 0.05 {
		t.Errorf("Expected about 33.86 km, got %f", d)
	}

	if got := Haversine(40.7, -74.0, 40.7, -74.0); got != 0 {
		t.Errorf("Expected 0 for identical points, got %f", got)
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(-3, 1, 50); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
	if got := ClampInt(80, 1, 50); got != 50 {
		t.Errorf("Expected 50, got %d", got)
	}
	if got := ClampInt(7, 1, 50); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
}

func TestRoundTo(t *testing.T) {
	if got := RoundTo(3.14159, 2); got != 3.14 {
		t.Errorf("Expected 3.14, got %f", got)
	}
}
