package schedule

import (
	"math"
	"testing"

	"planner.opentransit.org/internal/models"
)

func TestTotalLengthMeters(t *testing.T) {
	route := newTestRoute(t)
	got := TotalLengthMeters(route)
	if math.Abs(got-3000) > 0.01 {
		t.Errorf("Expected total length ~3000m, got %f", got)
	}

	t.Run("degenerate routes have zero length", func(t *testing.T) {
		if got := TotalLengthMeters(nil); got != 0 {
			t.Errorf("Expected 0 for nil route, got %f", got)
		}
		short := &models.Route{Points: route.Points[:1]}
		if got := TotalLengthMeters(short); got != 0 {
			t.Errorf("Expected 0 for single-point route, got %f", got)
		}
	})
}

func TestCumulativeDistanceMeters(t *testing.T) {
	route := newTestRoute(t)
	total := TotalLengthMeters(route)

	tests := []struct {
		name    string
		stopID  int
		reverse bool
		want    float64
	}{
		{"first stop forward", 1, false, 0},
		{"middle stop forward", 2, false, 1000},
		{"last stop forward", 3, false, 3000},
		{"last stop reverse", 3, true, 0},
		{"middle stop reverse", 2, true, 2000},
		{"first stop reverse", 1, true, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CumulativeDistanceMeters(route, tt.stopID, tt.reverse)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}

	t.Run("forward and reverse sum to the total", func(t *testing.T) {
		for _, stopID := range route.StopIDs {
			f := CumulativeDistanceMeters(route, stopID, false)
			r := CumulativeDistanceMeters(route, stopID, true)
			if math.Abs(f+r-total) > 1e-9 {
				t.Errorf("Stop %d: forward %f + reverse %f != total %f", stopID, f, r, total)
			}
		}
	})

	t.Run("unknown stop yields zero", func(t *testing.T) {
		if got := CumulativeDistanceMeters(route, 99, false); got != 0 {
			t.Errorf("Expected 0 for unknown stop, got %f", got)
		}
	})

	t.Run("unsnapped vertices still count toward distance", func(t *testing.T) {
		id1, id2 := 1, 2
		base := 45.0
		detour := &models.Route{
			ID:      2,
			StopIDs: []int{1, 2},
			Points: []models.RoutePoint{
				{Lat: base, Lng: 9.0, StopID: &id1},
				{Lat: base + 500/metersPerDegree, Lng: 9.0},
				{Lat: base + 1500/metersPerDegree, Lng: 9.0, StopID: &id2},
			},
		}
		got := CumulativeDistanceMeters(detour, 2, false)
		if math.Abs(got-1500) > 0.01 {
			t.Errorf("Expected 1500m through the unsnapped vertex, got %f", got)
		}
	})
}

func TestTravelTimeMinutes(t *testing.T) {
	route := newTestRoute(t)

	got := TravelTimeMinutes(route, 3, false)
	want := 3.0 / SpeedKmh * 60 // 3 km at 21 km/h
	if math.Abs(got-want) > 0.001 {
		t.Errorf("Expected %f minutes to the last stop, got %f", want, got)
	}

	if got := TravelTimeMinutes(route, 1, false); got != 0 {
		t.Errorf("Expected 0 minutes to the first stop, got %f", got)
	}
}
