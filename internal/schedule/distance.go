package schedule

import (
	"planner.opentransit.org/internal/geomath"
	"planner.opentransit.org/internal/models"
)

// SpeedKmh is the assumed travel speed along the whole route, independent
// of stop spacing.
const SpeedKmh = 21.0

// TotalLengthMeters sums the consecutive-point distances of the route's
// drawn geometry.
func TotalLengthMeters(route *models.Route) float64 {
	if route == nil || len(route.Points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(route.Points); i++ {
		total += geomath.DistanceMeters(route.Points[i-1].Position(), route.Points[i].Position())
	}
	return total
}

// CumulativeDistanceMeters returns the along-route distance from the start
// of the (possibly reversed) direction to the first point snapped to
// stopID. The reverse direction is defined as total length minus the
// forward distance rather than by walking a reversed point list, so the
// forward and reverse distances of any stop sum to the total length
// exactly. Routes with fewer than 2 points, or a stopID the geometry never
// reaches, yield 0.
func CumulativeDistanceMeters(route *models.Route, stopID int, reverse bool) float64 {
	if route == nil || len(route.Points) < 2 {
		return 0
	}
	var forward float64
	found := false
	for i, p := range route.Points {
		if i > 0 {
			forward += geomath.DistanceMeters(route.Points[i-1].Position(), p.Position())
		}
		if p.StopID != nil && *p.StopID == stopID {
			found = true
			break
		}
	}
	if !found {
		return 0
	}
	if reverse {
		return TotalLengthMeters(route) - forward
	}
	return forward
}

// TravelTimeMinutes converts a stop's cumulative distance into minutes at
// the assumed route speed.
func TravelTimeMinutes(route *models.Route, stopID int, reverse bool) float64 {
	return CumulativeDistanceMeters(route, stopID, reverse) / 1000 / SpeedKmh * 60
}
