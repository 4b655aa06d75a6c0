// Package snap maps free-form drawn route geometry onto existing stops and
// maintains the stop-to-route membership relation.
package snap

import (
	"planner.opentransit.org/internal/geomath"
	"planner.opentransit.org/internal/models"
)

// DefaultToleranceMeters is how close a drawn vertex must be to a stop for
// the vertex to snap onto it.
const DefaultToleranceMeters = 25

// SnapRoute rebuilds a route's point sequence from raw drawn positions.
//
// For each raw position the nearest stop within tolerance wins; the output
// vertex then takes the stop's exact position (the geometry moves to the
// stop, never the other way around) and the stop's membership set gains
// routeID. Positions with no stop in range are kept verbatim with a nil
// StopID.
//
// Ties at exactly equal distance go to the stop that appears first in
// stops: a later stop only replaces the current candidate when strictly
// closer. A stop exactly at the tolerance distance still snaps.
//
// Membership for routeID is cleared from every stop before the pass, so
// re-running on unchanged geometry is idempotent and stale membership from
// a previous geometry cannot survive.
func SnapRoute(points []models.Position, routeID int, stops []*models.Stop, toleranceMeters float64) []models.RoutePoint {
	for _, s := range stops {
		s.ConnectedRouteIDs = removeID(s.ConnectedRouteIDs, routeID)
	}

	out := make([]models.RoutePoint, 0, len(points))
	for _, p := range points {
		var best *models.Stop
		bestDist := 0.0
		for _, s := range stops {
			d := geomath.DistanceMeters(p, s.Position())
			if d > toleranceMeters {
				continue
			}
			if best == nil || d < bestDist {
				best, bestDist = s, d
			}
		}

		if best == nil {
			out = append(out, models.RoutePoint{Lat: p.Lat, Lng: p.Lng})
			continue
		}

		id := best.ID
		out = append(out, models.RoutePoint{Lat: best.Lat, Lng: best.Lng, StopID: &id})
		best.ConnectedRouteIDs = addID(best.ConnectedRouteIDs, routeID)
	}
	return out
}

// DeriveStopIDs extracts the snapped stop ids from a point sequence in
// geometry order. Duplicates are preserved: a route that passes a stop's
// snap zone twice lists it twice.
func DeriveStopIDs(points []models.RoutePoint) []int {
	ids := make([]int, 0, len(points))
	for _, p := range points {
		if p.StopID != nil {
			ids = append(ids, *p.StopID)
		}
	}
	return ids
}

// RawPositions strips the snap results from a point sequence, returning the
// bare geometry suitable for a fresh SnapRoute pass.
func RawPositions(points []models.RoutePoint) []models.Position {
	raw := make([]models.Position, 0, len(points))
	for _, p := range points {
		raw = append(raw, p.Position())
	}
	return raw
}

func removeID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func addID(ids []int, id int) []int {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}
