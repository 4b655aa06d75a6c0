package geomath

import (
	"math"

	"github.com/golang/geo/s2"

	"planner.opentransit.org/internal/models"
)

// EarthRadiusMeters represents the mean radius of the Earth in meters.
//
// This value (6,371,000 meters) is defined as the Earth's volumetric mean radius,
// which is commonly used for general geospatial calculations and spherical approximations.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const EarthRadiusMeters = 6371000

// metersPerDegree is the length of one degree of latitude on the spherical
// Earth approximation used throughout the planner.
const metersPerDegree = 2 * math.Pi * EarthRadiusMeters / 360

// DistanceMeters returns the great-circle (Haversine) distance between two
// positions. It is symmetric and zero only when both positions are equal.
func DistanceMeters(a, b models.Position) float64 {
	if a == b {
		return 0
	}
	p1 := s2.LatLngFromDegrees(a.Lat, a.Lng)
	p2 := s2.LatLngFromDegrees(b.Lat, b.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds.
//
// Note: the coordinate (0,0) is treated as invalid, even though it is a
// valid location in the Gulf of Guinea. This helps detect uninitialized or
// placeholder coordinates commonly represented as (0,0).
func IsValidLatLon(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}

// BufferCircle approximates the disc of the given radius around center as a
// closed ring with the given number of sides. The returned ring has steps+1
// vertices, the last repeating the first.
func BufferCircle(center models.Position, radiusMeters float64, steps int) []models.Position {
	if steps < 3 || radiusMeters <= 0 {
		return nil
	}
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	ring := make([]models.Position, 0, steps+1)
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		dx := radiusMeters * math.Cos(theta)
		dy := radiusMeters * math.Sin(theta)
		ring = append(ring, models.Position{
			Lat: center.Lat + dy/metersPerDegree,
			Lng: center.Lng + dx/(metersPerDegree*cosLat),
		})
	}
	ring = append(ring, ring[0])
	return ring
}

// RingCentroid returns the arithmetic mean of the ring's vertices. It is
// only used as a projection reference point, so the cheap vertex average is
// accurate enough.
func RingCentroid(ring []models.Position) models.Position {
	if len(ring) == 0 {
		return models.Position{}
	}
	var lat, lng float64
	for _, p := range ring {
		lat += p.Lat
		lng += p.Lng
	}
	n := float64(len(ring))
	return models.Position{Lat: lat / n, Lng: lng / n}
}

// PolygonAreaM2 returns the planar surface of the closed ring in square
// meters. The caller need not close the ring; it is closed before
// computing. Rings with fewer than 3 vertices have zero surface.
func PolygonAreaM2(ring []models.Position) float64 {
	if len(ring) < 3 {
		return 0
	}
	f := NewFrame(RingCentroid(ring))
	return f.RingArea(ring)
}

// PointInPolygon reports whether the point lies inside the closed ring.
// Points exactly on the boundary count as inside; this is the documented
// contract for all containment tests in the planner.
func PointInPolygon(p models.Position, ring []models.Position) bool {
	if len(ring) < 3 {
		return false
	}
	f := NewFrame(RingCentroid(ring))
	return f.Contains(p, ring)
}
