// Package relation derives destination-to-area containment and
// destination-to-stop proximity sets.
package relation

import (
	"planner.opentransit.org/internal/geomath"
	"planner.opentransit.org/internal/models"
)

// ProximityThresholdMeters is the straight-line distance within which a
// destination counts as near a stop. It intentionally equals the catchment
// radius so "nearby" matches the stop's walkable service area.
const ProximityThresholdMeters = 300

// DestinationsInArea returns the ids of destinations whose position lies
// inside the area's polygon, boundary inclusive.
func DestinationsInArea(area *models.Area, destinations []*models.Destination) []int {
	ring := area.Ring()
	ids := make([]int, 0, len(destinations))
	if len(ring) < 3 {
		return ids
	}
	f := geomath.NewFrame(geomath.RingCentroid(ring))
	for _, d := range destinations {
		if f.Contains(d.Position(), ring) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// DestinationsNearStop returns the ids of destinations within
// thresholdMeters of the stop, measured as straight-line distance rather
// than along the network.
func DestinationsNearStop(stop *models.Stop, destinations []*models.Destination, thresholdMeters float64) []int {
	ids := make([]int, 0, len(destinations))
	for _, d := range destinations {
		if geomath.DistanceMeters(stop.Position(), d.Position()) <= thresholdMeters {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// UpdateAll recomputes every area's containment list and every stop's
// proximity list in one full pass. Both lists are replaced wholesale; no
// incremental indexing is attempted, which keeps the result independent of
// mutation ordering.
func UpdateAll(stops []*models.Stop, areas []*models.Area, destinations []*models.Destination) {
	for _, area := range areas {
		area.DestinationIDs = DestinationsInArea(area, destinations)
	}
	for _, stop := range stops {
		stop.NearbyDestinationIDs = DestinationsNearStop(stop, destinations, ProximityThresholdMeters)
	}
}
