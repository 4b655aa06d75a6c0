// Package coverage computes how much of each area's surface falls inside
// stop catchment discs, and the population those discs serve.
package coverage

import (
	"math"

	"planner.opentransit.org/internal/geomath"
	"planner.opentransit.org/internal/models"
)

const (
	// CatchmentRadiusMeters is the fixed walkable service radius of a stop.
	CatchmentRadiusMeters = 300
	// DiscSteps is the side count of the polygon approximating a catchment disc.
	DiscSteps = 64
	// noiseFloorPercent drops coverage entries too small to be meaningful.
	noiseFloorPercent = 0.1
)

// StopAreaCoverage returns the percentage of area's surface within stop's
// catchment disc, in [0,100]. Zero-surface areas and degenerate geometry
// report 0 rather than failing.
func StopAreaCoverage(stop *models.Stop, area *models.Area) float64 {
	ring := area.Ring()
	if len(ring) < 3 || area.AreaM2 <= 0 {
		return 0
	}
	disc := geomath.BufferCircle(stop.Position(), CatchmentRadiusMeters, DiscSteps)
	if disc == nil {
		return 0
	}
	f := geomath.NewFrame(geomath.RingCentroid(ring))
	return normalize(f.IntersectionArea(disc, ring), area.AreaM2)
}

// AggregateAreaCoverage returns the percentage of area's surface within the
// union of all stops' catchment discs. Discs are unioned before
// intersecting so overlapping catchments are not double-counted.
func AggregateAreaCoverage(area *models.Area, stops []*models.Stop) float64 {
	ring := area.Ring()
	if len(ring) < 3 || area.AreaM2 <= 0 || len(stops) == 0 {
		return 0
	}
	f := geomath.NewFrame(geomath.RingCentroid(ring))
	discs := make([][]models.Position, 0, len(stops))
	for _, s := range stops {
		if disc := geomath.BufferCircle(s.Position(), CatchmentRadiusMeters, DiscSteps); disc != nil {
			discs = append(discs, disc)
		}
	}
	union := f.Union(discs)
	if union == nil {
		return 0
	}
	return normalize(f.PolygonIntersectionArea(union, ring), area.AreaM2)
}

// CatchmentUnion returns the combined catchment geometry of the given
// stops as geographic rings, for rendering by the map widget.
func CatchmentUnion(stops []*models.Stop) [][]models.Position {
	if len(stops) == 0 {
		return nil
	}
	f := geomath.NewFrame(stops[0].Position())
	discs := make([][]models.Position, 0, len(stops))
	for _, s := range stops {
		if disc := geomath.BufferCircle(s.Position(), CatchmentRadiusMeters, DiscSteps); disc != nil {
			discs = append(discs, disc)
		}
	}
	return f.Unproject(f.Union(discs))
}

// UpdateStopAreaInfo recomputes the stop's coverage entries against every
// area, replacing the previous list wholesale. Entries at or below the
// noise floor are dropped; coverage is rounded to 2 decimals and the served
// population to the nearest whole resident.
func UpdateStopAreaInfo(stop *models.Stop, areas []*models.Area) {
	entries := make([]models.StopAreaInfo, 0, len(areas))
	for _, area := range areas {
		percent := StopAreaCoverage(stop, area)
		if percent <= noiseFloorPercent {
			continue
		}
		entries = append(entries, models.StopAreaInfo{
			AreaID:           area.ID,
			Coverage:         math.Round(percent*100) / 100,
			PopulationServed: int(math.Round(float64(area.Population) * percent / 100)),
		})
	}
	stop.Areas = entries
}

func normalize(intersectionM2, areaM2 float64) float64 {
	percent := intersectionM2 / areaM2 * 100
	if percent > 100 {
		return 100
	}
	if percent < 0 || math.IsNaN(percent) {
		return 0
	}
	return percent
}
