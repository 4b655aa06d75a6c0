package network

import (
	"math"
	"time"

	"planner.opentransit.org/internal/coverage"
	"planner.opentransit.org/internal/geomath"
	"planner.opentransit.org/internal/metrics"
	"planner.opentransit.org/internal/models"
	"planner.opentransit.org/internal/relation"
)

// Cascade labels used for the recompute duration histogram.
const (
	cascadeStop        = "stop"
	cascadeRoute       = "route"
	cascadeArea        = "area"
	cascadeDestination = "destination"
	cascadeFull        = "full"
)

// recomputeCoverage replaces every stop's coverage entries and refreshes
// the per-area aggregate gauges.
func (n *Network) recomputeCoverage() {
	for _, s := range n.stops {
		coverage.UpdateStopAreaInfo(s, n.areas)
	}
	for _, a := range n.areas {
		percent := coverage.AggregateAreaCoverage(a, n.stops)
		metrics.AreaCoveragePercent.WithLabelValues(a.ID).Set(percent)
	}
}

// recomputeRelations runs the destination containment and proximity pass.
func (n *Network) recomputeRelations() {
	relation.UpdateAll(n.stops, n.areas, n.destinations)
}

// recomputeAreaSurface refreshes the area's derived surface and density.
// Density is residents per square meter, rounded to 6 decimals, 0 for a
// zero-surface polygon.
func (n *Network) recomputeAreaSurface(a *models.Area) {
	a.AreaM2 = geomath.PolygonAreaM2(a.Ring())
	if a.AreaM2 > 0 {
		a.PopulationDensity = round6(float64(a.Population) / a.AreaM2)
	} else {
		a.PopulationDensity = 0
	}
	metrics.AreaPopulationDensity.WithLabelValues(a.ID).Set(a.PopulationDensity)
}

// recomputeAll rebuilds every derived relation from scratch: snap pass for
// all routes, area surfaces, coverage, destination relations.
func (n *Network) recomputeAll() {
	defer n.observe(cascadeFull, time.Now())
	n.resnapAll()
	for _, a := range n.areas {
		n.recomputeAreaSurface(a)
	}
	n.recomputeCoverage()
	n.recomputeRelations()
	n.updateEntityGauges()
}

func (n *Network) updateEntityGauges() {
	metrics.StopsTotal.Set(float64(len(n.stops)))
	metrics.RoutesTotal.Set(float64(len(n.routes)))
	metrics.AreasTotal.Set(float64(len(n.areas)))
	metrics.DestinationsTotal.Set(float64(len(n.destinations)))
}

func (n *Network) observe(cascade string, start time.Time) {
	metrics.RecomputeDuration.WithLabelValues(cascade).Observe(time.Since(start).Seconds())
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
