package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StopsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planner_stops_total",
		Help: "Number of stops in the network",
	})

	RoutesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planner_routes_total",
		Help: "Number of routes in the network",
	})

	AreasTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planner_areas_total",
		Help: "Number of coverage areas in the network",
	})

	DestinationsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planner_destinations_total",
		Help: "Number of destinations in the network",
	})
)

var (
	AreaCoveragePercent = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_area_coverage_percent",
		Help: "Percentage of the area's surface covered by the union of all stop catchment discs",
	}, []string{"area_id"})

	AreaPopulationDensity = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_area_population_density",
		Help: "Residents per square meter of the area",
	}, []string{"area_id"})
)

var (
	SnapshotSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_snapshot_saves_total",
		Help: "Number of times the network snapshot was persisted",
	})

	RecomputeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_recompute_duration_seconds",
		Help:    "Duration of full derivation cascades after a mutation",
		Buckets: prometheus.DefBuckets,
	}, []string{"cascade"})
)
