// Package network owns the planner's entity graph and runs the derivation
// cascades that keep stops, routes, areas, destinations and schedules
// consistent after every mutation.
package network

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/getsentry/sentry-go"

	"planner.opentransit.org/internal/metrics"
	"planner.opentransit.org/internal/models"
	"planner.opentransit.org/internal/report"
	"planner.opentransit.org/internal/schedule"
	"planner.opentransit.org/internal/snap"
	"planner.opentransit.org/internal/store"
	"planner.opentransit.org/internal/utils"
)

// ErrNotFound is returned when a mutation names an entity id the network
// does not have.
var ErrNotFound = errors.New("entity not found")

// Network is the single owner of all planning entities. Every mutation
// happens under one mutex and completes its full recomputation cascade
// before returning, so the graph is always consistent between operations.
type Network struct {
	mu        sync.Mutex
	logger    *slog.Logger
	store     store.Store
	schedules *schedule.Engine

	stops        []*models.Stop
	routes       []*models.Route
	areas        []*models.Area
	destinations []*models.Destination

	lastStopID        int
	lastRouteID       int
	lastAreaID        int
	lastDestinationID int

	onUpdate func(DerivedUpdate)
}

// New creates an empty network persisting into st.
func New(st store.Store, logger *slog.Logger) *Network {
	return &Network{
		logger:    logger,
		store:     st,
		schedules: schedule.NewEngine(st, logger),
	}
}

// SetUpdateListener registers the callback receiving derived-update
// payloads after each mutation. Intended for the websocket hub; must be set
// before the network starts serving mutations.
func (n *Network) SetUpdateListener(fn func(DerivedUpdate)) {
	n.onUpdate = fn
}

// Load restores the persisted snapshot. A missing or unreadable snapshot is
// never fatal: the network starts empty and the failure is logged and
// reported. Derived fields are rebuilt from their inputs regardless of what
// the snapshot contained.
func (n *Network) Load() {
	n.mu.Lock()
	defer n.mu.Unlock()

	snap, ok, err := n.store.LoadSnapshot()
	if err != nil {
		n.logger.Error("failed to load snapshot, starting with empty network", "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("operation", "load_snapshot"),
			Level: sentry.LevelWarning,
		})
		return
	}
	if !ok {
		n.logger.Info("no persisted network found, starting empty")
		return
	}

	n.adopt(snap)
	n.recomputeAll()
	n.logger.Info("network loaded",
		"stops", len(n.stops), "routes", len(n.routes),
		"areas", len(n.areas), "destinations", len(n.destinations))
}

// Replace swaps in a whole new snapshot (import), rebuilding all derived
// data and persisting the result.
func (n *Network) Replace(snap *models.Snapshot) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.adopt(snap)
	n.recomputeAll()
	n.persist()
	n.emit(DerivedUpdate{Kind: UpdateNetwork})
}

// Snapshot returns a deep copy of the current persisted state.
func (n *Network) Snapshot() *models.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

// adopt takes ownership of the snapshot's entities, dropping dangling
// references instead of failing, and re-seeds the id counters from the
// highest ids present so deleted ids are never reused.
func (n *Network) adopt(snap *models.Snapshot) {
	n.stops = snap.Stops
	n.routes = snap.Routes
	n.areas = snap.Areas
	n.destinations = snap.Destinations
	if n.stops == nil {
		n.stops = []*models.Stop{}
	}
	if n.routes == nil {
		n.routes = []*models.Route{}
	}
	if n.areas == nil {
		n.areas = []*models.Area{}
	}
	if n.destinations == nil {
		n.destinations = []*models.Destination{}
	}

	known := make(map[int]bool, len(n.stops))
	n.lastStopID = 0
	for _, s := range n.stops {
		known[s.ID] = true
		if s.ID > n.lastStopID {
			n.lastStopID = s.ID
		}
	}

	n.lastRouteID = 0
	for _, r := range n.routes {
		if r.ID > n.lastRouteID {
			n.lastRouteID = r.ID
		}
		for i := range r.Points {
			if r.Points[i].StopID != nil && !known[*r.Points[i].StopID] {
				r.Points[i].StopID = nil
			}
		}
	}

	n.lastDestinationID = 0
	for _, d := range n.destinations {
		if d.ID > n.lastDestinationID {
			n.lastDestinationID = d.ID
		}
	}

	n.lastAreaID = 0
	for _, a := range n.areas {
		if seq, ok := areaSequence(a.ID); ok && seq > n.lastAreaID {
			n.lastAreaID = seq
		}
	}
}

func (n *Network) snapshotLocked() *models.Snapshot {
	snap := &models.Snapshot{
		Stops:        make([]*models.Stop, len(n.stops)),
		Routes:       make([]*models.Route, len(n.routes)),
		Areas:        make([]*models.Area, len(n.areas)),
		Destinations: make([]*models.Destination, len(n.destinations)),
	}
	for i, s := range n.stops {
		c := *s
		snap.Stops[i] = &c
	}
	for i, r := range n.routes {
		c := *r
		c.StopIDs = append([]int(nil), r.StopIDs...)
		c.Points = append([]models.RoutePoint(nil), r.Points...)
		snap.Routes[i] = &c
	}
	for i, a := range n.areas {
		c := *a
		snap.Areas[i] = &c
	}
	for i, d := range n.destinations {
		c := *d
		snap.Destinations[i] = &c
	}
	return snap
}

// persist writes the current snapshot. Failures are reported but do not
// roll back the in-memory mutation; the next successful save catches up.
func (n *Network) persist() {
	if err := n.store.SaveSnapshot(n.snapshotLocked()); err != nil {
		n.logger.Error("failed to persist snapshot", "error", err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("operation", "save_snapshot"),
			Level: sentry.LevelError,
		})
		return
	}
	metrics.SnapshotSaves.Inc()
}

func (n *Network) emit(u DerivedUpdate) {
	if n.onUpdate != nil {
		n.onUpdate(u)
	}
}

func (n *Network) nextStopID() int        { n.lastStopID++; return n.lastStopID }
func (n *Network) nextRouteID() int       { n.lastRouteID++; return n.lastRouteID }
func (n *Network) nextDestinationID() int { n.lastDestinationID++; return n.lastDestinationID }

func (n *Network) nextAreaID() string {
	n.lastAreaID++
	return "area_" + strconv.Itoa(n.lastAreaID)
}

func areaSequence(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "area_")
	if !ok {
		return 0, false
	}
	seq, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return seq, true
}

func (n *Network) findStop(id int) *models.Stop {
	for _, s := range n.stops {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (n *Network) findRoute(id int) *models.Route {
	for _, r := range n.routes {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (n *Network) findArea(id string) *models.Area {
	for _, a := range n.areas {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (n *Network) findDestination(id int) *models.Destination {
	for _, d := range n.destinations {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// resnapRoute rebuilds one route's points and stop sequence from its raw
// geometry against the current stop set.
func (n *Network) resnapRoute(r *models.Route) {
	r.Points = snap.SnapRoute(snap.RawPositions(r.Points), r.ID, n.stops, snap.DefaultToleranceMeters)
	r.StopIDs = snap.DeriveStopIDs(r.Points)
}

// resnapAll re-runs the snap pass for every route. Used whenever the stop
// set changes, since any route might gain or lose a snapped vertex.
func (n *Network) resnapAll() {
	for _, r := range n.routes {
		n.resnapRoute(r)
	}
}
