package network

import (
	"time"

	"planner.opentransit.org/internal/models"
	"planner.opentransit.org/internal/snap"
)

// AddRoute creates a route from drawn geometry. The raw positions are
// snapped against the current stop set; the snapped form is the only one
// kept.
func (n *Network) AddRoute(name string, points []models.Position) *models.Route {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := &models.Route{ID: n.nextRouteID(), Name: name}
	r.Points = snap.SnapRoute(points, r.ID, n.stops, snap.DefaultToleranceMeters)
	r.StopIDs = snap.DeriveStopIDs(r.Points)
	n.routes = append(n.routes, r)

	n.routeCascade()
	n.persist()
	n.emit(routeUpdate(r.ID))
	n.logger.Info("route added", "route_id", r.ID, "name", name, "stops", len(r.StopIDs))
	return r
}

// EditRouteGeometry replaces a route's drawn geometry and re-runs the snap
// pass for it.
func (n *Network) EditRouteGeometry(id int, points []models.Position) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := n.findRoute(id)
	if r == nil {
		return ErrNotFound
	}
	r.Points = snap.SnapRoute(points, r.ID, n.stops, snap.DefaultToleranceMeters)
	r.StopIDs = snap.DeriveStopIDs(r.Points)

	n.routeCascade()
	n.persist()
	n.emit(routeUpdate(id))
	return nil
}

// RemoveRoute deletes a route, releasing its id from every stop's
// membership set and dropping its persisted schedule.
func (n *Network) RemoveRoute(id int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	idx := -1
	for i, r := range n.routes {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	n.routes = append(n.routes[:idx], n.routes[idx+1:]...)

	for _, s := range n.stops {
		out := s.ConnectedRouteIDs[:0]
		for _, rid := range s.ConnectedRouteIDs {
			if rid != id {
				out = append(out, rid)
			}
		}
		s.ConnectedRouteIDs = out
	}

	if err := n.schedules.DeleteForRoute(id); err != nil {
		n.logger.Error("failed to delete schedule for removed route", "route_id", id, "error", err)
	}

	n.routeCascade()
	n.persist()
	n.emit(routeUpdate(id))
	n.logger.Info("route removed", "route_id", id)
	return nil
}

func (n *Network) routeCascade() {
	defer n.observe(cascadeRoute, time.Now())
	n.updateEntityGauges()
}
