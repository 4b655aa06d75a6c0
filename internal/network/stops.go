package network

import (
	"time"

	"planner.opentransit.org/internal/models"
)

// AddStop places a new stop and runs the stop cascade: every route may gain
// a snapped vertex, the stop gets its coverage entries, and destination
// relations are refreshed.
func (n *Network) AddStop(name string, pos models.Position, hasShelter bool) *models.Stop {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := &models.Stop{
		ID:                   n.nextStopID(),
		Name:                 name,
		HasShelter:           hasShelter,
		Lat:                  pos.Lat,
		Lng:                  pos.Lng,
		BusLines:             []int{},
		ConnectedRouteIDs:    []int{},
		Areas:                []models.StopAreaInfo{},
		NearbyDestinationIDs: []int{},
	}
	n.stops = append(n.stops, s)
	n.stopCascade()
	n.persist()
	n.emit(stopUpdate(s.ID))
	n.logger.Info("stop added", "stop_id", s.ID, "name", name)
	return s
}

// MoveStop drags a stop to a new position. Routes referencing it are
// rebuilt against the new location.
func (n *Network) MoveStop(id int, pos models.Position) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := n.findStop(id)
	if s == nil {
		return ErrNotFound
	}
	s.Lat, s.Lng = pos.Lat, pos.Lng
	n.stopCascade()
	n.persist()
	n.emit(stopUpdate(id))
	return nil
}

// UpdateStopDetails edits the stop's editable attributes. Nil arguments
// leave the attribute untouched. No derivation depends on these fields, so
// no cascade runs.
func (n *Network) UpdateStopDetails(id int, name *string, hasShelter *bool, busLines []int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := n.findStop(id)
	if s == nil {
		return ErrNotFound
	}
	if name != nil {
		s.Name = *name
	}
	if hasShelter != nil {
		s.HasShelter = *hasShelter
	}
	if busLines != nil {
		s.BusLines = busLines
	}
	n.persist()
	n.emit(stopUpdate(id))
	return nil
}

// RemoveStop deletes a stop. Its id is cleared from every route's point
// sequence before the re-snap pass so no dangling reference survives, and
// coverage and relations are recomputed for the remaining entities.
func (n *Network) RemoveStop(id int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	idx := -1
	for i, s := range n.stops {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	n.stops = append(n.stops[:idx], n.stops[idx+1:]...)

	for _, r := range n.routes {
		for i := range r.Points {
			if r.Points[i].StopID != nil && *r.Points[i].StopID == id {
				r.Points[i].StopID = nil
			}
		}
	}

	n.stopCascade()
	n.persist()
	n.emit(stopUpdate(id))
	n.logger.Info("stop removed", "stop_id", id)
	return nil
}

// stopCascade is the full recompute that follows any stop-set change.
func (n *Network) stopCascade() {
	defer n.observe(cascadeStop, time.Now())
	n.resnapAll()
	n.recomputeCoverage()
	n.recomputeRelations()
	n.updateEntityGauges()
}
