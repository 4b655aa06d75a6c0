package network

import (
	"time"

	"planner.opentransit.org/internal/models"
)

// AddDestination places a destination and refreshes containment and
// proximity relations.
func (n *Network) AddDestination(name string, pos models.Position) *models.Destination {
	n.mu.Lock()
	defer n.mu.Unlock()

	d := &models.Destination{
		ID:   n.nextDestinationID(),
		Name: name,
		Lat:  pos.Lat,
		Lng:  pos.Lng,
	}
	n.destinations = append(n.destinations, d)
	n.destinationCascade()
	n.persist()
	n.emit(destinationUpdate(d.ID))
	n.logger.Info("destination added", "destination_id", d.ID, "name", name)
	return d
}

// MoveDestination drags a destination to a new position.
func (n *Network) MoveDestination(id int, pos models.Position) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	d := n.findDestination(id)
	if d == nil {
		return ErrNotFound
	}
	d.Lat, d.Lng = pos.Lat, pos.Lng
	n.destinationCascade()
	n.persist()
	n.emit(destinationUpdate(id))
	return nil
}

// RemoveDestination deletes a destination; areas and stops drop it from
// their derived lists in the relation pass.
func (n *Network) RemoveDestination(id int) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	idx := -1
	for i, d := range n.destinations {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	n.destinations = append(n.destinations[:idx], n.destinations[idx+1:]...)
	n.destinationCascade()
	n.persist()
	n.emit(destinationUpdate(id))
	n.logger.Info("destination removed", "destination_id", id)
	return nil
}

func (n *Network) destinationCascade() {
	defer n.observe(cascadeDestination, time.Now())
	n.recomputeRelations()
	n.updateEntityGauges()
}
