package network

import (
	"time"

	"planner.opentransit.org/internal/metrics"
	"planner.opentransit.org/internal/models"
)

// AddArea creates a coverage area from a drawn polygon and computes its
// surface, density, stop coverage entries and destination containment.
func (n *Network) AddArea(name string, latlngs [][]models.Position) *models.Area {
	n.mu.Lock()
	defer n.mu.Unlock()

	a := &models.Area{
		ID:             n.nextAreaID(),
		Name:           name,
		Latlngs:        latlngs,
		ServingLines:   []string{},
		DestinationIDs: []int{},
	}
	n.areas = append(n.areas, a)
	n.areaCascade(a)
	n.persist()
	n.emit(n.areaUpdate(a))
	n.logger.Info("area added", "area_id", a.ID, "name", name, "surface_m2", a.AreaM2)
	return a
}

// EditAreaPolygon replaces the area's boundary and reruns the area cascade.
func (n *Network) EditAreaPolygon(id string, latlngs [][]models.Position) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	a := n.findArea(id)
	if a == nil {
		return ErrNotFound
	}
	a.Latlngs = latlngs
	n.areaCascade(a)
	n.persist()
	n.emit(n.areaUpdate(a))
	return nil
}

// UpdateAreaDetails edits the area's editable attributes. Nil arguments
// leave the attribute untouched. Population feeds both density and the
// served-population figures, so the area cascade reruns.
func (n *Network) UpdateAreaDetails(id string, name *string, population *int, highElderly *bool, usagePercent *float64, servingLines []string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	a := n.findArea(id)
	if a == nil {
		return ErrNotFound
	}
	if name != nil {
		a.Name = *name
	}
	if population != nil {
		a.Population = *population
	}
	if highElderly != nil {
		a.HighPercentageOfElderly = *highElderly
	}
	if usagePercent != nil {
		a.PublicTransportUsagePercent = *usagePercent
	}
	if servingLines != nil {
		a.ServingLines = servingLines
	}
	n.areaCascade(a)
	n.persist()
	n.emit(n.areaUpdate(a))
	return nil
}

// RemoveArea deletes an area. Stops lose their coverage entry for it and
// destination containment is refreshed; nothing else references areas.
func (n *Network) RemoveArea(id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	idx := -1
	for i, a := range n.areas {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	n.areas = append(n.areas[:idx], n.areas[idx+1:]...)
	metrics.AreaCoveragePercent.DeleteLabelValues(id)
	metrics.AreaPopulationDensity.DeleteLabelValues(id)

	n.areaCascade(nil)
	n.persist()
	n.emit(DerivedUpdate{Kind: UpdateArea, IDs: []string{id}})
	n.logger.Info("area removed", "area_id", id)
	return nil
}

// areaCascade recomputes the area's own surface (when given), then every
// stop's coverage entries and the destination relations.
func (n *Network) areaCascade(a *models.Area) {
	defer n.observe(cascadeArea, time.Now())
	if a != nil {
		n.recomputeAreaSurface(a)
	}
	n.recomputeCoverage()
	n.recomputeRelations()
	n.updateEntityGauges()
}
