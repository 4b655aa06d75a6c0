package network

import (
	"fmt"

	"planner.opentransit.org/internal/coverage"
	"planner.opentransit.org/internal/models"
)

// Update kinds carried by DerivedUpdate.
const (
	UpdateStop        = "stop"
	UpdateRoute       = "route"
	UpdateArea        = "area"
	UpdateDestination = "destination"
	UpdateNetwork     = "network"
)

// routeColorCount is the size of the map widget's route color palette.
const routeColorCount = 8

// StylePayload carries the rendering hints the map widget needs after a
// mutation: which palette color a route uses, the coverage text for an
// area label, and the combined catchment geometry to draw.
type StylePayload struct {
	RouteColorIndex int                 `json:"routeColorIndex,omitempty"`
	CoverageLabel   string              `json:"coverageLabel,omitempty"`
	CatchmentRings  [][]models.Position `json:"catchmentRings,omitempty"`
}

// DerivedUpdate is the payload sent to the map widget after every mutation
// cascade: the kind of entity that changed, the affected ids, and optional
// style hints. The core owns no rendering beyond producing this.
type DerivedUpdate struct {
	Kind  string        `json:"kind"`
	IDs   []string      `json:"ids,omitempty"`
	Style *StylePayload `json:"style,omitempty"`
}

// RouteColorIndex maps a route id onto the widget's color palette.
func RouteColorIndex(routeID int) int {
	return routeID % routeColorCount
}

func stopUpdate(ids ...int) DerivedUpdate {
	return DerivedUpdate{Kind: UpdateStop, IDs: intIDs(ids)}
}

func destinationUpdate(ids ...int) DerivedUpdate {
	return DerivedUpdate{Kind: UpdateDestination, IDs: intIDs(ids)}
}

func routeUpdate(routeID int) DerivedUpdate {
	return DerivedUpdate{
		Kind:  UpdateRoute,
		IDs:   intIDs([]int{routeID}),
		Style: &StylePayload{RouteColorIndex: RouteColorIndex(routeID)},
	}
}

// areaUpdate includes the aggregate coverage label and the catchment union
// so the widget can redraw the area's shading in one message.
func (n *Network) areaUpdate(a *models.Area) DerivedUpdate {
	percent := coverage.AggregateAreaCoverage(a, n.stops)
	return DerivedUpdate{
		Kind: UpdateArea,
		IDs:  []string{a.ID},
		Style: &StylePayload{
			CoverageLabel:  fmt.Sprintf("%.1f%% covered", percent),
			CatchmentRings: coverage.CatchmentUnion(n.stops),
		},
	}
}

func intIDs(ids []int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = fmt.Sprintf("%d", id)
	}
	return out
}
