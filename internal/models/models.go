package models

// Position is a geographic coordinate in decimal degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StopAreaInfo is one derived coverage entry on a stop: how much of the
// given area the stop's catchment disc covers, and the estimated number
// of residents served.
type StopAreaInfo struct {
	AreaID           string  `json:"areaId"`
	Coverage         float64 `json:"coverage"`
	PopulationServed int     `json:"populationServed"`
}

// Stop is a transit stop placed by the user. ConnectedRouteIDs, Areas and
// NearbyDestinationIDs are derived fields owned by the snap, coverage and
// relationship engines; they are recomputed after every structural change
// and are never authoritative on their own.
type Stop struct {
	ID                   int            `json:"id"`
	Name                 string         `json:"name"`
	BusLines             []int          `json:"busLines"`
	HasShelter           bool           `json:"hasShelter"`
	Lat                  float64        `json:"lat"`
	Lng                  float64        `json:"lng"`
	ConnectedRouteIDs    []int          `json:"connectedRouteIds"`
	Areas                []StopAreaInfo `json:"areas"`
	NearbyDestinationIDs []int          `json:"nearbyDestinationIds"`
}

// Position returns the stop's location as a Position value.
func (s *Stop) Position() Position {
	return Position{Lat: s.Lat, Lng: s.Lng}
}

// RoutePoint is one vertex of a route's drawn geometry. StopID is non-nil
// when the vertex has been snapped onto a stop, in which case Lat/Lng equal
// that stop's position exactly.
type RoutePoint struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	StopID *int    `json:"stopId"`
}

// Position returns the point's location as a Position value.
func (p RoutePoint) Position() Position {
	return Position{Lat: p.Lat, Lng: p.Lng}
}

// Route is a drawn line. StopIDs is always re-derived from Points after a
// geometry edit; it lists the snapped stop ids in geometry order, with
// duplicates preserved when the line passes a stop more than once.
type Route struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	StopIDs []int        `json:"stopIds"`
	Points  []RoutePoint `json:"points"`
}

// Area is a drawn coverage polygon with population attributes. AreaM2,
// PopulationDensity and DestinationIDs are derived; the rest is editable.
// Latlngs holds the polygon rings as drawn; only the first (outer) ring is
// used, holes are unsupported.
type Area struct {
	ID                          string       `json:"id"`
	Name                        string       `json:"name"`
	AreaM2                      float64      `json:"areaM2"`
	Population                  int          `json:"population"`
	HighPercentageOfElderly     bool         `json:"highPercentageOfElderly"`
	ServingLines                []string     `json:"servingLines"`
	PopulationDensity           float64      `json:"populationDensity"`
	PublicTransportUsagePercent float64      `json:"publicTransportUsagePercent"`
	DestinationIDs              []int        `json:"destinationIds"`
	Latlngs                     [][]Position `json:"latlngs"`
}

// Ring returns the area's outer boundary ring, or nil if the polygon has
// not been drawn yet.
func (a *Area) Ring() []Position {
	if len(a.Latlngs) == 0 {
		return nil
	}
	return a.Latlngs[0]
}

// Destination is a point of interest placed by the user.
type Destination struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Position returns the destination's location as a Position value.
func (d *Destination) Position() Position {
	return Position{Lat: d.Lat, Lng: d.Lng}
}

// Snapshot is the full persisted state of the network. It is the only form
// the core exchanges with storage; derived fields are included so the map
// widget can render without waiting for a recompute, but they are rebuilt
// from their inputs on load.
type Snapshot struct {
	Stops        []*Stop        `json:"stops"`
	Routes       []*Route       `json:"routes"`
	Areas        []*Area        `json:"areas"`
	Destinations []*Destination `json:"destinations"`
}
