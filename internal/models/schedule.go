package models

// StopTime is a single timetable entry: the stop and the "HH:MM" local time
// a vehicle arrives there.
type StopTime struct {
	StopID int    `json:"stopId"`
	Time   string `json:"time"`
}

// TripSchedule is one directed run along a route. Direction is the label
// "<firstStopId>-><lastStopId>" for the stop order the trip follows.
// BreakEndTime is the earliest "HH:MM" at which the vehicle may start its
// next trip (last stop time plus the fixed break).
type TripSchedule struct {
	Direction    string     `json:"direction"`
	Times        []StopTime `json:"times"`
	BreakEndTime string     `json:"breakEndTime"`
}

// Vehicle is one vehicle operating a route. Trips always come in
// forward/reverse pairs: the trip at an even index is the first leg of its
// cycle and the trip at the following odd index is the return leg, so
// len(Trips) is always even.
type Vehicle struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Trips []TripSchedule `json:"trips"`
}

// VehicleSchedule is the persisted, user-editable timetable of one route.
// Unlike the other derived data it survives independently of its inputs and
// is stored per route, keyed by the route id.
type VehicleSchedule struct {
	LineID   int        `json:"lineId"`
	Vehicles []*Vehicle `json:"vehicles"`
}
