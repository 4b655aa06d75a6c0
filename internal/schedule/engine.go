// Package schedule derives per-stop travel times from route geometry and
// maintains the mutable multi-vehicle timetable of each route.
package schedule

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"planner.opentransit.org/internal/models"
)

const (
	// BreakMinutes is the fixed idle period after a trip before the
	// vehicle may start its next one.
	BreakMinutes = 15
	// DefaultStartMinutes is the first departure of a freshly generated
	// schedule: 06:00.
	DefaultStartMinutes = 360
)

var (
	// ErrVehicleNotFound is returned when a schedule mutation names an
	// unknown vehicle id.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrTripStartTooEarly rejects a new trip cycle that would start
	// before the vehicle's last break has ended.
	ErrTripStartTooEarly = errors.New("trip start time is before the vehicle's earliest next start")
	// ErrNoTripPair rejects deleting a trip whose forward/reverse partner
	// is missing; cycles are only ever removed whole.
	ErrNoTripPair = errors.New("no forward/reverse pair found for trip")
	// ErrTripIndexOutOfRange is returned for a trip index the vehicle
	// does not have.
	ErrTripIndexOutOfRange = errors.New("trip index out of range")
	// ErrRouteTooShort is returned when a route has fewer than two
	// snapped stops and therefore nothing to timetable.
	ErrRouteTooShort = errors.New("route needs at least two snapped stops to schedule")
)

// Persister stores one timetable per route, keyed by the route id.
type Persister interface {
	LoadSchedule(routeID int) (*models.VehicleSchedule, bool, error)
	SaveSchedule(s *models.VehicleSchedule) error
	DeleteSchedule(routeID int) error
}

// Engine generates and mutates vehicle schedules. All mutations persist the
// schedule before returning, so the stored copy never lags the in-memory one.
type Engine struct {
	persister Persister
	logger    *slog.Logger
}

// NewEngine creates a schedule engine on top of the given persister.
func NewEngine(persister Persister, logger *slog.Logger) *Engine {
	return &Engine{persister: persister, logger: logger}
}

// LoadOrDefault returns the persisted schedule of the route. A route with
// no stored schedule, or an unreadable one, gets a fresh default (one
// vehicle, one forward+reverse cycle) which is persisted immediately.
func (e *Engine) LoadOrDefault(route *models.Route) (*models.VehicleSchedule, error) {
	sched, ok, err := e.persister.LoadSchedule(route.ID)
	if err != nil {
		e.logger.Warn("stored schedule unreadable, regenerating default", "route_id", route.ID, "error", err)
	} else if ok {
		return sched, nil
	}

	sched = e.GenerateDefault(route)
	if err := e.persister.SaveSchedule(sched); err != nil {
		return nil, fmt.Errorf("failed to persist default schedule for route %d: %w", route.ID, err)
	}
	return sched, nil
}

// GenerateDefault builds the default timetable: one vehicle running a
// forward trip at 06:00 and the reverse trip after the break. Routes
// without at least two snapped stops get an empty vehicle list.
func (e *Engine) GenerateDefault(route *models.Route) *models.VehicleSchedule {
	sched := &models.VehicleSchedule{LineID: route.ID, Vehicles: []*models.Vehicle{}}
	if len(route.StopIDs) < 2 {
		return sched
	}
	sched.Vehicles = append(sched.Vehicles, e.newVehicle(route, 1, DefaultStartMinutes, false))
	return sched
}

// AddVehicle appends a vehicle whose first trip starts at 06:00 from
// startStopID. Starting at the last stop of the forward order means the
// first trip runs in reverse; either way the second trip runs the opposite
// direction after the break.
func (e *Engine) AddVehicle(route *models.Route, sched *models.VehicleSchedule, startStopID int) (*models.Vehicle, error) {
	if len(route.StopIDs) < 2 {
		return nil, ErrRouteTooShort
	}
	reverse := startStopID == route.StopIDs[len(route.StopIDs)-1]
	v := e.newVehicle(route, len(sched.Vehicles)+1, DefaultStartMinutes, reverse)
	sched.Vehicles = append(sched.Vehicles, v)
	if err := e.persister.SaveSchedule(sched); err != nil {
		return nil, fmt.Errorf("failed to persist schedule for route %d: %w", route.ID, err)
	}
	return v, nil
}

// AddTrip appends a forward+reverse cycle to the vehicle, starting at
// startTime ("HH:MM"). The start must not precede the end of the vehicle's
// last break; otherwise nothing is mutated.
func (e *Engine) AddTrip(route *models.Route, sched *models.VehicleSchedule, vehicleID, startTime string) error {
	if len(route.StopIDs) < 2 {
		return ErrRouteTooShort
	}
	v := findVehicle(sched, vehicleID)
	if v == nil {
		return ErrVehicleNotFound
	}
	start, err := ParseHHMM(startTime)
	if err != nil {
		return err
	}
	if n := len(v.Trips); n > 0 {
		minStart, err := ParseHHMM(v.Trips[n-1].BreakEndTime)
		if err == nil && start < minStart {
			return fmt.Errorf("%w: earliest start is %s", ErrTripStartTooEarly, v.Trips[n-1].BreakEndTime)
		}
	}

	out, outEnd := generateTrip(route, stopOrder(route, false), float64(start), false)
	back, _ := generateTrip(route, stopOrder(route, true), outEnd, true)
	v.Trips = append(v.Trips, out, back)

	if err := e.persister.SaveSchedule(sched); err != nil {
		return fmt.Errorf("failed to persist schedule for route %d: %w", route.ID, err)
	}
	return nil
}

// DeleteVehicle removes the vehicle and all its trips. Other vehicles are
// untouched.
func (e *Engine) DeleteVehicle(sched *models.VehicleSchedule, vehicleID string) error {
	for i, v := range sched.Vehicles {
		if v.ID == vehicleID {
			sched.Vehicles = append(sched.Vehicles[:i], sched.Vehicles[i+1:]...)
			if err := e.persister.SaveSchedule(sched); err != nil {
				return fmt.Errorf("failed to persist schedule for route %d: %w", sched.LineID, err)
			}
			return nil
		}
	}
	return ErrVehicleNotFound
}

// DeleteTrip removes the trip at tripIndex together with its
// forward/reverse partner at tripIndex XOR 1. If the partner index does not
// exist the deletion fails without touching the schedule, keeping the trip
// count even.
func (e *Engine) DeleteTrip(sched *models.VehicleSchedule, vehicleID string, tripIndex int) error {
	v := findVehicle(sched, vehicleID)
	if v == nil {
		return ErrVehicleNotFound
	}
	if tripIndex < 0 || tripIndex >= len(v.Trips) {
		return ErrTripIndexOutOfRange
	}
	pair := tripIndex ^ 1
	if pair >= len(v.Trips) {
		return ErrNoTripPair
	}

	hi, lo := tripIndex, pair
	if lo > hi {
		hi, lo = lo, hi
	}
	// Remove the higher index first so the lower one does not shift.
	v.Trips = append(v.Trips[:hi], v.Trips[hi+1:]...)
	v.Trips = append(v.Trips[:lo], v.Trips[lo+1:]...)

	if err := e.persister.SaveSchedule(sched); err != nil {
		return fmt.Errorf("failed to persist schedule for route %d: %w", sched.LineID, err)
	}
	return nil
}

// DeleteForRoute drops the persisted schedule of a removed route.
func (e *Engine) DeleteForRoute(routeID int) error {
	return e.persister.DeleteSchedule(routeID)
}

// newVehicle builds a vehicle with one full cycle: a trip at startMinutes
// in the given direction and the opposite trip after the break.
func (e *Engine) newVehicle(route *models.Route, ordinal int, startMinutes float64, reverse bool) *models.Vehicle {
	first, firstEnd := generateTrip(route, stopOrder(route, reverse), startMinutes, reverse)
	second, _ := generateTrip(route, stopOrder(route, !reverse), firstEnd, !reverse)
	return &models.Vehicle{
		ID:    uuid.NewString(),
		Name:  fmt.Sprintf("Vehicle %d", ordinal),
		Trips: []models.TripSchedule{first, second},
	}
}

// generateTrip walks the stop order from startMinutes, advancing by the
// absolute difference of cumulative travel times between consecutive stops
// (which equals the forward per-segment travel time in either direction).
// It returns the trip and the raw minute value of its break end, so the
// next trip can chain from the unrounded time.
func generateTrip(route *models.Route, order []int, startMinutes float64, reverse bool) (models.TripSchedule, float64) {
	trip := models.TripSchedule{Times: make([]models.StopTime, 0, len(order))}
	if len(order) > 0 {
		trip.Direction = fmt.Sprintf("%d->%d", order[0], order[len(order)-1])
	}

	cur := startMinutes
	for i, stopID := range order {
		if i > 0 {
			from := TravelTimeMinutes(route, order[i-1], reverse)
			to := TravelTimeMinutes(route, stopID, reverse)
			cur += math.Abs(to - from)
		}
		trip.Times = append(trip.Times, models.StopTime{StopID: stopID, Time: FormatMinutes(cur)})
	}

	breakEnd := cur + BreakMinutes
	trip.BreakEndTime = FormatMinutes(breakEnd)
	return trip, breakEnd
}

// stopOrder returns the route's snapped stop sequence, reversed on demand.
func stopOrder(route *models.Route, reverse bool) []int {
	if !reverse {
		return route.StopIDs
	}
	out := make([]int, len(route.StopIDs))
	for i, id := range route.StopIDs {
		out[len(out)-1-i] = id
	}
	return out
}

func findVehicle(sched *models.VehicleSchedule, vehicleID string) *models.Vehicle {
	for _, v := range sched.Vehicles {
		if v.ID == vehicleID {
			return v
		}
	}
	return nil
}
