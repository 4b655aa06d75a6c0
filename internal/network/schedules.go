package network

import (
	"planner.opentransit.org/internal/models"
)

// ScheduleForRoute returns the route's timetable, generating and persisting
// the default one if none is stored yet.
func (n *Network) ScheduleForRoute(routeID int) (*models.VehicleSchedule, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := n.findRoute(routeID)
	if r == nil {
		return nil, ErrNotFound
	}
	return n.schedules.LoadOrDefault(r)
}

// AddVehicle appends a vehicle starting its first trip at startStopID.
func (n *Network) AddVehicle(routeID, startStopID int) (*models.VehicleSchedule, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := n.findRoute(routeID)
	if r == nil {
		return nil, ErrNotFound
	}
	sched, err := n.schedules.LoadOrDefault(r)
	if err != nil {
		return nil, err
	}
	if _, err := n.schedules.AddVehicle(r, sched, startStopID); err != nil {
		return nil, err
	}
	return sched, nil
}

// AddTrip appends a forward+reverse cycle to the vehicle at startTime.
func (n *Network) AddTrip(routeID int, vehicleID, startTime string) (*models.VehicleSchedule, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := n.findRoute(routeID)
	if r == nil {
		return nil, ErrNotFound
	}
	sched, err := n.schedules.LoadOrDefault(r)
	if err != nil {
		return nil, err
	}
	if err := n.schedules.AddTrip(r, sched, vehicleID, startTime); err != nil {
		return nil, err
	}
	return sched, nil
}

// DeleteVehicle removes a vehicle and its trips from the route's schedule.
func (n *Network) DeleteVehicle(routeID int, vehicleID string) (*models.VehicleSchedule, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := n.findRoute(routeID)
	if r == nil {
		return nil, ErrNotFound
	}
	sched, err := n.schedules.LoadOrDefault(r)
	if err != nil {
		return nil, err
	}
	if err := n.schedules.DeleteVehicle(sched, vehicleID); err != nil {
		return nil, err
	}
	return sched, nil
}

// DeleteTrip removes the trip cycle containing tripIndex from the vehicle.
func (n *Network) DeleteTrip(routeID int, vehicleID string, tripIndex int) (*models.VehicleSchedule, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	r := n.findRoute(routeID)
	if r == nil {
		return nil, ErrNotFound
	}
	sched, err := n.schedules.LoadOrDefault(r)
	if err != nil {
		return nil, err
	}
	if err := n.schedules.DeleteTrip(sched, vehicleID, tripIndex); err != nil {
		return nil, err
	}
	return sched, nil
}
