package app

import (
	"net/http"
	"strconv"
)

func (app *Application) getScheduleHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	sched, err := app.Network.ScheduleForRoute(routeID)
	if err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, sched)
}

func (app *Application) addVehicleHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var input struct {
		StartStopID int `json:"startStopId"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	sched, err := app.Network.AddVehicle(routeID, input.StartStopID)
	if err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, sched)
}

func (app *Application) deleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	sched, err := app.Network.DeleteVehicle(routeID, stringParam(r, "vehicleId"))
	if err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, sched)
}

func (app *Application) addTripHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var input struct {
		StartTime string `json:"startTime"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	sched, err := app.Network.AddTrip(routeID, stringParam(r, "vehicleId"), input.StartTime)
	if err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusCreated, sched)
}

func (app *Application) deleteTripHandler(w http.ResponseWriter, r *http.Request) {
	routeID, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	tripIndex, err := strconv.Atoi(stringParam(r, "index"))
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, "invalid trip index")
		return
	}
	sched, err := app.Network.DeleteTrip(routeID, stringParam(r, "vehicleId"), tripIndex)
	if err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, sched)
}
