package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"planner.opentransit.org/internal/network"
	"planner.opentransit.org/internal/schedule"
)

type envelope map[string]any

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.Logger.Error("failed to write response", "error", err)
	}
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		app.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func (app *Application) errorResponse(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, envelope{"error": message})
}

// mutationError maps the core's error taxonomy onto HTTP statuses: unknown
// entities are 404, the schedule invariant rejections are 422 with their
// user-facing message, everything else is a 500.
func (app *Application) mutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, network.ErrNotFound), errors.Is(err, schedule.ErrVehicleNotFound):
		app.errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, schedule.ErrTripStartTooEarly),
		errors.Is(err, schedule.ErrNoTripPair),
		errors.Is(err, schedule.ErrTripIndexOutOfRange),
		errors.Is(err, schedule.ErrRouteTooShort):
		app.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	default:
		app.Logger.Error("mutation failed", "error", err)
		app.errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}

// intParam extracts a numeric path parameter.
func intParam(r *http.Request, name string) (int, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id, err := strconv.Atoi(params.ByName(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

func stringParam(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}
