package app

import (
	"net/http"

	"planner.opentransit.org/internal/models"
)

// HealthStatus is the JSON shape of /v1/healthcheck: availability,
// deployment environment, version and the connected widget count.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Clients     int    `json:"clients"`
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, HealthStatus{
		Status:      "available",
		Environment: app.Config.Env,
		Version:     app.Version,
		Clients:     app.Hub.ClientCount(),
	})
}

func (app *Application) getNetworkHandler(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, http.StatusOK, app.Network.Snapshot())
}

func (app *Application) replaceNetworkHandler(w http.ResponseWriter, r *http.Request) {
	var snap models.Snapshot
	if !app.readJSON(w, r, &snap) {
		return
	}
	app.Network.Replace(&snap)
	app.writeJSON(w, http.StatusOK, app.Network.Snapshot())
}

func (app *Application) createStopHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name       string  `json:"name"`
		Lat        float64 `json:"lat"`
		Lng        float64 `json:"lng"`
		HasShelter bool    `json:"hasShelter"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	s := app.Network.AddStop(input.Name, models.Position{Lat: input.Lat, Lng: input.Lng}, input.HasShelter)
	app.writeJSON(w, http.StatusCreated, s)
}

func (app *Application) moveStopHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var pos models.Position
	if !app.readJSON(w, r, &pos) {
		return
	}
	if err := app.Network.MoveStop(id, pos); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"moved": id})
}

func (app *Application) updateStopHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var input struct {
		Name       *string `json:"name"`
		HasShelter *bool   `json:"hasShelter"`
		BusLines   []int   `json:"busLines"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	if err := app.Network.UpdateStopDetails(id, input.Name, input.HasShelter, input.BusLines); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"updated": id})
}

func (app *Application) deleteStopHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.Network.RemoveStop(id); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"deleted": id})
}

func (app *Application) createRouteHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name   string            `json:"name"`
		Points []models.Position `json:"points"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	route := app.Network.AddRoute(input.Name, input.Points)
	app.writeJSON(w, http.StatusCreated, route)
}

func (app *Application) editRouteGeometryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var input struct {
		Points []models.Position `json:"points"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	if err := app.Network.EditRouteGeometry(id, input.Points); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"updated": id})
}

func (app *Application) deleteRouteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.Network.RemoveRoute(id); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"deleted": id})
}

func (app *Application) createAreaHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    string              `json:"name"`
		Latlngs [][]models.Position `json:"latlngs"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	area := app.Network.AddArea(input.Name, input.Latlngs)
	app.writeJSON(w, http.StatusCreated, area)
}

func (app *Application) editAreaPolygonHandler(w http.ResponseWriter, r *http.Request) {
	id := stringParam(r, "id")
	var input struct {
		Latlngs [][]models.Position `json:"latlngs"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	if err := app.Network.EditAreaPolygon(id, input.Latlngs); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"updated": id})
}

func (app *Application) updateAreaHandler(w http.ResponseWriter, r *http.Request) {
	id := stringParam(r, "id")
	var input struct {
		Name                        *string  `json:"name"`
		Population                  *int     `json:"population"`
		HighPercentageOfElderly     *bool    `json:"highPercentageOfElderly"`
		PublicTransportUsagePercent *float64 `json:"publicTransportUsagePercent"`
		ServingLines                []string `json:"servingLines"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	err := app.Network.UpdateAreaDetails(id, input.Name, input.Population,
		input.HighPercentageOfElderly, input.PublicTransportUsagePercent, input.ServingLines)
	if err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"updated": id})
}

func (app *Application) deleteAreaHandler(w http.ResponseWriter, r *http.Request) {
	id := stringParam(r, "id")
	if err := app.Network.RemoveArea(id); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"deleted": id})
}

func (app *Application) createDestinationHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string  `json:"name"`
		Lat  float64 `json:"lat"`
		Lng  float64 `json:"lng"`
	}
	if !app.readJSON(w, r, &input) {
		return
	}
	d := app.Network.AddDestination(input.Name, models.Position{Lat: input.Lat, Lng: input.Lng})
	app.writeJSON(w, http.StatusCreated, d)
}

func (app *Application) moveDestinationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var pos models.Position
	if !app.readJSON(w, r, &pos) {
		return
	}
	if err := app.Network.MoveDestination(id, pos); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"moved": id})
}

func (app *Application) deleteDestinationHandler(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := app.Network.RemoveDestination(id); err != nil {
		app.mutationError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"deleted": id})
}
