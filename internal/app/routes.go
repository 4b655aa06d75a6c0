package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"

	"planner.opentransit.org/internal/middleware"
)

// Routes registers every endpoint of the planner API and returns the final
// http.Handler, wrapped with the Sentry and security-header middlewares.
// /metrics is served from the cached Prometheus handler.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	router.HandlerFunc(http.MethodGet, "/v1/network", app.getNetworkHandler)
	router.HandlerFunc(http.MethodPut, "/v1/network", app.replaceNetworkHandler)

	router.HandlerFunc(http.MethodPost, "/v1/stops", app.createStopHandler)
	router.HandlerFunc(http.MethodPost, "/v1/stops/:id/position", app.moveStopHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/stops/:id", app.updateStopHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/stops/:id", app.deleteStopHandler)

	router.HandlerFunc(http.MethodPost, "/v1/routes", app.createRouteHandler)
	router.HandlerFunc(http.MethodPut, "/v1/routes/:id/geometry", app.editRouteGeometryHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/routes/:id", app.deleteRouteHandler)

	router.HandlerFunc(http.MethodPost, "/v1/areas", app.createAreaHandler)
	router.HandlerFunc(http.MethodPut, "/v1/areas/:id/polygon", app.editAreaPolygonHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/areas/:id", app.updateAreaHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/areas/:id", app.deleteAreaHandler)

	router.HandlerFunc(http.MethodPost, "/v1/destinations", app.createDestinationHandler)
	router.HandlerFunc(http.MethodPost, "/v1/destinations/:id/position", app.moveDestinationHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/destinations/:id", app.deleteDestinationHandler)

	router.HandlerFunc(http.MethodGet, "/v1/routes/:id/schedule", app.getScheduleHandler)
	router.HandlerFunc(http.MethodPost, "/v1/routes/:id/schedule/vehicles", app.addVehicleHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/routes/:id/schedule/vehicles/:vehicleId", app.deleteVehicleHandler)
	router.HandlerFunc(http.MethodPost, "/v1/routes/:id/schedule/vehicles/:vehicleId/trips", app.addTripHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/routes/:id/schedule/vehicles/:vehicleId/trips/:index", app.deleteTripHandler)

	router.HandlerFunc(http.MethodGet, "/v1/updates", app.updatesHandler)

	handler := middleware.SentryMiddleware(router)
	return middleware.SecurityHeaders(handler)
}
