// Package gtfsimport seeds an empty planning network from a GTFS static
// bundle: stops become planner stops, and each GTFS route contributes one
// drawn line following its first scheduled trip's stop sequence. The normal
// snap cascade turns those lines into snapped route geometry afterwards.
package gtfsimport

import (
	"log/slog"

	remoteGtfs "github.com/jamespfennell/gtfs"

	"planner.opentransit.org/internal/geomath"
	"planner.opentransit.org/internal/models"
)

// BuildSnapshot converts parsed GTFS static data into a planner snapshot.
// Stops without valid coordinates are skipped; routes whose trips never
// touch an imported stop are skipped too. Derived fields are left empty,
// the load cascade fills them in.
func BuildSnapshot(static *remoteGtfs.Static, logger *slog.Logger) *models.Snapshot {
	snap := &models.Snapshot{
		Stops:        []*models.Stop{},
		Routes:       []*models.Route{},
		Areas:        []*models.Area{},
		Destinations: []*models.Destination{},
	}

	byGtfsID := make(map[string]*models.Stop, len(static.Stops))
	nextStopID := 0
	for _, gs := range static.Stops {
		if gs.Latitude == nil || gs.Longitude == nil {
			continue
		}
		lat, lng := *gs.Latitude, *gs.Longitude
		if !geomath.IsValidLatLon(lat, lng) {
			continue
		}
		name := gs.Name
		if name == "" {
			name = gs.Id
		}
		nextStopID++
		s := &models.Stop{
			ID:                   nextStopID,
			Name:                 name,
			Lat:                  lat,
			Lng:                  lng,
			BusLines:             []int{},
			ConnectedRouteIDs:    []int{},
			Areas:                []models.StopAreaInfo{},
			NearbyDestinationIDs: []int{},
		}
		snap.Stops = append(snap.Stops, s)
		byGtfsID[gs.Id] = s
	}

	// One route per GTFS route, traced through the first trip that has
	// usable stop times.
	seenRoute := make(map[string]bool)
	nextRouteID := 0
	for _, trip := range static.Trips {
		if trip.Route == nil || seenRoute[trip.Route.Id] {
			continue
		}
		points := make([]models.RoutePoint, 0, len(trip.StopTimes))
		for _, st := range trip.StopTimes {
			if st.Stop == nil {
				continue
			}
			s, ok := byGtfsID[st.Stop.Id]
			if !ok {
				continue
			}
			points = append(points, models.RoutePoint{Lat: s.Lat, Lng: s.Lng})
		}
		if len(points) < 2 {
			continue
		}
		seenRoute[trip.Route.Id] = true
		nextRouteID++
		snap.Routes = append(snap.Routes, &models.Route{
			ID:     nextRouteID,
			Name:   routeName(trip.Route),
			Points: points,
		})
	}

	logger.Info("built snapshot from GTFS bundle",
		"gtfs_stops", len(static.Stops), "imported_stops", len(snap.Stops),
		"imported_routes", len(snap.Routes))
	return snap
}

func routeName(r *remoteGtfs.Route) string {
	if r.ShortName != "" {
		return r.ShortName
	}
	if r.LongName != "" {
		return r.LongName
	}
	return r.Id
}
