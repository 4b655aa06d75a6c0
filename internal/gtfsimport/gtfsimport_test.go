package gtfsimport

import (
	"io"
	"log/slog"
	"testing"

	remoteGtfs "github.com/jamespfennell/gtfs"
)

func f64(v float64) *float64 { return &v }

func TestBuildSnapshot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	stops := []remoteGtfs.Stop{
		{Id: "st_a", Name: "Central", Latitude: f64(45.0), Longitude: f64(9.0)},
		{Id: "st_b", Latitude: f64(45.01), Longitude: f64(9.0)},
		{Id: "st_c", Name: "No coordinates"},
		{Id: "st_d", Name: "Null island", Latitude: f64(0), Longitude: f64(0)},
	}
	rShort := remoteGtfs.Route{Id: "r1", ShortName: "12", LongName: "Twelve"}
	rLong := remoteGtfs.Route{Id: "r2", LongName: "Crosstown"}
	rBare := remoteGtfs.Route{Id: "r3"}

	static := &remoteGtfs.Static{
		Stops: stops,
		Trips: []remoteGtfs.ScheduledTrip{
			{Route: &rShort, StopTimes: []remoteGtfs.ScheduledStopTime{
				{Stop: &stops[0]}, {Stop: &stops[1]},
			}},
			// Same route again, must not produce a second line.
			{Route: &rShort, StopTimes: []remoteGtfs.ScheduledStopTime{
				{Stop: &stops[1]}, {Stop: &stops[0]},
			}},
			// Only one stop survives the import, too short to keep.
			{Route: &rLong, StopTimes: []remoteGtfs.ScheduledStopTime{
				{Stop: &stops[0]}, {Stop: &stops[2]},
			}},
			{Route: &rLong, StopTimes: []remoteGtfs.ScheduledStopTime{
				{Stop: &stops[1]}, {Stop: &stops[0]},
			}},
			{Route: &rBare, StopTimes: []remoteGtfs.ScheduledStopTime{
				{Stop: &stops[0]}, {Stop: &stops[1]},
			}},
			{Route: nil},
		},
	}

	snap := BuildSnapshot(static, logger)

	t.Run("imports stops with valid coordinates", func(t *testing.T) {
		if len(snap.Stops) != 2 {
			t.Fatalf("Expected 2 imported stops, got %d", len(snap.Stops))
		}
		if snap.Stops[0].ID != 1 || snap.Stops[1].ID != 2 {
			t.Errorf("Expected sequential stop ids 1 and 2, got %d and %d",
				snap.Stops[0].ID, snap.Stops[1].ID)
		}
		if snap.Stops[0].Lat != 45.0 || snap.Stops[0].Lng != 9.0 {
			t.Errorf("Expected first stop at (45, 9), got (%f, %f)",
				snap.Stops[0].Lat, snap.Stops[0].Lng)
		}
	})

	t.Run("stop name falls back to the GTFS id", func(t *testing.T) {
		if snap.Stops[0].Name != "Central" {
			t.Errorf("Expected stop name %q, got %q", "Central", snap.Stops[0].Name)
		}
		if snap.Stops[1].Name != "st_b" {
			t.Errorf("Expected fallback name %q, got %q", "st_b", snap.Stops[1].Name)
		}
	})

	t.Run("one line per route with enough imported stops", func(t *testing.T) {
		if len(snap.Routes) != 3 {
			t.Fatalf("Expected 3 imported routes, got %d", len(snap.Routes))
		}
		for i, r := range snap.Routes {
			if r.ID != i+1 {
				t.Errorf("Route %d: expected id %d, got %d", i, i+1, r.ID)
			}
			if len(r.Points) != 2 {
				t.Errorf("Route %d: expected 2 points, got %d", i, len(r.Points))
			}
		}
		if p := snap.Routes[0].Points[0]; p.Lat != 45.0 || p.Lng != 9.0 {
			t.Errorf("Expected first point at (45, 9), got (%f, %f)", p.Lat, p.Lng)
		}
	})

	t.Run("route name prefers short name then long name then id", func(t *testing.T) {
		want := []string{"12", "Crosstown", "r3"}
		for i, name := range want {
			if snap.Routes[i].Name != name {
				t.Errorf("Route %d: expected name %q, got %q", i, name, snap.Routes[i].Name)
			}
		}
	})
}
