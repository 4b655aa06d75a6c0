package network

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"planner.opentransit.org/internal/models"
	"planner.opentransit.org/internal/store"
)

const metersPerDegree = 111194.92664455873

// newTestNetwork builds a network over a file store in a temp directory.
func newTestNetwork(t *testing.T) (*Network, *store.FileStore) {
	t.Helper()

	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	nw := New(fs, logger)
	nw.Load()
	return nw, fs
}

// testSquare is a closed ring of the given side length centered on center.
func testSquare(center models.Position, sideMeters float64) [][]models.Position {
	halfLat := sideMeters / 2 / metersPerDegree
	halfLng := halfLat / math.Cos(center.Lat*math.Pi/180)
	ring := []models.Position{
		{Lat: center.Lat - halfLat, Lng: center.Lng - halfLng},
		{Lat: center.Lat - halfLat, Lng: center.Lng + halfLng},
		{Lat: center.Lat + halfLat, Lng: center.Lng + halfLng},
		{Lat: center.Lat + halfLat, Lng: center.Lng - halfLng},
		{Lat: center.Lat - halfLat, Lng: center.Lng - halfLng},
	}
	return [][]models.Position{ring}
}
