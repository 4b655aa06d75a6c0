package schedule

import (
	"io"
	"log/slog"
	"testing"

	"planner.opentransit.org/internal/models"
)

const metersPerDegree = 111194.92664455873

// newTestRoute builds a snapped 3-stop route along a meridian with segment
// lengths of 1000m and 2000m, so per-segment travel times at 21 km/h are
// 2.857 and 5.714 minutes.
func newTestRoute(t *testing.T) *models.Route {
	t.Helper()

	id1, id2, id3 := 1, 2, 3
	base := 45.0
	return &models.Route{
		ID:      1,
		Name:    "Test Line",
		StopIDs: []int{1, 2, 3},
		Points: []models.RoutePoint{
			{Lat: base, Lng: 9.0, StopID: &id1},
			{Lat: base + 1000/metersPerDegree, Lng: 9.0, StopID: &id2},
			{Lat: base + 3000/metersPerDegree, Lng: 9.0, StopID: &id3},
		},
	}
}

// memPersister keeps schedules in memory for engine tests.
type memPersister struct {
	schedules map[int]*models.VehicleSchedule
	loadErr   error
	saveErr   error
	saves     int
}

func newMemPersister() *memPersister {
	return &memPersister{schedules: make(map[int]*models.VehicleSchedule)}
}

func (m *memPersister) LoadSchedule(routeID int) (*models.VehicleSchedule, bool, error) {
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	s, ok := m.schedules[routeID]
	return s, ok, nil
}

func (m *memPersister) SaveSchedule(s *models.VehicleSchedule) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.schedules[s.LineID] = s
	return nil
}

func (m *memPersister) DeleteSchedule(routeID int) error {
	delete(m.schedules, routeID)
	return nil
}

func newTestEngine(p Persister) *Engine {
	return NewEngine(p, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
