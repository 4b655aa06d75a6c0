package store

import (
	"os"
	"path/filepath"
	"testing"

	"planner.opentransit.org/internal/models"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return fs
}

func TestFileStoreSnapshot(t *testing.T) {
	fs := newTestFileStore(t)

	t.Run("missing snapshot reports not found", func(t *testing.T) {
		snap, ok, err := fs.LoadSnapshot()
		if err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}
		if ok || snap != nil {
			t.Errorf("Expected no snapshot in an empty store")
		}
	})

	t.Run("round trip", func(t *testing.T) {
		saved := &models.Snapshot{
			Stops: []*models.Stop{
				{ID: 1, Name: "Central", Lat: 45.0, Lng: 9.0, BusLines: []int{1}},
			},
			Routes:       []*models.Route{{ID: 1, Name: "Line 1"}},
			Areas:        []*models.Area{{ID: "area_1", Name: "Old Town", Population: 12000}},
			Destinations: []*models.Destination{{ID: 1, Name: "Hospital", Lat: 45.01, Lng: 9.01}},
		}
		if err := fs.SaveSnapshot(saved); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}

		loaded, ok, err := fs.LoadSnapshot()
		if err != nil {
			t.Fatalf("LoadSnapshot failed: %v", err)
		}
		if !ok {
			t.Fatalf("Expected the saved snapshot to be found")
		}
		if len(loaded.Stops) != 1 || loaded.Stops[0].Name != "Central" {
			t.Errorf("Expected stop Central, got %+v", loaded.Stops)
		}
		if len(loaded.Areas) != 1 || loaded.Areas[0].ID != "area_1" {
			t.Errorf("Expected area area_1, got %+v", loaded.Areas)
		}
	})

	t.Run("malformed document reports an error", func(t *testing.T) {
		dir := t.TempDir()
		fs, err := NewFileStore(dir)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "network.json"), []byte("{not json"), 0o644); err != nil {
			t.Fatalf("Failed to write malformed file: %v", err)
		}
		if _, _, err := fs.LoadSnapshot(); err == nil {
			t.Errorf("Expected an error for a malformed snapshot file")
		}
	})
}

func TestFileStoreSchedule(t *testing.T) {
	fs := newTestFileStore(t)

	sched := &models.VehicleSchedule{
		LineID: 3,
		Vehicles: []*models.Vehicle{
			{ID: "v-1", Name: "Vehicle 1", Trips: []models.TripSchedule{
				{
					Direction:    "1->2",
					Times:        []models.StopTime{{StopID: 1, Time: "06:00"}, {StopID: 2, Time: "06:05"}},
					BreakEndTime: "06:20",
				},
			}},
		},
	}
	if err := fs.SaveSchedule(sched); err != nil {
		t.Fatalf("SaveSchedule failed: %v", err)
	}

	loaded, ok, err := fs.LoadSchedule(3)
	if err != nil {
		t.Fatalf("LoadSchedule failed: %v", err)
	}
	if !ok {
		t.Fatalf("Expected schedule for route 3 to be found")
	}
	if loaded.LineID != 3 || len(loaded.Vehicles) != 1 {
		t.Errorf("Expected the saved schedule back, got %+v", loaded)
	}
	if loaded.Vehicles[0].Trips[0].BreakEndTime != "06:20" {
		t.Errorf("Expected break end 06:20, got %s", loaded.Vehicles[0].Trips[0].BreakEndTime)
	}

	t.Run("schedules are keyed by route", func(t *testing.T) {
		if _, ok, _ := fs.LoadSchedule(4); ok {
			t.Errorf("Expected no schedule for route 4")
		}
	})

	t.Run("delete removes the schedule", func(t *testing.T) {
		if err := fs.DeleteSchedule(3); err != nil {
			t.Fatalf("DeleteSchedule failed: %v", err)
		}
		if _, ok, _ := fs.LoadSchedule(3); ok {
			t.Errorf("Expected schedule gone after delete")
		}
	})

	t.Run("deleting a missing schedule is not an error", func(t *testing.T) {
		if err := fs.DeleteSchedule(42); err != nil {
			t.Errorf("Expected nil for a missing schedule, got %v", err)
		}
	})
}

func TestOpen(t *testing.T) {
	t.Run("file backend", func(t *testing.T) {
		st, err := Open(BackendFile, t.TempDir(), "")
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		defer st.Close()
		if _, ok := st.(*FileStore); !ok {
			t.Errorf("Expected a *FileStore, got %T", st)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := Open("etcd", "", ""); err == nil {
			t.Errorf("Expected an error for an unknown backend")
		}
	})
}
