package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"planner.opentransit.org/internal/models"
)

const networkFileName = "network.json"

// FileStore keeps the network in one JSON document and each route's
// schedule in a sibling file keyed by the route id.
type FileStore struct {
	dir string
}

// NewFileStore opens (creating if needed) a file store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) LoadSnapshot() (*models.Snapshot, bool, error) {
	var snap models.Snapshot
	ok, err := f.readJSON(networkFileName, &snap)
	if !ok || err != nil {
		return nil, false, err
	}
	return &snap, true, nil
}

func (f *FileStore) SaveSnapshot(snap *models.Snapshot) error {
	return f.writeJSON(networkFileName, snap)
}

func (f *FileStore) LoadSchedule(routeID int) (*models.VehicleSchedule, bool, error) {
	var sched models.VehicleSchedule
	ok, err := f.readJSON(scheduleFileName(routeID), &sched)
	if !ok || err != nil {
		return nil, false, err
	}
	return &sched, true, nil
}

func (f *FileStore) SaveSchedule(sched *models.VehicleSchedule) error {
	return f.writeJSON(scheduleFileName(sched.LineID), sched)
}

func (f *FileStore) DeleteSchedule(routeID int) error {
	err := os.Remove(filepath.Join(f.dir, scheduleFileName(routeID)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStore) Close() error { return nil }

func scheduleFileName(routeID int) string {
	return fmt.Sprintf("schedule_%d.json", routeID)
}

func (f *FileStore) readJSON(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return true, nil
}

func (f *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	path := filepath.Join(f.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
