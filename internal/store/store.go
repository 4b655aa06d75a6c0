// Package store persists the network snapshot and the per-route vehicle
// schedules. Three backends share one interface: a JSON file tree, an
// embedded SQLite database, and Postgres. All of them store whole JSON
// documents; the planner always rewrites state wholesale, so row-level
// schemas would buy nothing.
package store

import (
	"fmt"

	"planner.opentransit.org/internal/models"
)

// Store is the persistence boundary of the planner core. Load methods
// return ok=false when nothing has been stored yet; a missing document is
// not an error.
type Store interface {
	LoadSnapshot() (snap *models.Snapshot, ok bool, err error)
	SaveSnapshot(snap *models.Snapshot) error

	LoadSchedule(routeID int) (sched *models.VehicleSchedule, ok bool, err error)
	SaveSchedule(sched *models.VehicleSchedule) error
	DeleteSchedule(routeID int) error

	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Open creates the store selected by backend. path is the data directory
// for the file backend and the database file for sqlite; dsn is the
// Postgres connection string.
func Open(backend, path, dsn string) (Store, error) {
	switch backend {
	case BackendFile:
		return NewFileStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendPostgres:
		return NewPostgresStore(dsn)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
