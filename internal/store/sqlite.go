package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"planner.opentransit.org/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS network (
	id  INTEGER PRIMARY KEY CHECK (id = 1),
	doc TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS schedules (
	route_id INTEGER PRIMARY KEY,
	doc      TEXT NOT NULL
);
`

// SQLiteStore persists the planner documents in an embedded SQLite
// database. The network lives in a single row; schedules get one row per
// route.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens the database at path with WAL mode enabled and
// ensures the schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// nested-transaction errors from the driver.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := conn.Exec(sqliteSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) LoadSnapshot() (*models.Snapshot, bool, error) {
	var doc string
	err := s.conn.QueryRow(`SELECT doc FROM network WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return nil, false, fmt.Errorf("failed to parse stored network: %w", err)
	}
	return &snap, true, nil
}

func (s *SQLiteStore) SaveSnapshot(snap *models.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(
		`INSERT INTO network (id, doc) VALUES (1, ?) ON CONFLICT (id) DO UPDATE SET doc = excluded.doc`,
		string(doc),
	)
	return err
}

func (s *SQLiteStore) LoadSchedule(routeID int) (*models.VehicleSchedule, bool, error) {
	var doc string
	err := s.conn.QueryRow(`SELECT doc FROM schedules WHERE route_id = ?`, routeID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var sched models.VehicleSchedule
	if err := json.Unmarshal([]byte(doc), &sched); err != nil {
		return nil, false, fmt.Errorf("failed to parse stored schedule for route %d: %w", routeID, err)
	}
	return &sched, true, nil
}

func (s *SQLiteStore) SaveSchedule(sched *models.VehicleSchedule) error {
	doc, err := json.Marshal(sched)
	if err != nil {
		return err
	}
	_, err = s.conn.Exec(
		`INSERT INTO schedules (route_id, doc) VALUES (?, ?) ON CONFLICT (route_id) DO UPDATE SET doc = excluded.doc`,
		sched.LineID, string(doc),
	)
	return err
}

func (s *SQLiteStore) DeleteSchedule(routeID int) error {
	_, err := s.conn.Exec(`DELETE FROM schedules WHERE route_id = ?`, routeID)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
