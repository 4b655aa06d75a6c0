package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"planner.opentransit.org/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS network (
	id  INTEGER PRIMARY KEY CHECK (id = 1),
	doc JSONB NOT NULL
);
CREATE TABLE IF NOT EXISTS schedules (
	route_id INTEGER PRIMARY KEY,
	doc      JSONB NOT NULL
);
`

// PostgresStore persists the planner documents in Postgres, same
// single-document shape as the SQLite backend.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the database at databaseURL and ensures the
// schema exists.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) LoadSnapshot() (*models.Snapshot, bool, error) {
	var doc []byte
	err := s.pool.QueryRow(context.Background(), `SELECT doc FROM network WHERE id = 1`).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var snap models.Snapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return nil, false, fmt.Errorf("failed to parse stored network: %w", err)
	}
	return &snap, true, nil
}

func (s *PostgresStore) SaveSnapshot(snap *models.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(context.Background(),
		`INSERT INTO network (id, doc) VALUES (1, $1) ON CONFLICT (id) DO UPDATE SET doc = excluded.doc`,
		doc,
	)
	return err
}

func (s *PostgresStore) LoadSchedule(routeID int) (*models.VehicleSchedule, bool, error) {
	var doc []byte
	err := s.pool.QueryRow(context.Background(), `SELECT doc FROM schedules WHERE route_id = $1`, routeID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var sched models.VehicleSchedule
	if err := json.Unmarshal(doc, &sched); err != nil {
		return nil, false, fmt.Errorf("failed to parse stored schedule for route %d: %w", routeID, err)
	}
	return &sched, true, nil
}

func (s *PostgresStore) SaveSchedule(sched *models.VehicleSchedule) error {
	doc, err := json.Marshal(sched)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(context.Background(),
		`INSERT INTO schedules (route_id, doc) VALUES ($1, $2) ON CONFLICT (route_id) DO UPDATE SET doc = excluded.doc`,
		sched.LineID, doc,
	)
	return err
}

func (s *PostgresStore) DeleteSchedule(routeID int) error {
	_, err := s.pool.Exec(context.Background(), `DELETE FROM schedules WHERE route_id = $1`, routeID)
	return err
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
