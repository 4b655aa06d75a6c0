package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	remoteGtfs "github.com/jamespfennell/gtfs"

	"planner.opentransit.org/internal/app"
	"planner.opentransit.org/internal/config"
	"planner.opentransit.org/internal/gtfsimport"
	"planner.opentransit.org/internal/hub"
	"planner.opentransit.org/internal/network"
	"planner.opentransit.org/internal/report"
	"planner.opentransit.org/internal/store"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	flag.StringVar(&cfg.Env, "env", cfg.Env, "Environment (development|staging|production)")
	gtfsFile := flag.String("gtfs-file", "", "Path to a GTFS static bundle used to seed an empty network")
	flag.Parse()

	report.SetupSentry()
	defer report.FlushSentry()
	report.ConfigureScope(cfg.Env, version)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	storagePath := cfg.DataDir
	if cfg.StorageBackend == store.BackendSQLite {
		storagePath = cfg.SQLitePath
	}
	st, err := store.Open(cfg.StorageBackend, storagePath, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open store", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	nw := network.New(st, logger)
	nw.Load()

	if *gtfsFile != "" {
		if err := seedFromGTFS(nw, *gtfsFile, logger); err != nil {
			logger.Error("failed to seed network from GTFS bundle", "path", *gtfsFile, "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := hub.NewHub(logger)
	go h.Run(ctx)

	application := app.New(cfg, nw, h, logger, version)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "backend", cfg.StorageBackend)
	err = srv.ListenAndServe()
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}

// seedFromGTFS imports stops and routes from a GTFS static bundle when the
// network is still empty. A populated network is left untouched so a seed
// flag accidentally left in a start script cannot clobber planning work.
func seedFromGTFS(nw *network.Network, path string, logger *slog.Logger) error {
	if snap := nw.Snapshot(); len(snap.Stops) > 0 || len(snap.Routes) > 0 {
		logger.Warn("network is not empty, skipping GTFS seed", "path", path)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read GTFS bundle: %w", err)
	}
	static, err := remoteGtfs.ParseStatic(data, remoteGtfs.ParseStaticOptions{})
	if err != nil {
		return fmt.Errorf("failed to parse GTFS bundle: %w", err)
	}

	nw.Replace(gtfsimport.BuildSnapshot(static, logger))
	return nil
}
