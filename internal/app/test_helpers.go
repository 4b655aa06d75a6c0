package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"planner.opentransit.org/internal/config"
	"planner.opentransit.org/internal/hub"
	"planner.opentransit.org/internal/network"
	"planner.opentransit.org/internal/store"
)

const metersPerDegree = 111194.92664455873

func newTestApplication(t *testing.T) *Application {
	t.Helper()

	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	cfg := &config.Config{
		Port:           4000,
		Env:            "testing",
		StorageBackend: store.BackendFile,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	nw := network.New(fs, logger)
	nw.Load()

	return New(cfg, nw, hub.NewHub(logger), logger, "test")
}

// newTestHandler builds the full routed handler with a test-scoped context.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	app := newTestApplication(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return app.Routes(ctx)
}

// doJSON performs a request with an optional JSON body and returns the
// recorded response.
func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// decodeJSON unmarshals the recorded response body into dst.
func decodeJSON(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rr.Body.String(), err)
	}
}
