package app

import (
	"log/slog"

	"planner.opentransit.org/internal/config"
	"planner.opentransit.org/internal/hub"
	"planner.opentransit.org/internal/network"
)

// Application wires the planner's dependencies together: configuration, the
// network graph with its derivation engines, the websocket hub, the logger
// and the binary version. Handlers hang off this struct.
type Application struct {
	Config  *config.Config
	Network *network.Network
	Hub     *hub.Hub
	Logger  *slog.Logger
	Version string
}

// New creates and wires all dependencies for the Application. The network's
// derived updates are forwarded to the hub for broadcast.
func New(cfg *config.Config, nw *network.Network, h *hub.Hub, logger *slog.Logger, version string) *Application {
	nw.SetUpdateListener(func(u network.DerivedUpdate) {
		h.Broadcast(u)
	})

	return &Application{
		Config:  cfg,
		Network: nw,
		Hub:     h,
		Logger:  logger,
		Version: version,
	}
}
