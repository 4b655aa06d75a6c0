package app

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"planner.opentransit.org/internal/hub"
)

const clientSendBuffer = 64

// updatesHandler upgrades the connection and streams derived-update
// payloads to the map widget until it disconnects. The widget never sends
// application messages; reads are only drained for close detection.
func (app *Application) updatesHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		app.Logger.Error("websocket accept failed", "error", err)
		return
	}

	client := hub.NewClient(uuid.NewString(), clientSendBuffer)
	app.Hub.Register(client)
	defer app.Hub.Unregister(client)

	// CloseRead cancels the returned context when the peer closes or the
	// read fails; we only write on this connection.
	ctx := conn.CloseRead(r.Context())

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case msg, ok := <-client.Send:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				app.Logger.Debug("websocket write failed", "client_id", client.ID, "error", err)
				return
			}
		}
	}
}
