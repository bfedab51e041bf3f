package match

import (
	"net/http"

	"github.com/gokatarajesh/make-ten/internal/server"
)

// HandleWebSocket upgrades the HTTP connection. Clients are anonymous; the
// server assigns each connection an id and announces it with a connected message.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.HandleConnection(conn)
}
