package chat

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"event-chat/internal/session"
)

// historyLimit bounds the recent-history snapshot.
const historyLimit = 100

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for now (Dev mode)
	},
}

// Handler is the HTTP surface of the realtime core: the websocket endpoint
// and the plain recent-history endpoint.
type Handler struct {
	gate  *Gate
	store HistoryStore
	log   zerolog.Logger
}

func NewHandler(gate *Gate, store HistoryStore, log zerolog.Logger) *Handler {
	return &Handler{
		gate:  gate,
		store: store,
		log:   log,
	}
}

// ServeWS upgrades the handshake and runs admission. The credential travels
// the same way the session does on the rest of the site: bearer header,
// query parameter or session cookie.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client, err := h.gate.Admit(r.Context(), conn, session.Credential(r))
	if err != nil {
		h.log.Warn().Str("remote", r.RemoteAddr).Err(err).Msg("connection rejected")
		return
	}

	go client.writePump()
	go client.readPump()
}

// History serves the bounded recent-history snapshot: the last 100 events,
// oldest first. It is a point-in-time read over plain HTTP; no live
// connection is involved.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.Recent(r.Context(), historyLimit)
	if err != nil {
		h.log.Error().Err(err).Msg("history query failed")
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []ChatEvent{}
	}

	// The store hands back newest first; clients read oldest first.
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lo.Reverse(events))
}
