package chat

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"event-chat/internal/session"
)

// Gate performs the one-time admission check for new websocket connections.
// Authentication happens here and only here: once a connection is admitted,
// its session is trusted for the life of the connection.
type Gate struct {
	sessions session.Store
	registry *Registry
	hub      *Hub
	log      zerolog.Logger
}

func NewGate(sessions session.Store, registry *Registry, hub *Hub, log zerolog.Logger) *Gate {
	return &Gate{
		sessions: sessions,
		registry: registry,
		hub:      hub,
		log:      log,
	}
}

// Admit resolves the handshake credential against the session store. On
// success the connection joins the registry bound to the resolved identity;
// on failure the transport is closed immediately and nothing is registered.
func (g *Gate) Admit(ctx context.Context, conn *websocket.Conn, credential string) (*Client, error) {
	identity, err := g.sessions.Lookup(ctx, credential)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("admission denied: %w", err)
	}

	c := newClient(g.hub, conn, identity)
	g.registry.Register(c)
	g.log.Info().Str("conn_id", c.ID).Str("identity", identity).Msg("connection admitted")
	return c, nil
}
