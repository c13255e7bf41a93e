package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

const appendTimeout = 5 * time.Second

// Hub serializes broadcasts. A single Run goroutine drains the event
// channel, fans each event out to the registry snapshot, then appends it to
// history. Because one goroutine issues every delivery, all live
// connections observe events in the same order.
//
// Teardown funnels through the same goroutine: only Run removes a
// connection and closes its send channel, so a fan-out in progress can
// never race a close.
type Hub struct {
	registry   *Registry
	processor  *Processor
	store      HistoryStore
	events     chan ChatEvent
	unregister chan *Client
	done       chan struct{}
	log        zerolog.Logger
}

func NewHub(registry *Registry, store HistoryStore, log zerolog.Logger) *Hub {
	return &Hub{
		registry:   registry,
		processor:  NewProcessor(),
		store:      store,
		events:     make(chan ChatEvent, 64),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Submit runs one raw inbound message from an admitted connection through
// the processor and queues the resulting event for broadcast. Dropped input
// queues nothing and surfaces no error to the sender.
func (h *Hub) Submit(c *Client, raw string) {
	ev, ok := h.processor.Process(c.Identity, raw)
	if !ok {
		return
	}
	select {
	case h.events <- ev:
	case <-h.done:
		// Hub stopped; a late submission has nobody to deliver to.
	}
}

// Run is the hub's main loop. Call it in its own goroutine; it returns when
// ctx is cancelled, after closing every live connection.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.unregister:
			h.remove(c)

		case ev := <-h.events:
			h.fanout(ev)

			// Broadcast first, persist second. An append failure loses the
			// event from future history snapshots but never retracts it
			// from already-connected clients.
			appendCtx, cancel := context.WithTimeout(context.Background(), appendTimeout)
			if err := h.store.Append(appendCtx, ev); err != nil {
				h.log.Error().Err(err).Str("sender", ev.Sender).Msg("history append failed")
			}
			cancel()
		}
	}
}

// fanout delivers one event to every connection in the registry snapshot,
// the sender's own connection included. Delivery is best-effort per target:
// one failure never blocks the rest of the fan-out.
func (h *Hub) fanout(ev ChatEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Msg("marshal chat event")
		return
	}

	for _, c := range h.registry.Snapshot() {
		select {
		case c.send <- payload:
		default:
			// Send buffer full. A single failed delivery is terminal for
			// that connection, not for the broadcast.
			h.log.Warn().Str("conn_id", c.ID).Str("identity", c.Identity).Msg("send buffer full, dropping connection")
			h.remove(c)
		}
	}
}

// drop hands a connection to the run goroutine for teardown. Once Run has
// returned every connection is already closed and no fan-out can be in
// flight, so a late drop finalizes directly.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
		h.remove(c)
	}
}

// remove finalizes teardown: out of the registry, send channel closed.
// Called only from the run goroutine, or after it has returned. Safe to
// reach more than once for the same client.
func (h *Hub) remove(c *Client) {
	h.registry.Unregister(c.ID)
	c.closeSend()
}

func (h *Hub) shutdown() {
	for _, c := range h.registry.Snapshot() {
		h.remove(c)
	}
}
