package chat

import "sync"

// Registry tracks the set of admitted live connections. It is the only
// mutable shared state in the subsystem; the mutex is scoped to mutation
// and snapshot-copy and is never held during delivery I/O.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Register adds a connection. Connection IDs are unique by construction,
// so there is no duplicate guard.
func (r *Registry) Register(c *Client) {
	r.mu.Lock()
	r.clients[c.ID] = c
	r.mu.Unlock()
}

// Unregister removes a connection. Teardown can race between the read pump,
// the fan-out slow-consumer path and shutdown, so removing an absent entry
// is a no-op.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.clients, id)
	r.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the live connections for fan-out.
// A connection that finished teardown is never in the copy; one admitted
// concurrently may miss broadcasts issued before it joined.
func (r *Registry) Snapshot() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	return clients
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
