package chat

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"event-chat/internal/session"
)

// fakeHistory is an in-memory HistoryStore. Recent returns newest first,
// like the SQL repository does.
type fakeHistory struct {
	mu      sync.Mutex
	events  []ChatEvent
	failing bool
}

func (f *fakeHistory) Append(_ context.Context, ev ChatEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("history store down")
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeHistory) Recent(_ context.Context, limit int) ([]ChatEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, errors.New("history store down")
	}
	n := len(f.events)
	if limit > n {
		limit = n
	}
	out := make([]ChatEvent, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, f.events[i])
	}
	return out, nil
}

func (f *fakeHistory) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// fakeSessions maps credentials straight to identities.
type fakeSessions map[string]string

func (f fakeSessions) Lookup(_ context.Context, credential string) (string, error) {
	identity, ok := f[credential]
	if !ok {
		return "", session.ErrNoSession
	}
	return identity, nil
}

// recv pops the next delivered event off a client's send buffer.
func recv(t *testing.T, c *Client) ChatEvent {
	t.Helper()
	select {
	case payload, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var ev ChatEvent
		require.NoError(t, json.Unmarshal(payload, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for delivery")
		return ChatEvent{}
	}
}
