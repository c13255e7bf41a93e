package chat

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessDropsEmptyInput(t *testing.T) {
	p := NewProcessor()

	_, ok := p.Process("alice", "")
	assert.False(t, ok)
}

func TestProcessKeepsWhitespaceOnlyInput(t *testing.T) {
	// Only exact emptiness drops a message; whitespace is a message.
	p := NewProcessor()

	ev, ok := p.Process("alice", "   ")
	require.True(t, ok)
	assert.Equal(t, "   ", ev.Text)
}

func TestProcessBindsIdentityAndTimestamp(t *testing.T) {
	stamp := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	p := &Processor{now: func() time.Time { return stamp }}

	ev, ok := p.Process("alice", "hello")
	require.True(t, ok)
	assert.Equal(t, "alice", ev.Sender)
	assert.Equal(t, "hello", ev.Text)
	assert.Equal(t, stamp, ev.Timestamp)
}

func TestProcessTruncatesOversizeInput(t *testing.T) {
	p := NewProcessor()
	raw := strings.Repeat("x", 2500)

	ev, ok := p.Process("alice", raw)
	require.True(t, ok)
	assert.Len(t, ev.Text, maxMessageRunes)
	assert.Equal(t, raw[:maxMessageRunes], ev.Text)
}

func TestProcessTruncatesByRunes(t *testing.T) {
	// Multi-byte characters count once and are never split.
	p := NewProcessor()
	raw := strings.Repeat("é", 2500)

	ev, ok := p.Process("alice", raw)
	require.True(t, ok)
	runes := []rune(ev.Text)
	assert.Len(t, runes, maxMessageRunes)
	assert.Equal(t, strings.Repeat("é", maxMessageRunes), ev.Text)
}

func TestProcessKeepsInputAtLimit(t *testing.T) {
	p := NewProcessor()
	raw := strings.Repeat("x", maxMessageRunes)

	ev, ok := p.Process("alice", raw)
	require.True(t, ok)
	assert.Equal(t, raw, ev.Text)
}
