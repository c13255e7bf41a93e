package chat

import "time"

// ChatEvent is the canonical record built from one inbound message.
// It is immutable after construction: fanned out to every live connection
// first, then appended to history.
type ChatEvent struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
