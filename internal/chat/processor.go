package chat

import "time"

// maxMessageRunes caps the text of a single chat message. Longer input is
// cut at the limit, not rejected.
const maxMessageRunes = 2000

// Processor turns raw inbound text into ChatEvents. It never touches the
// registry; dropped input produces no event, no broadcast and no history
// entry.
type Processor struct {
	now func() time.Time
}

func NewProcessor() *Processor {
	return &Processor{now: time.Now}
}

// Process validates and normalizes one inbound message. Only exact
// emptiness drops a message; everything else becomes an event stamped with
// the current wall-clock time and the sender identity bound at admission.
// The bool result is false when the message was dropped.
func (p *Processor) Process(identity, raw string) (ChatEvent, bool) {
	if raw == "" {
		return ChatEvent{}, false
	}

	if runes := []rune(raw); len(runes) > maxMessageRunes {
		raw = string(runes[:maxMessageRunes])
	}

	return ChatEvent{
		Sender:    identity,
		Text:      raw,
		Timestamp: p.now().UTC(),
	}, true
}
