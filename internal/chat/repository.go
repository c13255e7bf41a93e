package chat

import (
	"context"
	"database/sql"
)

// HistoryStore is the durable, append-only log of past chat events.
type HistoryStore interface {
	Append(ctx context.Context, ev ChatEvent) error
	// Recent returns up to limit of the most recently appended events,
	// newest first. Callers wanting chronological order re-sort.
	Recent(ctx context.Context, limit int) ([]ChatEvent, error)
}

// Repository implements HistoryStore over the pooled Postgres handle. Each
// call borrows a connection from the pool for its own duration.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Append(ctx context.Context, ev ChatEvent) error {
	query := "INSERT INTO chat_events (sender, content, created_at) VALUES ($1, $2, $3)"
	_, err := r.db.ExecContext(ctx, query, ev.Sender, ev.Text, ev.Timestamp)
	return err
}

func (r *Repository) Recent(ctx context.Context, limit int) ([]ChatEvent, error) {
	query := `
		SELECT sender, content, created_at
		FROM chat_events
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []ChatEvent
	for rows.Next() {
		var ev ChatEvent
		if err := rows.Scan(&ev.Sender, &ev.Text, &ev.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
