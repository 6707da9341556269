package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
)

// Event is a debounced gesture turning on or off.
type Event struct {
	ID        int64          `json:"id"`
	SessionID string         `json:"session_id"`
	Symbol    gesture.Symbol `json:"symbol"`
	Active    bool           `json:"active"`
	Frame     int64          `json:"frame"`
	CreatedAt time.Time      `json:"created_at"`
}

// EventRepository provides operations on gesture events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts an event, filling in ID and CreatedAt when unset.
func (r *EventRepository) Record(e *Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	result, err := r.db.Exec(
		`INSERT INTO gesture_events (session_id, symbol, active, frame, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, e.Symbol.String(), e.Active, e.Frame, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id

	return nil
}

const eventColumns = `id, session_id, symbol, active, frame, created_at`

// ListRecent returns up to limit events across sessions, newest first.
func (r *EventRepository) ListRecent(limit int) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM gesture_events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListBySession returns every event of a session in the order recorded.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT `+eventColumns+` FROM gesture_events WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// CountBySymbol counts activations per symbol. An empty sessionID counts all sessions.
func (r *EventRepository) CountBySymbol(sessionID string) (map[gesture.Symbol]int, error) {
	query := `SELECT symbol, COUNT(*) FROM gesture_events WHERE active = 1`
	var args []any
	if sessionID != "" {
		query += ` AND session_id = ?`
		args = append(args, sessionID)
	}
	query += ` GROUP BY symbol`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[gesture.Symbol]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, err
		}
		sym, err := gesture.ParseSymbol(name)
		if err != nil {
			return nil, fmt.Errorf("stored event: %w", err)
		}
		counts[sym] = n
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

func scanEvents(rows *sql.Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		e := &Event{}
		var name string
		var active int

		if err := rows.Scan(&e.ID, &e.SessionID, &name, &active, &e.Frame, &e.CreatedAt); err != nil {
			return nil, err
		}

		sym, err := gesture.ParseSymbol(name)
		if err != nil {
			return nil, fmt.Errorf("stored event %d: %w", e.ID, err)
		}
		e.Symbol = sym
		e.Active = active == 1
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
