package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	productivity "mailsort-dashboard/internal/productivity/domain"
)

const defaultLettersTable = "letters"

// EventSource reads processed letters from Postgres.
type EventSource struct {
	db    *sql.DB
	table string
}

// NewEventSource constructs a source with the default table name.
func NewEventSource(db *sql.DB, opts ...EventSourceOption) *EventSource {
	source := &EventSource{db: db, table: defaultLettersTable}
	for _, opt := range opts {
		opt(source)
	}
	return source
}

// FetchEvents returns letters with a datamatrix code within [dayStart, dayEnd).
// Timestamps are returned in the location of dayStart so that slots follow
// the facility's wall clock.
func (s *EventSource) FetchEvents(ctx context.Context, dayStart, dayEnd time.Time) ([]productivity.RawEvent, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("event source: nil db")
	}
	if dayStart.IsZero() || dayEnd.IsZero() || !dayEnd.After(dayStart) {
		return nil, errors.New("event source: invalid day window")
	}

	query := fmt.Sprintf(`
SELECT date_letter, datamatrix
FROM %s
WHERE date_letter >= $1
	AND date_letter < $2
	AND datamatrix IS NOT NULL
	AND datamatrix <> ''
ORDER BY date_letter ASC`, s.table)

	rows, err := s.db.QueryContext(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loc := dayStart.Location()
	events := make([]productivity.RawEvent, 0, 1024)
	for rows.Next() {
		var ts time.Time
		var code string
		if err := rows.Scan(&ts, &code); err != nil {
			return nil, err
		}
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		events = append(events, productivity.RawEvent{Timestamp: ts.In(loc), StationCode: code})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// EventSourceOption configures the event source.
type EventSourceOption func(*EventSource)

// WithLettersTable overrides the default table name.
func WithLettersTable(table string) EventSourceOption {
	return func(source *EventSource) {
		if source != nil && table != "" {
			source.table = table
		}
	}
}
