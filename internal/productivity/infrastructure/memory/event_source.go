package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	productivity "mailsort-dashboard/internal/productivity/domain"
)

// EventSource is an in-memory event source for demo/testing.
type EventSource struct {
	mu     sync.RWMutex
	events []productivity.RawEvent
}

// NewEventSource constructs a source seeded with events.
func NewEventSource(events ...productivity.RawEvent) *EventSource {
	source := &EventSource{}
	source.Add(events...)
	return source
}

// Add appends events. Events without a station code are ignored, matching
// the contract of the database source.
func (s *EventSource) Add(events ...productivity.RawEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, evt := range events {
		if evt.StationCode == "" {
			continue
		}
		s.events = append(s.events, evt)
	}
}

// FetchEvents returns events in [dayStart, dayEnd) ordered by time, with
// timestamps in the location of dayStart.
func (s *EventSource) FetchEvents(ctx context.Context, dayStart, dayEnd time.Time) ([]productivity.RawEvent, error) {
	_ = ctx
	if dayStart.IsZero() || dayEnd.IsZero() || !dayEnd.After(dayStart) {
		return nil, errors.New("memory event source: invalid day window")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]productivity.RawEvent, 0, len(s.events))
	for _, evt := range s.events {
		if evt.Timestamp.Before(dayStart) || !evt.Timestamp.Before(dayEnd) {
			continue
		}
		evt.Timestamp = evt.Timestamp.In(dayStart.Location())
		result = append(result, evt)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}
