package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"mailsort-dashboard/internal/observability/metrics"
	productivity "mailsort-dashboard/internal/productivity/domain"
)

// EventSource returns every item event of one calendar day.
// Implementations must not emit events without a station code.
type EventSource interface {
	FetchEvents(ctx context.Context, dayStart, dayEnd time.Time) ([]productivity.RawEvent, error)
}

// Report is the productivity of one day, ready to render.
type Report struct {
	Day      time.Time
	Result   productivity.Result
	Grid     productivity.Grid
	Accepted int
	Dropped  int
}

// Empty reports whether the day had no activity.
func (r Report) Empty() bool { return r.Result.Empty() }

// Service builds productivity reports from an event source. It keeps no
// state between calls and is safe for concurrent use.
type Service struct {
	source EventSource
	logger *log.Logger
}

// NewService constructs a Service.
func NewService(source EventSource, logger *log.Logger) (*Service, error) {
	if source == nil {
		return nil, errors.New("productivity service: nil event source")
	}
	return &Service{source: source, logger: logger}, nil
}

// Report fetches the events of day and aggregates them. day is truncated to
// midnight in its own location.
func (s *Service) Report(ctx context.Context, day time.Time) (Report, error) {
	if day.IsZero() {
		return Report{}, productivity.ErrInvalidDay
	}
	start := time.Now()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	events, err := s.source.FetchEvents(ctx, dayStart, dayEnd)
	if err != nil {
		metrics.ObserveProductivity(metrics.ResultError, time.Since(start))
		return Report{}, fmt.Errorf("productivity: fetch events: %w", err)
	}

	result, stats := productivity.Summarize(events)
	report := Report{
		Day:      dayStart,
		Result:   result,
		Grid:     productivity.BuildGrid(result),
		Accepted: stats.Accepted,
		Dropped:  stats.Dropped,
	}

	metrics.AddProductivityEvents(stats.Accepted, stats.Dropped)
	outcome := metrics.ResultSuccess
	if report.Empty() {
		outcome = metrics.ResultEmpty
	}
	metrics.ObserveProductivity(outcome, time.Since(start))

	if s.logger != nil {
		if stats.Dropped > 0 {
			s.logger.Printf("productivity report: date=%s dropped %d events with invalid timestamp", dayStart.Format("2006-01-02"), stats.Dropped)
		}
		s.logger.Printf("productivity report: date=%s events=%d active_slots=%d", dayStart.Format("2006-01-02"), stats.Accepted, len(result.ActiveSlots))
	}
	return report, nil
}
