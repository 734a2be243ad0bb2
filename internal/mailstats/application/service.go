package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	mailstats "mailsort-dashboard/internal/mailstats/domain"
	"mailsort-dashboard/internal/observability/metrics"
)

// Section names used for metrics and logs.
const (
	SectionTotals   = "totals"
	SectionCarriers = "carriers"
	SectionBPDetail = "bp_detail"
)

// Reader reads the letter and business tables for one day.
type Reader interface {
	// BinTotals returns count and weight per BIN for letters in [dayStart, dayEnd)
	// sorted into one of bins. BINs without letters may be omitted.
	BinTotals(ctx context.Context, dayStart, dayEnd time.Time, bins []int) ([]mailstats.BinTotal, error)
	// BPTallies returns count and weight per BP code for letters in [dayStart, dayEnd).
	BPTallies(ctx context.Context, dayStart, dayEnd time.Time) (map[string]mailstats.LetterTally, error)
	// BusinessRoutes returns the routing table.
	BusinessRoutes(ctx context.Context) ([]mailstats.BusinessRoute, error)
}

// Service answers the daily mail statistics queries.
type Service struct {
	reader Reader
	lookup mailstats.Lookup
	logger *log.Logger
}

// NewService constructs a Service.
func NewService(reader Reader, lookup mailstats.Lookup, logger *log.Logger) (*Service, error) {
	if reader == nil {
		return nil, errors.New("mailstats service: nil reader")
	}
	if err := lookup.Validate(); err != nil {
		return nil, err
	}
	return &Service{reader: reader, lookup: lookup, logger: logger}, nil
}

// Lookup returns the BIN tables in use.
func (s *Service) Lookup() mailstats.Lookup { return s.lookup }

// Totals returns the main-carrier totals of day.
func (s *Service) Totals(ctx context.Context, day time.Time) (mailstats.TotalsReport, error) {
	dayStart, dayEnd, err := dayBounds(day)
	if err != nil {
		return mailstats.TotalsReport{}, err
	}
	start := time.Now()
	rows, err := s.reader.BinTotals(ctx, dayStart, dayEnd, s.lookup.TotalsBins)
	s.observe(SectionTotals, dayStart, start, err)
	if err != nil {
		return mailstats.TotalsReport{}, fmt.Errorf("mailstats: totals: %w", err)
	}
	name := s.lookup.TotalsName
	rows = mailstats.FillBins(rows, s.lookup.TotalsBins, func(int) string { return name })
	return mailstats.NewTotalsReport(rows), nil
}

// Carriers returns one row per configured carrier BIN.
func (s *Service) Carriers(ctx context.Context, day time.Time) ([]mailstats.BinTotal, error) {
	dayStart, dayEnd, err := dayBounds(day)
	if err != nil {
		return nil, err
	}
	bins := s.lookup.CarrierBins()
	start := time.Now()
	rows, err := s.reader.BinTotals(ctx, dayStart, dayEnd, bins)
	s.observe(SectionCarriers, dayStart, start, err)
	if err != nil {
		return nil, fmt.Errorf("mailstats: carriers: %w", err)
	}
	return mailstats.FillBins(rows, bins, s.lookup.CarrierName), nil
}

// BPDetail returns the BusinessPost routes that received letters on day.
func (s *Service) BPDetail(ctx context.Context, day time.Time) ([]mailstats.BPDetail, error) {
	dayStart, dayEnd, err := dayBounds(day)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	routes, err := s.reader.BusinessRoutes(ctx)
	if err != nil {
		s.observe(SectionBPDetail, dayStart, start, err)
		return nil, fmt.Errorf("mailstats: business routes: %w", err)
	}
	tallies, err := s.reader.BPTallies(ctx, dayStart, dayEnd)
	s.observe(SectionBPDetail, dayStart, start, err)
	if err != nil {
		return nil, fmt.Errorf("mailstats: bp tallies: %w", err)
	}
	return mailstats.JoinBPDetail(routes, tallies), nil
}

// Prealert returns the BusinessPost pre-alert rows of day.
func (s *Service) Prealert(ctx context.Context, day time.Time) ([]mailstats.PrealertRow, error) {
	details, err := s.BPDetail(ctx, day)
	if err != nil {
		return nil, err
	}
	return mailstats.Prealert(details), nil
}

func (s *Service) observe(section string, day, start time.Time, err error) {
	metrics.ObserveSourceQuery(section, metrics.ResultOf(err), time.Since(start))
	if err != nil && s.logger != nil {
		s.logger.Printf("mailstats %s: date=%s query failed: %v", section, day.Format("2006-01-02"), err)
	}
}

func dayBounds(day time.Time) (time.Time, time.Time, error) {
	if day.IsZero() {
		return time.Time{}, time.Time{}, mailstats.ErrInvalidDay
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return dayStart, dayStart.AddDate(0, 0, 1), nil
}
