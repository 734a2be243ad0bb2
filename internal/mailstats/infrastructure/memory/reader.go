package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	mailstats "mailsort-dashboard/internal/mailstats/domain"
)

// Letter is one processed letter as stored by the sorter.
type Letter struct {
	At     time.Time
	Output int
	Weight decimal.Decimal
	BP     string
}

// Reader is an in-memory letters and business store for demo/testing.
type Reader struct {
	mu      sync.RWMutex
	letters []Letter
	routes  []mailstats.BusinessRoute
}

// NewReader constructs an empty reader.
func NewReader() *Reader {
	return &Reader{}
}

// AddLetters appends letters.
func (r *Reader) AddLetters(letters ...Letter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.letters = append(r.letters, letters...)
}

// AddRoutes appends business routes.
func (r *Reader) AddRoutes(routes ...mailstats.BusinessRoute) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, routes...)
}

// BinTotals sums letters in [dayStart, dayEnd) per output BIN.
func (r *Reader) BinTotals(ctx context.Context, dayStart, dayEnd time.Time, bins []int) ([]mailstats.BinTotal, error) {
	_ = ctx
	wanted := make(map[int]bool, len(bins))
	for _, bin := range bins {
		wanted[bin] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	byBin := make(map[int]*mailstats.BinTotal)
	for _, letter := range r.letters {
		if !within(letter.At, dayStart, dayEnd) || !wanted[letter.Output] {
			continue
		}
		row, ok := byBin[letter.Output]
		if !ok {
			row = &mailstats.BinTotal{Bin: letter.Output, Weight: decimal.Zero}
			byBin[letter.Output] = row
		}
		row.Count++
		row.Weight = row.Weight.Add(letter.Weight)
	}
	result := make([]mailstats.BinTotal, 0, len(byBin))
	for _, row := range byBin {
		result = append(result, *row)
	}
	return result, nil
}

// BPTallies sums letters in [dayStart, dayEnd) per BP code.
func (r *Reader) BPTallies(ctx context.Context, dayStart, dayEnd time.Time) (map[string]mailstats.LetterTally, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]mailstats.LetterTally)
	for _, letter := range r.letters {
		if !within(letter.At, dayStart, dayEnd) || !strings.HasPrefix(letter.BP, "BP") {
			continue
		}
		tally := result[letter.BP]
		tally.Count++
		tally.Weight = tally.Weight.Add(letter.Weight)
		result[letter.BP] = tally
	}
	return result, nil
}

// BusinessRoutes returns the distinct routes with a prealert code.
func (r *Reader) BusinessRoutes(ctx context.Context) ([]mailstats.BusinessRoute, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[mailstats.BusinessRoute]bool, len(r.routes))
	routes := make([]mailstats.BusinessRoute, 0, len(r.routes))
	for _, route := range r.routes {
		if route.PrealertCode == "" || seen[route] {
			continue
		}
		seen[route] = true
		routes = append(routes, route)
	}
	return routes, nil
}

func within(at, start, end time.Time) bool {
	return !at.Before(start) && at.Before(end)
}
