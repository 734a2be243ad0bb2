package apihttp

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	mailstats "mailsort-dashboard/internal/mailstats/domain"
	"mailsort-dashboard/internal/observability/metrics"
	prodapp "mailsort-dashboard/internal/productivity/application"
	productivity "mailsort-dashboard/internal/productivity/domain"
)

const dateLayout = "2006-01-02"

// MailStats answers the BIN and BusinessPost queries of one day.
type MailStats interface {
	Totals(ctx context.Context, day time.Time) (mailstats.TotalsReport, error)
	Carriers(ctx context.Context, day time.Time) ([]mailstats.BinTotal, error)
	BPDetail(ctx context.Context, day time.Time) ([]mailstats.BPDetail, error)
	Prealert(ctx context.Context, day time.Time) ([]mailstats.PrealertRow, error)
}

// Productivity builds the productivity report of one day.
type Productivity interface {
	Report(ctx context.Context, day time.Time) (prodapp.Report, error)
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// DayResolver reads the date query parameter in the facility's timezone.
type DayResolver struct {
	loc   *time.Location
	clock Clock
}

// NewDayResolver constructs a DayResolver. A nil location means UTC.
func NewDayResolver(loc *time.Location, clock Clock) *DayResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &DayResolver{loc: loc, clock: clock}
}

// Resolve returns midnight of ?date=YYYY-MM-DD, or of today when absent.
func (d *DayResolver) Resolve(r *http.Request) (time.Time, error) {
	value := r.URL.Query().Get("date")
	if value == "" {
		now := time.Now()
		if d.clock != nil {
			now = d.clock.Now()
		}
		now = now.In(d.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, d.loc), nil
	}
	parsed, err := time.ParseInLocation(dateLayout, value, d.loc)
	if err != nil {
		return time.Time{}, errors.New("date must be YYYY-MM-DD")
	}
	return parsed, nil
}

// TotalsHandler serves the main-carrier BIN totals.
type TotalsHandler struct {
	stats MailStats
	days  *DayResolver
	unit  string
}

// NewTotalsHandler constructs a TotalsHandler.
func NewTotalsHandler(stats MailStats, days *DayResolver, unit string) *TotalsHandler {
	return &TotalsHandler{stats: stats, days: days, unit: unit}
}

// ServeHTTP handles GET /api/v1/totals.
func (h *TotalsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.stats == nil || h.days == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}
	day, err := h.days.Resolve(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := h.stats.Totals(r.Context(), day)
	if err != nil {
		http.Error(w, "query totals error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, totalsResponse{
		Date: day.Format(dateLayout),
		Rows: toBinRows(report.Rows, h.unit),
		Totals: totalsFooter{
			Count:  report.Count,
			Weight: report.RoundedWeight().InexactFloat64(),
		},
	})
}

// CarriersHandler serves the per-carrier BIN rows.
type CarriersHandler struct {
	stats MailStats
	days  *DayResolver
	unit  string
}

// NewCarriersHandler constructs a CarriersHandler.
func NewCarriersHandler(stats MailStats, days *DayResolver, unit string) *CarriersHandler {
	return &CarriersHandler{stats: stats, days: days, unit: unit}
}

// ServeHTTP handles GET /api/v1/carriers.
func (h *CarriersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.stats == nil || h.days == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}
	day, err := h.days.Resolve(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rows, err := h.stats.Carriers(r.Context(), day)
	if err != nil {
		http.Error(w, "query carriers error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, carriersResponse{Date: day.Format(dateLayout), Rows: toBinRows(rows, h.unit)})
}

// BPDetailHandler serves the BusinessPost breakdown.
type BPDetailHandler struct {
	stats MailStats
	days  *DayResolver
}

// NewBPDetailHandler constructs a BPDetailHandler.
func NewBPDetailHandler(stats MailStats, days *DayResolver) *BPDetailHandler {
	return &BPDetailHandler{stats: stats, days: days}
}

// ServeHTTP handles GET /api/v1/bp-detail.
func (h *BPDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.stats == nil || h.days == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}
	day, err := h.days.Resolve(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	details, err := h.stats.BPDetail(r.Context(), day)
	if err != nil {
		http.Error(w, "query bp detail error", http.StatusInternalServerError)
		return
	}
	rows := make([]bpDetailRow, 0, len(details))
	for _, detail := range details {
		rows = append(rows, bpDetailRow{
			BPCode:       detail.BPCode,
			Location:     detail.Location,
			PrealertCode: detail.PrealertCode,
			Count:        detail.Count,
			Weight:       detail.Weight.InexactFloat64(),
		})
	}
	writeJSON(w, bpDetailResponse{Date: day.Format(dateLayout), Rows: rows})
}

// ProductivityHandler serves the productivity grid.
type ProductivityHandler struct {
	service Productivity
	days    *DayResolver
}

// NewProductivityHandler constructs a ProductivityHandler.
func NewProductivityHandler(service Productivity, days *DayResolver) *ProductivityHandler {
	return &ProductivityHandler{service: service, days: days}
}

// ServeHTTP handles GET /api/v1/productivity.
func (h *ProductivityHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil || h.days == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}
	day, err := h.days.Resolve(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	report, err := h.service.Report(r.Context(), day)
	if err != nil {
		http.Error(w, "query productivity error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, toProductivityResponse(report))
}

type binRow struct {
	Name    string  `json:"name"`
	Bin     int     `json:"bin"`
	Count   int     `json:"count"`
	Weight  float64 `json:"weight"`
	Average string  `json:"average"`
}

type totalsFooter struct {
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

type totalsResponse struct {
	Date   string       `json:"date"`
	Rows   []binRow     `json:"rows"`
	Totals totalsFooter `json:"totals"`
}

type carriersResponse struct {
	Date string   `json:"date"`
	Rows []binRow `json:"rows"`
}

type bpDetailRow struct {
	BPCode       string  `json:"bp_code"`
	Location     string  `json:"location"`
	PrealertCode string  `json:"prealert_code"`
	Count        int     `json:"count"`
	Weight       float64 `json:"weight"`
}

type bpDetailResponse struct {
	Date string        `json:"date"`
	Rows []bpDetailRow `json:"rows"`
}

type groupAverage struct {
	Total        int     `json:"total"`
	NonZeroCells int     `json:"non_zero_cells"`
	Average      float64 `json:"average"`
	Threshold50  float64 `json:"threshold_50"`
}

type productivityResponse struct {
	Date        string            `json:"date"`
	Empty       bool              `json:"empty"`
	ActiveSlots []string          `json:"active_slots"`
	Accepted    int               `json:"accepted"`
	Dropped     int               `json:"dropped"`
	Machine     groupAverage      `json:"machine"`
	Manual      groupAverage      `json:"manual"`
	GrandTotal  int               `json:"grand_total"`
	Grid        productivity.Grid `json:"grid"`
}

func toBinRows(rows []mailstats.BinTotal, unit string) []binRow {
	result := make([]binRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, binRow{
			Name:    row.Name,
			Bin:     row.Bin,
			Count:   row.Count,
			Weight:  row.RoundedWeight().InexactFloat64(),
			Average: row.FormatAverageWeight(unit),
		})
	}
	return result
}

func toGroupAverage(avg productivity.GroupAverage) groupAverage {
	return groupAverage{
		Total:        avg.Total,
		NonZeroCells: avg.NonZeroCells,
		Average:      avg.Average,
		Threshold50:  avg.Threshold50,
	}
}

func toProductivityResponse(report prodapp.Report) productivityResponse {
	slots := make([]string, 0, len(report.Result.ActiveSlots))
	for _, slot := range report.Result.ActiveSlots {
		slots = append(slots, slot.String())
	}
	return productivityResponse{
		Date:        report.Day.Format(dateLayout),
		Empty:       report.Empty(),
		ActiveSlots: slots,
		Accepted:    report.Accepted,
		Dropped:     report.Dropped,
		Machine:     toGroupAverage(report.Result.Machine),
		Manual:      toGroupAverage(report.Result.Manual),
		GrandTotal:  report.Result.GrandTotal,
		Grid:        report.Grid,
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func observeExport(logger *log.Logger, report, format string, start time.Time, err error) {
	metrics.ObserveExport(report, format, metrics.ResultOf(err), time.Since(start))
	if err != nil && logger != nil {
		logger.Printf("export %s.%s: %v", report, format, err)
	}
}
