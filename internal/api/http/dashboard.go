package apihttp

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	productivity "mailsort-dashboard/internal/productivity/domain"
)

// DashboardHandler renders the HTML overview of one day.
type DashboardHandler struct {
	stats   MailStats
	prod    Productivity
	days    *DayResolver
	unit    string
	refresh time.Duration
	logger  *log.Logger
}

// NewDashboardHandler constructs a DashboardHandler. refresh <= 0 disables
// the page auto-refresh.
func NewDashboardHandler(stats MailStats, prod Productivity, days *DayResolver, unit string, refresh time.Duration, logger *log.Logger) *DashboardHandler {
	return &DashboardHandler{stats: stats, prod: prod, days: days, unit: unit, refresh: refresh, logger: logger}
}

type dashboardPage struct {
	Date           string
	RefreshSeconds int

	Totals    totalsResponse
	TotalsErr string

	Carriers    []binRow
	CarriersErr string

	BPDetail    []bpDetailRow
	BPDetailErr string

	Grid            productivity.Grid
	Dropped         int
	ProductivityErr string
}

// ServeHTTP handles GET /.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.stats == nil || h.prod == nil || h.days == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}
	day, err := h.days.Resolve(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := h.load(r.Context(), day)

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		if h.logger != nil {
			h.logger.Printf("dashboard render: %v", err)
		}
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// load fetches all sections concurrently. A failing section is reported on
// the page and does not cancel the others.
func (h *DashboardHandler) load(ctx context.Context, day time.Time) dashboardPage {
	page := dashboardPage{
		Date:           day.Format(dateLayout),
		RefreshSeconds: int(h.refresh / time.Second),
	}

	var g errgroup.Group
	g.Go(func() error {
		report, err := h.stats.Totals(ctx, day)
		if err != nil {
			page.TotalsErr = h.sectionError("totals", err)
			return nil
		}
		page.Totals = totalsResponse{
			Date: page.Date,
			Rows: toBinRows(report.Rows, h.unit),
			Totals: totalsFooter{
				Count:  report.Count,
				Weight: report.RoundedWeight().InexactFloat64(),
			},
		}
		return nil
	})
	g.Go(func() error {
		rows, err := h.stats.Carriers(ctx, day)
		if err != nil {
			page.CarriersErr = h.sectionError("carriers", err)
			return nil
		}
		page.Carriers = toBinRows(rows, h.unit)
		return nil
	})
	g.Go(func() error {
		details, err := h.stats.BPDetail(ctx, day)
		if err != nil {
			page.BPDetailErr = h.sectionError("bp detail", err)
			return nil
		}
		for _, detail := range details {
			page.BPDetail = append(page.BPDetail, bpDetailRow{
				BPCode:       detail.BPCode,
				Location:     detail.Location,
				PrealertCode: detail.PrealertCode,
				Count:        detail.Count,
				Weight:       detail.Weight.InexactFloat64(),
			})
		}
		return nil
	})
	g.Go(func() error {
		report, err := h.prod.Report(ctx, day)
		if err != nil {
			page.ProductivityErr = h.sectionError("productivity", err)
			return nil
		}
		page.Grid = report.Grid
		page.Dropped = report.Dropped
		return nil
	})
	_ = g.Wait()
	return page
}

func (h *DashboardHandler) sectionError(section string, err error) string {
	if h.logger != nil {
		h.logger.Printf("dashboard %s: %v", section, err)
	}
	return "gegevens konden niet worden geladen"
}
