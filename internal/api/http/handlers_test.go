package apihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	mailstats "mailsort-dashboard/internal/mailstats/domain"
	prodapp "mailsort-dashboard/internal/productivity/application"
	productivity "mailsort-dashboard/internal/productivity/domain"
	"mailsort-dashboard/internal/productivity/infrastructure/memory"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeStats struct {
	err     error
	lastDay time.Time
}

func (f *fakeStats) Totals(_ context.Context, day time.Time) (mailstats.TotalsReport, error) {
	f.lastDay = day
	if f.err != nil {
		return mailstats.TotalsReport{}, f.err
	}
	return mailstats.NewTotalsReport([]mailstats.BinTotal{
		{Name: "PostNL", Bin: 3, Count: 4, Weight: decimal.RequireFromString("50")},
		{Name: "PostNL", Bin: 6},
	}), nil
}

func (f *fakeStats) Carriers(context.Context, time.Time) ([]mailstats.BinTotal, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []mailstats.BinTotal{{Name: "Falkpost", Bin: 1, Count: 2, Weight: decimal.NewFromInt(8)}}, nil
}

func (f *fakeStats) BPDetail(context.Context, time.Time) ([]mailstats.BPDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []mailstats.BPDetail{{BPCode: "BP0504", Location: "Utrecht", PrealertCode: "PA-200", Count: 12, Weight: decimal.RequireFromString("240.46")}}, nil
}

func (f *fakeStats) Prealert(context.Context, time.Time) ([]mailstats.PrealertRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []mailstats.PrealertRow{{SenderID: "PA-200", Receiver: "Utrecht", ItemCount: 12}}, nil
}

var (
	testLoc = time.FixedZone("CET", 3600)
	testDay = time.Date(2026, time.October, 19, 0, 0, 0, 0, testLoc)
)

func newProductivity(t *testing.T) *prodapp.Service {
	t.Helper()
	source := memory.NewEventSource(
		productivity.RawEvent{Timestamp: testDay.Add(8*time.Hour + 5*time.Minute), StationCode: "1S01"},
		productivity.RawEvent{Timestamp: testDay.Add(8*time.Hour + 20*time.Minute), StationCode: "2001"},
	)
	svc, err := prodapp.NewService(source, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func newResolver() *DayResolver {
	return NewDayResolver(testLoc, fixedClock{now: time.Date(2026, time.October, 19, 23, 30, 0, 0, time.UTC)})
}

func TestDayResolver(t *testing.T) {
	days := newResolver()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/totals", nil)
	day, err := days.Resolve(req)
	if err != nil {
		t.Fatalf("resolve default: %v", err)
	}
	// 23:30 UTC is already the next day at UTC+1.
	want := time.Date(2026, time.October, 20, 0, 0, 0, 0, testLoc)
	if !day.Equal(want) {
		t.Fatalf("default day: got=%v want=%v", day, want)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/totals?date=2026-10-19", nil)
	day, err = days.Resolve(req)
	if err != nil || !day.Equal(testDay) {
		t.Fatalf("explicit day: got=%v err=%v", day, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/totals?date=19-10-2026", nil)
	if _, err := days.Resolve(req); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestTotalsHandler(t *testing.T) {
	stats := &fakeStats{}
	handler := NewTotalsHandler(stats, newResolver(), "g")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/totals?date=2026-10-19", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusOK)
	}
	var resp totalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Date != "2026-10-19" || len(resp.Rows) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Rows[0].Average != "12.5 g" || resp.Rows[1].Average != "-" {
		t.Fatalf("averages: got=%q,%q", resp.Rows[0].Average, resp.Rows[1].Average)
	}
	if resp.Totals.Count != 4 || resp.Totals.Weight != 50 {
		t.Fatalf("footer: got=%+v", resp.Totals)
	}
	if !stats.lastDay.Equal(testDay) {
		t.Fatalf("service day: got=%v want=%v", stats.lastDay, testDay)
	}
}

func TestHandlersStatusCodes(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name    string
		handler http.Handler
		method  string
		target  string
		want    int
	}{
		{name: "bad date", handler: NewTotalsHandler(&fakeStats{}, newResolver(), "g"), method: http.MethodGet, target: "/api/v1/totals?date=nope", want: http.StatusBadRequest},
		{name: "method", handler: NewCarriersHandler(&fakeStats{}, newResolver(), "g"), method: http.MethodPost, target: "/api/v1/carriers", want: http.StatusMethodNotAllowed},
		{name: "store failure", handler: NewBPDetailHandler(&fakeStats{err: boom}, newResolver()), method: http.MethodGet, target: "/api/v1/bp-detail", want: http.StatusInternalServerError},
		{name: "not ready", handler: NewProductivityHandler(nil, newResolver()), method: http.MethodGet, target: "/api/v1/productivity", want: http.StatusServiceUnavailable},
		{name: "carriers ok", handler: NewCarriersHandler(&fakeStats{}, newResolver(), "g"), method: http.MethodGet, target: "/api/v1/carriers", want: http.StatusOK},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.handler.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s: status got=%d want=%d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestProductivityHandler(t *testing.T) {
	handler := NewProductivityHandler(newProductivity(t), newResolver())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/productivity?date=2026-10-19", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp productivityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Empty || resp.GrandTotal != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(resp.ActiveSlots) != 2 || resp.ActiveSlots[0] != "08:00" || resp.ActiveSlots[1] != "08:15" {
		t.Fatalf("active slots: got=%v", resp.ActiveSlots)
	}
	if resp.Machine.Average != 1 || resp.Manual.Average != 1 {
		t.Fatalf("averages: machine=%v manual=%v", resp.Machine.Average, resp.Manual.Average)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/productivity?date=2026-10-18", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Empty || resp.GrandTotal != 0 {
		t.Fatalf("expected empty day, got %+v", resp)
	}
}

func TestPrealertExportHandler(t *testing.T) {
	handler := NewPrealertExportHandler(&fakeStats{}, newResolver(), "csv", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/bp-prealert.csv?date=2026-10-19", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "voormelding_businesspost_2026-10-19.csv") {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.Contains(rec.Body.String(), "PA-200;Utrecht;12;;") {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}

	handler = NewPrealertExportHandler(&fakeStats{}, newResolver(), "xlsx", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/bp-prealert.xlsx?date=2026-10-19", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != xlsxContentType {
		t.Fatalf("xlsx export: status=%d type=%q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestProductivityExportHandler(t *testing.T) {
	svc := newProductivity(t)
	for _, format := range []string{"xlsx", "pdf"} {
		handler := NewProductivityExportHandler(svc, newResolver(), format, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/productivity."+format+"?date=2026-10-19", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status got=%d", format, rec.Code)
		}
		if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "productiviteit_2026-10-19."+format) {
			t.Fatalf("%s: unexpected disposition %q", format, got)
		}
		if rec.Body.Len() == 0 {
			t.Fatalf("%s: empty body", format)
		}
	}
	pdf := NewProductivityExportHandler(svc, newResolver(), "pdf", nil)
	rec := httptest.NewRecorder()
	pdf.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/exports/productivity.pdf?date=2026-10-19", nil))
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("pdf export is not a pdf")
	}
}

type failingProductivity struct{}

func (failingProductivity) Report(context.Context, time.Time) (prodapp.Report, error) {
	return prodapp.Report{}, errors.New("db down")
}

func TestDashboardHandler(t *testing.T) {
	handler := NewDashboardHandler(&fakeStats{}, newProductivity(t), newResolver(), "g", time.Minute, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?date=2026-10-19", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`content="60"`,
		"Totalen per BIN",
		"12.5 g",
		"Falkpost",
		"BP0504",
		"Station 0 (Machine)",
		productivity.GrandTotalLabel,
		"above-average",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestDashboardHandler_SectionErrors(t *testing.T) {
	handler := NewDashboardHandler(&fakeStats{}, failingProductivity{}, newResolver(), "g", 0, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?date=2026-10-19", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "BP0504") {
		t.Fatalf("other sections should still render")
	}
	if !strings.Contains(body, `class="error"`) {
		t.Fatalf("failing section should render an inline error")
	}
	if strings.Contains(body, "http-equiv") {
		t.Fatalf("refresh disabled but meta refresh rendered")
	}

	handler = NewDashboardHandler(&fakeStats{}, newProductivity(t), newResolver(), "g", 0, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?date=2026-10-18", nil))
	if !strings.Contains(rec.Body.String(), "Geen productiviteit data voor deze datum") {
		t.Fatalf("expected no-data message for empty day")
	}
}
