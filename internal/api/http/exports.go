package apihttp

import (
	"bytes"
	"log"
	"net/http"
	"strconv"
	"time"

	mailinterfaces "mailsort-dashboard/internal/mailstats/interfaces"
	prodinterfaces "mailsort-dashboard/internal/productivity/interfaces"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// PrealertExportHandler serves the BusinessPost pre-alert as CSV or XLSX.
type PrealertExportHandler struct {
	stats  MailStats
	days   *DayResolver
	format string
	logger *log.Logger
}

// NewPrealertExportHandler constructs a handler for format "csv" or "xlsx".
func NewPrealertExportHandler(stats MailStats, days *DayResolver, format string, logger *log.Logger) *PrealertExportHandler {
	return &PrealertExportHandler{stats: stats, days: days, format: format, logger: logger}
}

// ServeHTTP handles GET /api/v1/exports/bp-prealert.{csv,xlsx}.
func (h *PrealertExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	start := time.Now()
	rows, err := h.stats.Prealert(r.Context(), day)
	if err != nil {
		observeExport(h.logger, "prealert", h.format, start, err)
		http.Error(w, "query prealert error", http.StatusInternalServerError)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch h.format {
	case "csv":
		contentType = "text/csv; charset=utf-8"
		err = mailinterfaces.WritePrealertCSV(&buf, rows)
	case "xlsx":
		contentType = xlsxContentType
		var data []byte
		data, err = mailinterfaces.BuildPrealertXLSX(day, rows)
		buf.Write(data)
	default:
		http.Error(w, "unsupported format", http.StatusNotFound)
		return
	}
	observeExport(h.logger, "prealert", h.format, start, err)
	if err != nil {
		http.Error(w, "export prealert error", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, contentType, mailinterfaces.PrealertFilename(day, h.format), buf.Bytes())
}

// ProductivityExportHandler serves the productivity grid as XLSX or PDF.
type ProductivityExportHandler struct {
	service Productivity
	days    *DayResolver
	format  string
	logger  *log.Logger
}

// NewProductivityExportHandler constructs a handler for format "xlsx" or "pdf".
func NewProductivityExportHandler(service Productivity, days *DayResolver, format string, logger *log.Logger) *ProductivityExportHandler {
	return &ProductivityExportHandler{service: service, days: days, format: format, logger: logger}
}

// ServeHTTP handles GET /api/v1/exports/productivity.{xlsx,pdf}.
func (h *ProductivityExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	start := time.Now()
	report, err := h.service.Report(r.Context(), day)
	if err != nil {
		observeExport(h.logger, "productivity", h.format, start, err)
		http.Error(w, "query productivity error", http.StatusInternalServerError)
		return
	}

	var (
		data        []byte
		contentType string
	)
	switch h.format {
	case "xlsx":
		contentType = xlsxContentType
		data, err = prodinterfaces.BuildProductivityXLSX(report)
	case "pdf":
		contentType = pdfContentType
		data, err = prodinterfaces.BuildProductivityPDF(report)
	default:
		http.Error(w, "unsupported format", http.StatusNotFound)
		return
	}
	observeExport(h.logger, "productivity", h.format, start, err)
	if err != nil {
		http.Error(w, "export productivity error", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, contentType, prodinterfaces.ExportFilename(report, h.format), data)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
