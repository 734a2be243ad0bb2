package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	apihttp "mailsort-dashboard/internal/api/http"
	mailapp "mailsort-dashboard/internal/mailstats/application"
	mailrepo "mailsort-dashboard/internal/mailstats/infrastructure/postgres"
	"mailsort-dashboard/internal/observability/metrics"
	prodapp "mailsort-dashboard/internal/productivity/application"
	prodpostgres "mailsort-dashboard/internal/productivity/infrastructure/postgres"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatalf("timezone %q error: %v", cfg.Timezone, err)
	}

	lookup, err := mailapp.LoadLookup(cfg.LookupConfig)
	if err != nil {
		logger.Fatalf("lookup config error: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)

	statsService, err := mailapp.NewService(mailrepo.NewRepository(db), lookup, logger)
	if err != nil {
		logger.Fatalf("mailstats service error: %v", err)
	}
	prodService, err := prodapp.NewService(prodpostgres.NewEventSource(db), logger)
	if err != nil {
		logger.Fatalf("productivity service error: %v", err)
	}

	days := apihttp.NewDayResolver(loc, systemClock{})

	mux := http.NewServeMux()
	mux.Handle("/", apihttp.NewDashboardHandler(statsService, prodService, days, lookup.WeightUnit, cfg.Refresh, logger))
	mux.Handle("/api/v1/totals", apihttp.NewTotalsHandler(statsService, days, lookup.WeightUnit))
	mux.Handle("/api/v1/carriers", apihttp.NewCarriersHandler(statsService, days, lookup.WeightUnit))
	mux.Handle("/api/v1/bp-detail", apihttp.NewBPDetailHandler(statsService, days))
	mux.Handle("/api/v1/productivity", apihttp.NewProductivityHandler(prodService, days))
	mux.Handle("/api/v1/exports/bp-prealert.csv", apihttp.NewPrealertExportHandler(statsService, days, "csv", logger))
	mux.Handle("/api/v1/exports/bp-prealert.xlsx", apihttp.NewPrealertExportHandler(statsService, days, "xlsx", logger))
	mux.Handle("/api/v1/exports/productivity.xlsx", apihttp.NewProductivityExportHandler(prodService, days, "xlsx", logger))
	mux.Handle("/api/v1/exports/productivity.pdf", apihttp.NewProductivityExportHandler(prodService, days, "pdf", logger))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	if cfg.RequestTimeout > 0 {
		handler = http.TimeoutHandler(mux, cfg.RequestTimeout, "request timeout")
	}
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           loggingMiddleware(handler, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Printf("http listening on %s (timezone %s, refresh %s)", cfg.HTTPAddr, loc, cfg.Refresh)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL    string
	HTTPAddr       string
	Timezone       string
	Refresh        time.Duration
	RequestTimeout time.Duration
	LookupConfig   string
	MaxOpenConns   int
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:    getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:       getenvDefault("HTTP_ADDR", ":8080"),
		Timezone:       getenvDefault("DASHBOARD_TIMEZONE", "Europe/Amsterdam"),
		Refresh:        getenvDuration("DASHBOARD_REFRESH", 60*time.Second),
		RequestTimeout: getenvDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second),
		LookupConfig:   getenvDefault("LOOKUP_CONFIG", ""),
		MaxOpenConns:   getenvIntDefault("DB_MAX_OPEN_CONNS", 10),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
