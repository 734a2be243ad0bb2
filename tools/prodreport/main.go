package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	prodapp "mailsort-dashboard/internal/productivity/application"
	prodpostgres "mailsort-dashboard/internal/productivity/infrastructure/postgres"
	prodinterfaces "mailsort-dashboard/internal/productivity/interfaces"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type config struct {
	dbURL    string
	date     string
	timezone string
	format   string
	outDir   string
	table    string
	timeout  time.Duration
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	loc, err := time.LoadLocation(cfg.timezone)
	if err != nil {
		fmt.Fprintln(os.Stderr, "timezone:", err)
		os.Exit(2)
	}
	day, err := parseDay(cfg.date, loc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	db, err := sql.Open("pgx", cfg.dbURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "db open:", err)
		os.Exit(2)
	}
	defer db.Close()

	service, err := prodapp.NewService(prodpostgres.NewEventSource(db, prodpostgres.WithLettersTable(cfg.table)), nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "service:", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()
	report, err := service.Report(ctx, day)
	if err != nil {
		fmt.Fprintln(os.Stderr, "report:", err)
		os.Exit(1)
	}

	switch cfg.format {
	case "table":
		fmt.Print(prodinterfaces.RenderTerminal(report))
		if report.Dropped > 0 {
			fmt.Printf("%d events without a valid timestamp skipped\n", report.Dropped)
		}
		return
	case "xlsx", "pdf":
		path, err := writeExport(cfg.outDir, cfg.format, report)
		if err != nil {
			fmt.Fprintln(os.Stderr, "write export:", err)
			os.Exit(1)
		}
		fmt.Println("export written:", path)
	}
}

func parseFlags() (config, error) {
	var cfg config
	flag.StringVar(&cfg.dbURL, "db", getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")), "Postgres DSN")
	flag.StringVar(&cfg.date, "date", "", "day in YYYY-MM-DD (default today)")
	flag.StringVar(&cfg.timezone, "tz", getenvDefault("DASHBOARD_TIMEZONE", "Europe/Amsterdam"), "facility timezone")
	flag.StringVar(&cfg.format, "format", "table", "output format: table, xlsx or pdf")
	flag.StringVar(&cfg.outDir, "out", "./out", "output directory for xlsx/pdf")
	flag.StringVar(&cfg.table, "table", "letters", "letters table name")
	flag.DurationVar(&cfg.timeout, "timeout", time.Minute, "query timeout")
	flag.Parse()

	if cfg.dbURL == "" {
		return cfg, errors.New("missing --db or DATABASE_URL/PG_DSN")
	}
	switch cfg.format {
	case "table", "xlsx", "pdf":
	default:
		return cfg, fmt.Errorf("unsupported --format %q (table, xlsx, pdf)", cfg.format)
	}
	return cfg, nil
}

func parseDay(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	day, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, errors.New("invalid --date (YYYY-MM-DD)")
	}
	return day, nil
}

func writeExport(outDir, format string, report prodapp.Report) (string, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case "xlsx":
		data, err = prodinterfaces.BuildProductivityXLSX(report)
	case "pdf":
		data, err = prodinterfaces.BuildProductivityPDF(report)
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, prodinterfaces.ExportFilename(report, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
