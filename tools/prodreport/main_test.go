package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prodapp "mailsort-dashboard/internal/productivity/application"
)

func TestParseDay(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	day, err := parseDay("2026-10-19", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := time.Date(2026, time.October, 19, 0, 0, 0, 0, loc); !day.Equal(want) {
		t.Fatalf("day: got=%v want=%v", day, want)
	}
	if _, err := parseDay("2026/10/19", loc); err == nil {
		t.Fatalf("expected error for malformed date")
	}
	today, err := parseDay("", loc)
	if err != nil || today.Hour() != 0 || today.Location() != loc {
		t.Fatalf("default day: got=%v err=%v", today, err)
	}
}

func TestWriteExport(t *testing.T) {
	dir := t.TempDir()
	report := prodapp.Report{Day: time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)}
	path, err := writeExport(dir, "xlsx", report)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != "productiviteit_2026-10-19.xlsx" {
		t.Fatalf("unexpected path %s", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("export not written: %v", err)
	}
	if _, err := writeExport(dir, "csv", report); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
