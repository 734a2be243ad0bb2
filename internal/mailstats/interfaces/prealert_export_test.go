package interfaces

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	mailstats "mailsort-dashboard/internal/mailstats/domain"
)

var prealertDay = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

func sampleRows() []mailstats.PrealertRow {
	return []mailstats.PrealertRow{
		{SenderID: "PA-100", Receiver: "Almere", ItemCount: 3},
		{SenderID: "PA-200", Receiver: "Utrecht; Centrum", ItemCount: 12},
	}
}

func TestWritePrealertCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePrealertCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	data := buf.Bytes()
	if !bytes.HasPrefix(data, utf8BOM) {
		t.Fatalf("missing byte order mark")
	}
	lines := strings.Split(strings.TrimSpace(string(data[len(utf8BOM):])), "\n")
	want := []string{
		"Verzender ID;Ontvanger;Aantal poststukken;Aantal postbussen;Opmerkingen",
		"PA-100;Almere;3;;",
		`PA-200;"Utrecht; Centrum";12;;`,
	}
	if len(lines) != len(want) {
		t.Fatalf("line count: got=%d want=%d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: got=%q want=%q", i, lines[i], want[i])
		}
	}
}

func TestBuildPrealertXLSX(t *testing.T) {
	data, err := BuildPrealertXLSX(prealertDay, sampleRows())
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(prealertSheet)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Verzender ID" || rows[2][1] != "Utrecht; Centrum" || rows[2][2] != "12" {
		t.Fatalf("unexpected rows %v", rows)
	}
}

func TestPrealertFilename(t *testing.T) {
	if got := PrealertFilename(prealertDay, "csv"); got != "voormelding_businesspost_2026-10-19.csv" {
		t.Fatalf("unexpected filename %q", got)
	}
}
