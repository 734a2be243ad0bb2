package mailstats

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestBPCode(t *testing.T) {
	cases := []struct {
		job, output int
		want        string
	}{
		{job: 5, output: 4, want: "BP0504"},
		{job: 12, output: 1, want: "BP1201"},
		{job: 0, output: 0, want: "BP0000"},
	}
	for _, tc := range cases {
		if got := BPCode(tc.job, tc.output); got != tc.want {
			t.Fatalf("BPCode(%d, %d): got=%s want=%s", tc.job, tc.output, got, tc.want)
		}
	}
}

func TestFillBins(t *testing.T) {
	lookup := DefaultLookup()
	rows := []BinTotal{
		{Bin: 4, Count: 3, Weight: decimal.RequireFromString("45.5")},
		{Bin: 9, Count: 1, Weight: decimal.NewFromInt(10)},
	}
	got := FillBins(rows, lookup.CarrierBins(), lookup.CarrierName)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	wantBins := []int{1, 2, 4}
	wantNames := []string{"Falkpost", "BP", "Intrapost"}
	for i, row := range got {
		if row.Bin != wantBins[i] {
			t.Fatalf("row %d bin: got=%d want=%d", i, row.Bin, wantBins[i])
		}
		if row.Name != wantNames[i] {
			t.Fatalf("row %d name: got=%s want=%s", i, row.Name, wantNames[i])
		}
	}
	if got[0].Count != 0 || !got[0].Weight.IsZero() {
		t.Fatalf("missing bin should be zero-filled, got %+v", got[0])
	}
	if got[2].Count != 3 {
		t.Fatalf("intrapost count: got=%d want=3", got[2].Count)
	}
}

func TestAverageWeight(t *testing.T) {
	row := BinTotal{Bin: 3, Count: 3, Weight: decimal.RequireFromString("100")}
	if got := row.FormatAverageWeight("g"); got != "33.33 g" {
		t.Fatalf("average: got=%q", got)
	}
	row = BinTotal{Bin: 3, Count: 4, Weight: decimal.RequireFromString("50")}
	if got := row.FormatAverageWeight("g"); got != "12.5 g" {
		t.Fatalf("average: got=%q", got)
	}
	empty := BinTotal{Bin: 6}
	if got := empty.FormatAverageWeight("g"); got != "-" {
		t.Fatalf("empty bin average: got=%q", got)
	}
}

func TestNewTotalsReport(t *testing.T) {
	report := NewTotalsReport([]BinTotal{
		{Bin: 3, Count: 10, Weight: decimal.RequireFromString("120.125")},
		{Bin: 6, Count: 5, Weight: decimal.RequireFromString("30.5")},
	})
	if report.Count != 15 {
		t.Fatalf("count: got=%d want=15", report.Count)
	}
	if got := report.RoundedWeight().String(); got != "150.63" {
		t.Fatalf("weight: got=%s want=150.63", got)
	}
}

func TestLookupValidate(t *testing.T) {
	if err := DefaultLookup().Validate(); err != nil {
		t.Fatalf("default lookup invalid: %v", err)
	}
	bad := DefaultLookup()
	bad.Carriers = map[int]string{0: "Nobody"}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidBin) {
		t.Fatalf("expected ErrInvalidBin, got %v", err)
	}
	bad = DefaultLookup()
	bad.Carriers = map[int]string{7: ""}
	if err := bad.Validate(); !errors.Is(err, ErrEmptyCarrierName) {
		t.Fatalf("expected ErrEmptyCarrierName, got %v", err)
	}
}

func TestJoinBPDetailAndPrealert(t *testing.T) {
	routes := []BusinessRoute{
		{Job: 5, Output: 4, Location: "Utrecht", PrealertCode: "PA-200"},
		{Job: 1, Output: 2, Location: "Almere", PrealertCode: "PA-100"},
		{Job: 7, Output: 1, Location: "Zwolle", PrealertCode: "PA-050"},
	}
	tallies := map[string]LetterTally{
		"BP0504": {Count: 12, Weight: decimal.RequireFromString("240.456")},
		"BP0102": {Count: 3, Weight: decimal.RequireFromString("60")},
		"BP9999": {Count: 1, Weight: decimal.NewFromInt(1)},
	}
	details := JoinBPDetail(routes, tallies)
	if len(details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(details))
	}
	if details[0].BPCode != "BP0102" || details[1].BPCode != "BP0504" {
		t.Fatalf("unexpected order %v", details)
	}
	if got := details[1].Weight.String(); got != "240.46" {
		t.Fatalf("weight not rounded: %s", got)
	}

	rows := Prealert(details)
	want := [][]string{
		{"PA-100", "Almere", "3", "", ""},
		{"PA-200", "Utrecht", "12", "", ""},
	}
	for i, row := range rows {
		if !reflect.DeepEqual(row.Record(), want[i]) {
			t.Fatalf("row %d: got=%v want=%v", i, row.Record(), want[i])
		}
	}
}
