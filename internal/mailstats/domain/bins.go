package mailstats

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// WeightPlaces is the number of decimals weights are rounded to.
const WeightPlaces = 2

// BinTotal is the item count and weight sorted into one output BIN.
type BinTotal struct {
	Name   string
	Bin    int
	Count  int
	Weight decimal.Decimal
}

// RoundedWeight returns the weight rounded to WeightPlaces.
func (b BinTotal) RoundedWeight() decimal.Decimal { return b.Weight.Round(WeightPlaces) }

// AverageWeight returns the mean item weight, false when the BIN is empty.
func (b BinTotal) AverageWeight() (decimal.Decimal, bool) {
	if b.Count <= 0 {
		return decimal.Zero, false
	}
	return b.Weight.Div(decimal.NewFromInt(int64(b.Count))).Round(WeightPlaces), true
}

// FormatAverageWeight renders the mean weight with its unit, "-" when the BIN is empty.
func (b BinTotal) FormatAverageWeight(unit string) string {
	avg, ok := b.AverageWeight()
	if !ok {
		return "-"
	}
	if unit == "" {
		return avg.String()
	}
	return avg.String() + " " + unit
}

// TotalsReport is the totals table with its footer.
type TotalsReport struct {
	Rows   []BinTotal
	Count  int
	Weight decimal.Decimal
}

// NewTotalsReport sums rows into the footer.
func NewTotalsReport(rows []BinTotal) TotalsReport {
	report := TotalsReport{Rows: rows, Weight: decimal.Zero}
	for _, row := range rows {
		report.Count += row.Count
		report.Weight = report.Weight.Add(row.Weight)
	}
	return report
}

// RoundedWeight returns the footer weight rounded to WeightPlaces.
func (r TotalsReport) RoundedWeight() decimal.Decimal { return r.Weight.Round(WeightPlaces) }

// Lookup holds the BIN tables of the facility.
type Lookup struct {
	// TotalsName labels every row of the totals table.
	TotalsName string
	TotalsBins []int
	Carriers   map[int]string
	WeightUnit string
}

// DefaultLookup returns the facility defaults: BIN 3 and 6 go to PostNL,
// 1 Falkpost, 2 BP, 4 Intrapost.
func DefaultLookup() Lookup {
	return Lookup{
		TotalsName: "PostNL",
		TotalsBins: []int{3, 6},
		Carriers: map[int]string{
			1: "Falkpost",
			2: "BP",
			4: "Intrapost",
		},
		WeightUnit: "g",
	}
}

// Validate checks the tables for unusable entries.
func (l Lookup) Validate() error {
	if l.TotalsName == "" {
		return ErrEmptyCarrierName
	}
	if len(l.TotalsBins) == 0 || len(l.Carriers) == 0 {
		return ErrNoBins
	}
	for _, bin := range l.TotalsBins {
		if bin <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidBin, bin)
		}
	}
	for bin, name := range l.Carriers {
		if bin <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidBin, bin)
		}
		if name == "" {
			return fmt.Errorf("%w: bin %d", ErrEmptyCarrierName, bin)
		}
	}
	return nil
}

// CarrierBins returns the carrier BINs in ascending order.
func (l Lookup) CarrierBins() []int {
	bins := make([]int, 0, len(l.Carriers))
	for bin := range l.Carriers {
		bins = append(bins, bin)
	}
	sort.Ints(bins)
	return bins
}

// CarrierName returns the configured carrier for bin.
func (l Lookup) CarrierName(bin int) string { return l.Carriers[bin] }

// FillBins names each row, adds a zero row for every BIN in bins that has
// no data, and sorts by BIN. Rows for BINs outside bins are dropped.
func FillBins(rows []BinTotal, bins []int, name func(bin int) string) []BinTotal {
	byBin := make(map[int]BinTotal, len(rows))
	for _, row := range rows {
		byBin[row.Bin] = row
	}
	result := make([]BinTotal, 0, len(bins))
	seen := make(map[int]bool, len(bins))
	for _, bin := range bins {
		if seen[bin] {
			continue
		}
		seen[bin] = true
		row, ok := byBin[bin]
		if !ok {
			row = BinTotal{Bin: bin, Weight: decimal.Zero}
		}
		row.Name = name(bin)
		result = append(result, row)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Bin < result[j].Bin })
	return result
}
