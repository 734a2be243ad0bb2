package mailstats

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// BPCode builds the BusinessPost code printed on letters, e.g. BP0504 for
// job 5, output 4.
func BPCode(job, output int) string {
	return fmt.Sprintf("BP%02d%02d", job, output)
}

// LetterTally is the count and weight of letters sharing a BP code.
type LetterTally struct {
	Count  int
	Weight decimal.Decimal
}

// BusinessRoute is one row of the business routing table.
type BusinessRoute struct {
	Job          int
	Output       int
	Location     string
	PrealertCode string
}

// BPCode returns the code letters for this route carry.
func (r BusinessRoute) BPCode() string { return BPCode(r.Job, r.Output) }

// BPDetail is a route that received letters on the day.
type BPDetail struct {
	BPCode       string
	Location     string
	PrealertCode string
	Count        int
	Weight       decimal.Decimal
}

// JoinBPDetail matches routes with the day's tallies. Routes without letters
// are left out. Output is ordered by prealert code, job and output.
func JoinBPDetail(routes []BusinessRoute, tallies map[string]LetterTally) []BPDetail {
	ordered := make([]BusinessRoute, len(routes))
	copy(ordered, routes)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.PrealertCode != b.PrealertCode {
			return a.PrealertCode < b.PrealertCode
		}
		if a.Job != b.Job {
			return a.Job < b.Job
		}
		return a.Output < b.Output
	})

	details := make([]BPDetail, 0, len(ordered))
	for _, route := range ordered {
		code := route.BPCode()
		tally, ok := tallies[code]
		if !ok || tally.Count <= 0 {
			continue
		}
		details = append(details, BPDetail{
			BPCode:       code,
			Location:     route.Location,
			PrealertCode: route.PrealertCode,
			Count:        tally.Count,
			Weight:       tally.Weight.Round(WeightPlaces),
		})
	}
	return details
}

// PrealertRow is one line of the BusinessPost pre-alert handed to the customer.
// MailboxCount and Remarks are left blank for the receiver to fill in.
type PrealertRow struct {
	SenderID     string
	Receiver     string
	ItemCount    int
	MailboxCount string
	Remarks      string
}

// PrealertHeader is the column header of the pre-alert export.
var PrealertHeader = []string{"Verzender ID", "Ontvanger", "Aantal poststukken", "Aantal postbussen", "Opmerkingen"}

// Prealert turns BP details into pre-alert rows ordered by prealert code.
func Prealert(details []BPDetail) []PrealertRow {
	rows := make([]PrealertRow, 0, len(details))
	for _, detail := range details {
		rows = append(rows, PrealertRow{
			SenderID:  detail.PrealertCode,
			Receiver:  detail.Location,
			ItemCount: detail.Count,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SenderID < rows[j].SenderID })
	return rows
}

// Record returns the row as export fields in PrealertHeader order.
func (r PrealertRow) Record() []string {
	return []string{r.SenderID, r.Receiver, fmt.Sprintf("%d", r.ItemCount), r.MailboxCount, r.Remarks}
}
