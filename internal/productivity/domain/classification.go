package productivity

// Classification is the performance tier of a rendered value. The string
// values double as CSS class names in the dashboard.
type Classification string

const (
	// Unclassified is used for cells that carry no tier, such as grand totals.
	Unclassified    Classification = ""
	NoValue         Classification = "no-value"
	AboveAverage    Classification = "above-average"
	BelowAverage    Classification = "below-average"
	WayBelowAverage Classification = "way-below-average"
)

const (
	// WayBelowRatio places the lower tier boundary at half the group average.
	WayBelowRatio = 0.5
	// RowTotalAboveRatio is the share of the expected row total needed for above-average.
	RowTotalAboveRatio = 0.8
	// RowTotalWayBelowRatio is the share of the expected row total below which a row is way-below-average.
	RowTotalWayBelowRatio = 0.5
)

// tier is the shared four-step rule: zero, at or above upper, at or above lower, below lower.
func tier(value float64, upper, lower float64) Classification {
	switch {
	case value == 0:
		return NoValue
	case value >= upper:
		return AboveAverage
	case value >= lower:
		return BelowAverage
	default:
		return WayBelowAverage
	}
}

// ClassifyCell tiers a single station/slot count against its group.
func ClassifyCell(count int, average, threshold50 float64) Classification {
	return tier(float64(count), average, threshold50)
}

// ClassifyRowTotal tiers a station's day total against the total expected
// from its group average over activeSlots slots. Without active slots there
// is no expectation, so a non-zero total is left unclassified.
func ClassifyRowTotal(rowTotal int, average float64, activeSlots int) Classification {
	if activeSlots <= 0 {
		if rowTotal == 0 {
			return NoValue
		}
		return Unclassified
	}
	expected := average * float64(activeSlots)
	return tier(float64(rowTotal), expected*RowTotalAboveRatio, expected*RowTotalWayBelowRatio)
}

// ClassifyManualSubtotal tiers a slot's manual subtotal by the per-station
// share of it, compared with the manual group average.
func ClassifyManualSubtotal(manualSlotTotal int, manualAverage, manualThreshold50 float64) Classification {
	slotAverage := float64(manualSlotTotal) / float64(len(ManualStations))
	return tier(slotAverage, manualAverage, manualThreshold50)
}
