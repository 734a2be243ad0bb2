package productivity

import "time"

// RawEvent is one processed mail item as supplied by the event source.
type RawEvent struct {
	Timestamp   time.Time
	StationCode string
}

// Validate checks that the event can be placed in a slot.
func (e RawEvent) Validate() error {
	if e.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	return nil
}

// CountMatrix holds item counts per station and slot for a single day.
// Sum over a station's row equals that station's event count.
type CountMatrix [NumStations][SlotsPerDay]int

// BucketStats describes what happened to the input of Bucket.
type BucketStats struct {
	Accepted int
	Dropped  int
}

// Bucket classifies every event and counts it into its station/slot cell.
// Events with an invalid timestamp are skipped and reported as dropped.
func Bucket(events []RawEvent) (CountMatrix, BucketStats) {
	var matrix CountMatrix
	var stats BucketStats
	for _, event := range events {
		if err := event.Validate(); err != nil {
			stats.Dropped++
			continue
		}
		matrix[ClassifyStation(event.StationCode)][SlotOf(event.Timestamp)]++
		stats.Accepted++
	}
	return matrix, stats
}

// Count returns the cell value, 0 for ids outside the matrix.
func (m *CountMatrix) Count(station StationID, slot TimeSlot) int {
	if !station.IsValid() || !slot.IsValid() {
		return 0
	}
	return m[station][slot]
}

// SlotTotal sums all stations for one slot.
func (m *CountMatrix) SlotTotal(slot TimeSlot) int {
	if !slot.IsValid() {
		return 0
	}
	total := 0
	for _, station := range Stations {
		total += m[station][slot]
	}
	return total
}

// Total sums every cell.
func (m *CountMatrix) Total() int {
	total := 0
	for _, row := range m {
		for _, count := range row {
			total += count
		}
	}
	return total
}

// ActiveSlots returns, in chronological order, the slots whose total across
// all stations is greater than zero.
func (m *CountMatrix) ActiveSlots() []TimeSlot {
	active := make([]TimeSlot, 0, SlotsPerDay)
	for _, slot := range AllSlots() {
		if m.SlotTotal(slot) > 0 {
			active = append(active, slot)
		}
	}
	return active
}
