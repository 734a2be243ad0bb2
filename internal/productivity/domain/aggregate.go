package productivity

// GroupAverage is the average count of a station group's non-zero cells.
type GroupAverage struct {
	Total        int
	NonZeroCells int
	Average      float64
	Threshold50  float64
}

func newGroupAverage(total, nonZeroCells int) GroupAverage {
	avg := GroupAverage{Total: total, NonZeroCells: nonZeroCells}
	if nonZeroCells > 0 {
		avg.Average = float64(total) / float64(nonZeroCells)
	}
	avg.Threshold50 = avg.Average * WayBelowRatio
	return avg
}

// Result is the aggregated productivity of one day. Slices indexed by slot
// position are aligned with ActiveSlots. A Result is built once by Aggregate
// and must be treated as read-only.
type Result struct {
	ActiveSlots []TimeSlot

	// PerStationPerSlot[station][i] is the count for ActiveSlots[i].
	PerStationPerSlot [NumStations][]int

	Machine GroupAverage
	Manual  GroupAverage

	PerStationTotal  [NumStations]int
	ManualSlotTotals []int
	ManualGrandTotal int
	SlotGrandTotals  []int
	GrandTotal       int

	CellClassification       [NumStations][]Classification
	RowTotalClassification   [NumStations]Classification
	ManualSlotClassification []Classification
}

// Empty reports whether the day had no activity at all.
func (r Result) Empty() bool { return len(r.ActiveSlots) == 0 }

// GroupAverageOf returns the average that applies to the station.
func (r Result) GroupAverageOf(station StationID) GroupAverage {
	if station.IsMachine() {
		return r.Machine
	}
	return r.Manual
}

// SlotIndex returns the position of slot in ActiveSlots.
func (r Result) SlotIndex(slot TimeSlot) (int, bool) {
	for i, active := range r.ActiveSlots {
		if active == slot {
			return i, true
		}
	}
	return 0, false
}

// Count returns the count for station in slot, 0 when the slot is inactive.
func (r Result) Count(station StationID, slot TimeSlot) int {
	if !station.IsValid() {
		return 0
	}
	i, ok := r.SlotIndex(slot)
	if !ok {
		return 0
	}
	return r.PerStationPerSlot[station][i]
}

// Summarize buckets the events and aggregates the resulting matrix.
func Summarize(events []RawEvent) (Result, BucketStats) {
	matrix, stats := Bucket(events)
	return Aggregate(&matrix, matrix.ActiveSlots()), stats
}

// Aggregate computes group averages, classifications and roll-ups over
// activeSlots. With no active slots it returns the empty Result.
func Aggregate(matrix *CountMatrix, activeSlots []TimeSlot) Result {
	if matrix == nil || len(activeSlots) == 0 {
		return Result{}
	}

	slots := make([]TimeSlot, len(activeSlots))
	copy(slots, activeSlots)
	n := len(slots)

	result := Result{
		ActiveSlots:              slots,
		ManualSlotTotals:         make([]int, n),
		SlotGrandTotals:          make([]int, n),
		ManualSlotClassification: make([]Classification, n),
	}

	var machineTotal, machineCells, manualTotal, manualCells int
	for _, station := range Stations {
		row := make([]int, n)
		for i, slot := range slots {
			count := matrix.Count(station, slot)
			row[i] = count
			result.PerStationTotal[station] += count
			result.SlotGrandTotals[i] += count
			if !station.IsMachine() {
				result.ManualSlotTotals[i] += count
			}
			if count <= 0 {
				continue
			}
			if station.IsMachine() {
				machineTotal += count
				machineCells++
			} else {
				manualTotal += count
				manualCells++
			}
		}
		result.PerStationPerSlot[station] = row
	}

	result.Machine = newGroupAverage(machineTotal, machineCells)
	result.Manual = newGroupAverage(manualTotal, manualCells)

	for i := range slots {
		result.ManualGrandTotal += result.ManualSlotTotals[i]
		result.GrandTotal += result.SlotGrandTotals[i]
		result.ManualSlotClassification[i] = ClassifyManualSubtotal(
			result.ManualSlotTotals[i], result.Manual.Average, result.Manual.Threshold50)
	}

	for _, station := range Stations {
		avg := result.GroupAverageOf(station)
		classes := make([]Classification, n)
		for i, count := range result.PerStationPerSlot[station] {
			classes[i] = ClassifyCell(count, avg.Average, avg.Threshold50)
		}
		result.CellClassification[station] = classes
		result.RowTotalClassification[station] = ClassifyRowTotal(result.PerStationTotal[station], avg.Average, n)
	}

	return result
}
