package productivity

import "math"

// RowKind tells the renderer which kind of row it is drawing.
type RowKind string

const (
	RowStation        RowKind = "station"
	RowManualSubtotal RowKind = "subtotal"
	RowGrandTotal     RowKind = "total"
)

// ManualSubtotalLabel and GrandTotalLabel are the labels of the roll-up rows.
const (
	ManualSubtotalLabel = "Totaal Handmatig (1-5)"
	GrandTotalLabel     = "Totaal Alles"
)

// GridCell is one rendered value with its tier.
type GridCell struct {
	Value int            `json:"value"`
	Class Classification `json:"class"`
}

// GridRow is one table row: label, one cell per active slot, and a total.
type GridRow struct {
	Label string     `json:"label"`
	Kind  RowKind    `json:"kind"`
	Cells []GridCell `json:"cells"`
	Total GridCell   `json:"total"`
}

// LegendBand holds the rounded tier boundaries of one group.
type LegendBand struct {
	Average     int `json:"average"`
	Threshold50 int `json:"threshold50"`
}

// Legend explains the color tiers for both groups.
type Legend struct {
	Machine LegendBand `json:"machine"`
	Manual  LegendBand `json:"manual"`
}

// Grid is the renderable form of a Result.
type Grid struct {
	Header         []string  `json:"header"`
	Stations       []GridRow `json:"stations"`
	ManualSubtotal GridRow   `json:"manual_subtotal"`
	GrandTotal     GridRow   `json:"grand_total"`
	Legend         Legend    `json:"legend"`
}

// Empty reports whether there is nothing to draw.
func (g Grid) Empty() bool { return len(g.Header) == 0 }

// Rows returns station rows followed by the two roll-up rows.
func (g Grid) Rows() []GridRow {
	if g.Empty() {
		return nil
	}
	rows := make([]GridRow, 0, len(g.Stations)+2)
	rows = append(rows, g.Stations...)
	return append(rows, g.ManualSubtotal, g.GrandTotal)
}

// BuildGrid maps a Result onto rows and cells. An empty Result gives an empty Grid.
func BuildGrid(result Result) Grid {
	if result.Empty() {
		return Grid{}
	}

	grid := Grid{
		Header: make([]string, len(result.ActiveSlots)),
		Legend: Legend{
			Machine: legendBand(result.Machine),
			Manual:  legendBand(result.Manual),
		},
	}
	for i, slot := range result.ActiveSlots {
		grid.Header[i] = slot.String()
	}

	grid.Stations = make([]GridRow, 0, NumStations)
	for _, station := range Stations {
		row := GridRow{
			Label: station.Label(),
			Kind:  RowStation,
			Cells: make([]GridCell, len(result.ActiveSlots)),
			Total: GridCell{
				Value: result.PerStationTotal[station],
				Class: result.RowTotalClassification[station],
			},
		}
		for i, count := range result.PerStationPerSlot[station] {
			row.Cells[i] = GridCell{Value: count, Class: result.CellClassification[station][i]}
		}
		grid.Stations = append(grid.Stations, row)
	}

	grid.ManualSubtotal = GridRow{
		Label: ManualSubtotalLabel,
		Kind:  RowManualSubtotal,
		Cells: make([]GridCell, len(result.ActiveSlots)),
		Total: GridCell{Value: result.ManualGrandTotal},
	}
	grid.GrandTotal = GridRow{
		Label: GrandTotalLabel,
		Kind:  RowGrandTotal,
		Cells: make([]GridCell, len(result.ActiveSlots)),
		Total: GridCell{Value: result.GrandTotal},
	}
	for i := range result.ActiveSlots {
		grid.ManualSubtotal.Cells[i] = GridCell{
			Value: result.ManualSlotTotals[i],
			Class: result.ManualSlotClassification[i],
		}
		grid.GrandTotal.Cells[i] = GridCell{Value: result.SlotGrandTotals[i]}
	}
	return grid
}

func legendBand(avg GroupAverage) LegendBand {
	return LegendBand{
		Average:     int(math.Round(avg.Average)),
		Threshold50: int(math.Round(avg.Threshold50)),
	}
}
