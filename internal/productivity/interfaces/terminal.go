package interfaces

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mailsort-dashboard/internal/productivity/application"
	productivity "mailsort-dashboard/internal/productivity/domain"
)

const (
	labelWidth = 24
	cellWidth  = 6
)

var (
	terminalTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	terminalLabel = lipgloss.NewStyle().Width(labelWidth)
	terminalCell  = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	terminalDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	terminalClass = map[productivity.Classification]lipgloss.Style{
		productivity.AboveAverage:    terminalCell.Background(lipgloss.Color("#2E7D32")).Foreground(lipgloss.Color("#FFFFFF")),
		productivity.BelowAverage:    terminalCell.Background(lipgloss.Color("#EF6C00")).Foreground(lipgloss.Color("#000000")),
		productivity.WayBelowAverage: terminalCell.Background(lipgloss.Color("#C62828")).Foreground(lipgloss.Color("#FFFFFF")),
	}
)

// RenderTerminal draws the productivity grid as a color-coded text table.
func RenderTerminal(report application.Report) string {
	var b strings.Builder
	b.WriteString(terminalTitle.Render("Productiviteit per station " + report.Day.Format("02/01/2006")))
	b.WriteString("\n\n")

	grid := report.Grid
	if grid.Empty() {
		b.WriteString("Geen productiviteit data voor deze datum\n")
		return b.String()
	}

	header := []string{terminalLabel.Render("Station")}
	for _, label := range grid.Header {
		header = append(header, terminalCell.Render(label))
	}
	header = append(header, terminalCell.Render("Totaal"))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, row := range grid.Rows() {
		line := []string{terminalLabel.Render(row.Label)}
		for _, c := range row.Cells {
			line = append(line, renderTerminalCell(c))
		}
		line = append(line, renderTerminalCell(row.Total))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
		b.WriteString("\n")
	}

	legend := grid.Legend
	b.WriteString("\n")
	b.WriteString(terminalDim.Render(
		"Machine: >=" + strconv.Itoa(legend.Machine.Average) +
			"  " + strconv.Itoa(legend.Machine.Threshold50) + "-" + strconv.Itoa(legend.Machine.Average) +
			"  <" + strconv.Itoa(legend.Machine.Threshold50)))
	b.WriteString("\n")
	b.WriteString(terminalDim.Render(
		"Handmatig: >=" + strconv.Itoa(legend.Manual.Average) +
			"  " + strconv.Itoa(legend.Manual.Threshold50) + "-" + strconv.Itoa(legend.Manual.Average) +
			"  <" + strconv.Itoa(legend.Manual.Threshold50)))
	b.WriteString("\n")
	return b.String()
}

func renderTerminalCell(c productivity.GridCell) string {
	style, ok := terminalClass[c.Class]
	if !ok {
		style = terminalCell
	}
	return style.Render(strconv.Itoa(c.Value))
}
