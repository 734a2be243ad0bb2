package interfaces

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"mailsort-dashboard/internal/productivity/application"
	productivity "mailsort-dashboard/internal/productivity/domain"
)

const (
	productivitySheet = "productiviteit"
	legendSheet       = "legenda"

	// pdfSlotsPerTable keeps slot columns readable on a landscape A4 page.
	pdfSlotsPerTable = 16
)

type rgb struct{ r, g, b int }

var classColors = map[productivity.Classification]rgb{
	productivity.AboveAverage:    {r: 0xC6, g: 0xEF, b: 0xCE},
	productivity.BelowAverage:    {r: 0xFF, g: 0xEB, b: 0x9C},
	productivity.WayBelowAverage: {r: 0xFF, g: 0xC7, b: 0xCE},
}

func (c rgb) hex() string { return fmt.Sprintf("#%02X%02X%02X", c.r, c.g, c.b) }

// ExportFilename returns the download name for a productivity export.
func ExportFilename(report application.Report, ext string) string {
	return fmt.Sprintf("productiviteit_%s.%s", report.Day.Format("2006-01-02"), ext)
}

// BuildProductivityXLSX renders the productivity grid with tier fills.
func BuildProductivityXLSX(report application.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", productivitySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(legendSheet); err != nil {
		return nil, err
	}

	styles := make(map[productivity.Classification]int, len(classColors))
	for class, color := range classColors {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color.hex()}, Pattern: 1},
		})
		if err != nil {
			return nil, err
		}
		styles[class] = id
	}
	boldID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	_ = f.SetCellValue(productivitySheet, "A1", "Productiviteit per station")
	_ = f.SetCellValue(productivitySheet, "B1", report.Day.Format("2006-01-02"))
	if report.Grid.Empty() {
		_ = f.SetCellValue(productivitySheet, "A3", "Geen productiviteit data voor deze datum")
	} else {
		grid := report.Grid
		headerRow := 3
		_ = f.SetCellValue(productivitySheet, cell(1, headerRow), "Station")
		for i, label := range grid.Header {
			_ = f.SetCellValue(productivitySheet, cell(i+2, headerRow), label)
		}
		totalCol := len(grid.Header) + 2
		_ = f.SetCellValue(productivitySheet, cell(totalCol, headerRow), "Totaal")
		_ = f.SetCellStyle(productivitySheet, cell(1, headerRow), cell(totalCol, headerRow), boldID)

		for r, row := range grid.Rows() {
			rowNum := headerRow + 1 + r
			_ = f.SetCellValue(productivitySheet, cell(1, rowNum), row.Label)
			for i, c := range row.Cells {
				name := cell(i+2, rowNum)
				_ = f.SetCellValue(productivitySheet, name, c.Value)
				if id, ok := styles[c.Class]; ok {
					_ = f.SetCellStyle(productivitySheet, name, name, id)
				}
			}
			totalName := cell(totalCol, rowNum)
			_ = f.SetCellValue(productivitySheet, totalName, row.Total.Value)
			if id, ok := styles[row.Total.Class]; ok {
				_ = f.SetCellStyle(productivitySheet, totalName, totalName, id)
			}
		}
		_ = f.SetColWidth(productivitySheet, "A", "A", 24)
	}

	res := report.Result
	_ = f.SetCellValue(legendSheet, "A1", "Groep")
	_ = f.SetCellValue(legendSheet, "B1", "Gemiddelde")
	_ = f.SetCellValue(legendSheet, "C1", "50% drempel")
	_ = f.SetCellValue(legendSheet, "A2", "Machine (Station 0)")
	_ = f.SetCellValue(legendSheet, "B2", res.Machine.Average)
	_ = f.SetCellValue(legendSheet, "C2", res.Machine.Threshold50)
	_ = f.SetCellValue(legendSheet, "A3", "Handmatig (Station 1-5)")
	_ = f.SetCellValue(legendSheet, "B3", res.Manual.Average)
	_ = f.SetCellValue(legendSheet, "C3", res.Manual.Threshold50)
	_ = f.SetCellValue(legendSheet, "A5", "Verwerkt")
	_ = f.SetCellValue(legendSheet, "B5", report.Accepted)
	_ = f.SetCellValue(legendSheet, "A6", "Overgeslagen")
	_ = f.SetCellValue(legendSheet, "B6", report.Dropped)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildProductivityPDF renders the productivity grid on landscape pages,
// splitting wide days into tables of at most pdfSlotsPerTable slots.
func BuildProductivityPDF(report application.Report) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Productiviteit per station (15 min intervallen)")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Datum: %s", report.Day.Format("02/01/2006")))
	pdf.Ln(8)

	grid := report.Grid
	if grid.Empty() {
		pdf.Cell(0, 6, "Geen productiviteit data voor deze datum")
	} else {
		pdf.Cell(0, 6, fmt.Sprintf("Machine: gemiddelde %d, 50%% %d", grid.Legend.Machine.Average, grid.Legend.Machine.Threshold50))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Handmatig: gemiddelde %d, 50%% %d", grid.Legend.Manual.Average, grid.Legend.Manual.Threshold50))
		pdf.Ln(8)

		rows := grid.Rows()
		for from := 0; from < len(grid.Header); from += pdfSlotsPerTable {
			to := from + pdfSlotsPerTable
			if to > len(grid.Header) {
				to = len(grid.Header)
			}
			last := to == len(grid.Header)

			pdf.SetFont("Arial", "B", 8)
			pdf.CellFormat(42, 6, "Station", "1", 0, "L", false, 0, "")
			for _, label := range grid.Header[from:to] {
				pdf.CellFormat(13, 6, label, "1", 0, "C", false, 0, "")
			}
			if last {
				pdf.CellFormat(16, 6, "Totaal", "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)

			pdf.SetFont("Arial", "", 8)
			for _, row := range rows {
				pdf.CellFormat(42, 6, row.Label, "1", 0, "L", false, 0, "")
				for _, c := range row.Cells[from:to] {
					pdfCell(pdf, 13, c)
				}
				if last {
					pdfCell(pdf, 16, row.Total)
				}
				pdf.Ln(-1)
			}
			pdf.Ln(4)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func pdfCell(pdf *gofpdf.Fpdf, width float64, c productivity.GridCell) {
	color, fill := classColors[c.Class]
	if fill {
		pdf.SetFillColor(color.r, color.g, color.b)
	}
	pdf.CellFormat(width, 6, fmt.Sprintf("%d", c.Value), "1", 0, "R", fill, 0, "")
}

func cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "A1"
	}
	return name
}
