package interfaces

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	mailstats "mailsort-dashboard/internal/mailstats/domain"
)

const prealertSheet = "voormelding"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PrealertFilename returns the download name of the pre-alert of day.
func PrealertFilename(day time.Time, ext string) string {
	return fmt.Sprintf("voormelding_businesspost_%s.%s", day.Format("2006-01-02"), ext)
}

// WritePrealertCSV writes the pre-alert as a semicolon separated file with a
// UTF-8 byte order mark so spreadsheet tools pick up the encoding.
func WritePrealertCSV(w io.Writer, rows []mailstats.PrealertRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	if err := writer.Write(mailstats.PrealertHeader); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// BuildPrealertXLSX renders the pre-alert as a workbook.
func BuildPrealertXLSX(day time.Time, rows []mailstats.PrealertRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", prealertSheet); err != nil {
		return nil, err
	}
	boldID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	for i, title := range mailstats.PrealertHeader {
		_ = f.SetCellValue(prealertSheet, cell(i+1, 1), title)
	}
	_ = f.SetCellStyle(prealertSheet, cell(1, 1), cell(len(mailstats.PrealertHeader), 1), boldID)

	for i, row := range rows {
		r := i + 2
		_ = f.SetCellValue(prealertSheet, cell(1, r), row.SenderID)
		_ = f.SetCellValue(prealertSheet, cell(2, r), row.Receiver)
		_ = f.SetCellValue(prealertSheet, cell(3, r), row.ItemCount)
		_ = f.SetCellValue(prealertSheet, cell(4, r), row.MailboxCount)
		_ = f.SetCellValue(prealertSheet, cell(5, r), row.Remarks)
	}
	_ = f.SetColWidth(prealertSheet, "A", "E", 22)
	_ = f.SetDocProps(&excelize.DocProperties{
		Title:   "Voormelding BusinessPost " + day.Format("2006-01-02"),
		Creator: "mailsort-dashboard",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
