package excel

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/extrame/xls"
)

// maxLegacyColumns is the BIFF8 column limit, used when a row has no ROW record.
const maxLegacyColumns = 256

// ReadLegacySheet reads a BIFF (Excel 97-2003) workbook the same way
// ReadSheet reads an OOXML one. The decoder panics on some corrupt
// inputs, so panics are reported as errors.
func (r *SpreadsheetReader) ReadLegacySheet(data []byte) (sheetData *SheetData, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			sheetData, err = nil, fmt.Errorf("corrupt workbook: %v", rec)
		}
	}()

	startTime := time.Now()
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("failed to open workbook: no Workbook stream")
	}

	sheets := make([]*xls.WorkSheet, 0, wb.NumSheets())
	names := make([]string, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		if sheet := wb.GetSheet(i); sheet != nil {
			sheets = append(sheets, sheet)
			names = append(names, sheet.Name)
		}
	}
	idx, err := r.sheetIndex(names)
	if err != nil {
		return nil, err
	}
	sheet := sheets[idx]

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		rows = append(rows, legacyRowCells(legacyRow(sheet, i)))
	}
	r.logger.Debug("[SpreadsheetReader] legacy sheet %q read in %.2fms (%d rows)",
		sheet.Name, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return buildSheetData(sheet.Name, rows), nil
}

// legacyRow returns nil for row numbers the sheet has no cells for.
func legacyRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func legacyRowCells(row *xls.Row) []string {
	if row == nil {
		return nil
	}
	last := row.LastCol()
	if last <= row.FirstCol() {
		last = maxLegacyColumns
	}

	cells := make([]string, last)
	width := 0
	for i := 0; i < last; i++ {
		cells[i] = row.Col(i)
		if strings.TrimSpace(cells[i]) != "" {
			width = i + 1
		}
	}
	return cells[:width]
}
