package excel

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"sheetviz/domain/tabular"
	"sheetviz/internal"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetReader decodes workbook bytes into header-keyed text rows
type SpreadsheetReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewSpreadsheetReader creates a new spreadsheet reader
func NewSpreadsheetReader(config ReaderConfig, logger *internal.Logger) *SpreadsheetReader {
	if config.UnzipSizeLimit <= 0 {
		config = DefaultReaderConfig()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SpreadsheetReader{config: config, logger: logger}
}

// ReadSheet reads the configured worksheet (the first one by default).
// Cell values are read raw so numbers keep full precision instead of the
// display format of the cell.
func (r *SpreadsheetReader) ReadSheet(data []byte) (*SheetData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{
		UnzipSizeLimit:    r.config.UnzipSizeLimit,
		UnzipXMLSizeLimit: r.config.UnzipXMLSizeLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName, err := r.resolveSheet(f)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	r.logger.Debug("[SpreadsheetReader] sheet %q read in %.2fms (%d rows)",
		sheetName, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return buildSheetData(sheetName, rows), nil
}

func (r *SpreadsheetReader) resolveSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	idx, err := r.sheetIndex(sheets)
	if err != nil {
		return "", err
	}
	return sheets[idx], nil
}

// sheetIndex picks the configured sheet by name, or the first one.
func (r *SpreadsheetReader) sheetIndex(sheets []string) (int, error) {
	if len(sheets) == 0 {
		return 0, fmt.Errorf("workbook has no sheets")
	}
	if r.config.Sheet == "" {
		return 0, nil
	}
	for i, name := range sheets {
		if name == r.config.Sheet {
			return i, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found (available: %s)", r.config.Sheet, strings.Join(sheets, ", "))
}

// buildSheetData takes the first non-blank row as the header row.
func buildSheetData(sheetName string, rows [][]string) *SheetData {
	headerIdx := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return &SheetData{SheetName: sheetName}
	}

	width := 0
	for _, row := range rows[headerIdx:] {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := tabular.NormalizeHeaders(rows[headerIdx], width)
	dataRows := make([][]string, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		padded := make([]string, width)
		for j, cell := range row {
			padded[j] = strings.TrimSpace(cell)
		}
		dataRows = append(dataRows, padded)
	}

	return &SheetData{
		SheetName: sheetName,
		Headers:   headers,
		Rows:      dataRows,
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
