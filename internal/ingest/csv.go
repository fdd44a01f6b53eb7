package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
)

// parseCSV reads a header row followed by data rows. Every row must have the
// header's width; a ragged row fails the whole file.
func parseCSV(data []byte) (*tabular.Table, error) {
	reader := csv.NewReader(bytes.NewReader(stripBOM(data)))
	reader.LazyQuotes = true

	headerRow, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, core.ErrEmptyFile
	}
	if err != nil {
		return nil, core.NewParseError("csv", err)
	}
	reader.FieldsPerRecord = len(headerRow)

	headers := tabular.NormalizeHeaders(headerRow, len(headerRow))
	var records []tabular.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.NewParseError("csv", err)
		}

		record := make(tabular.Record, len(headers))
		empty := true
		for i, header := range headers {
			cell := strings.TrimSpace(row[i])
			if cell != "" {
				empty = false
			}
			record[header] = tabular.CoerceCell(cell)
		}
		if empty {
			continue
		}
		records = append(records, record)
	}

	return tabular.NewTable(tabular.FormatCSV, headers, records), nil
}
