package ingest

import (
	"bytes"

	"sheetviz/adapters/excel"
	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
)

var zipMagic = []byte("PK\x03\x04")

// parseSpreadsheet reads one sheet. Missing cells become nil so every record
// carries every header key. An .xls name holding an OOXML package is read as xlsx.
func (p *Parser) parseSpreadsheet(data []byte, format tabular.Format) (*tabular.Table, error) {
	var (
		sheet *excel.SheetData
		err   error
	)
	if format == tabular.FormatXLS && !bytes.HasPrefix(data, zipMagic) {
		sheet, err = p.spreadsheet.ReadLegacySheet(data)
	} else {
		sheet, err = p.spreadsheet.ReadSheet(data)
	}
	if err != nil {
		return nil, core.NewParseError(string(format), err)
	}
	if len(sheet.Headers) == 0 {
		return nil, core.ErrEmptyFile
	}

	records := make([]tabular.Record, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		record := make(tabular.Record, len(sheet.Headers))
		empty := true
		for i, header := range sheet.Headers {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if cell == "" {
				record[header] = nil
				continue
			}
			empty = false
			record[header] = tabular.CoerceCell(cell)
		}
		if empty {
			continue
		}
		records = append(records, record)
	}

	return tabular.NewTable(format, sheet.Headers, records), nil
}
