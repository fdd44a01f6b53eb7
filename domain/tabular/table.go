// Package tabular holds the in-memory data model shared by the ingestion,
// profiling, advice and series-building stages.
package tabular

// Format identifies the source encoding of an uploaded file.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
	FormatXLS   Format = "xls"
	FormatJSON  Format = "json"
	FormatUnset Format = ""
)

// IsSpreadsheet reports whether the format is decoded by the spreadsheet reader.
func (f Format) IsSpreadsheet() bool {
	return f == FormatXLSX || f == FormatXLS
}

// Record is one source row keyed by column name. Values are nil, string,
// float64, bool, []any, or map[string]any for objects nested past the
// flattening depth.
type Record map[string]any

// Table is the normalized output of the parser.
type Table struct {
	Format  Format   `json:"format"`
	Columns []string `json:"columns"` // union of record keys in first-seen order
	Records []Record `json:"records"`
}

// NewTable creates a table, deriving the column order from the records when
// columns is nil.
func NewTable(format Format, columns []string, records []Record) *Table {
	if columns == nil {
		columns = ColumnUnion(records)
	}
	return &Table{
		Format:  format,
		Columns: columns,
		Records: records,
	}
}

// RowCount returns the number of records.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnUnion returns every key across records, ordered by first appearance.
// Keys of a single record are visited in sorted order because maps carry no order.
func ColumnUnion(records []Record) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, rec := range records {
		for _, key := range sortedKeys(rec) {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns
}
