package excel

// SheetData represents the cells of one worksheet as text
type SheetData struct {
	SheetName string     // Worksheet the rows were read from
	Headers   []string   // Column headers, unique and non-blank
	Rows      [][]string // Data rows, each padded to len(Headers); "" marks a missing cell
}
