package tabular

import (
	"strconv"
	"strings"
)

// NormalizeHeaders trims header cells, names blank ones column_N (1-based) and
// suffixes repeats with _1, _2, ... so every column key is unique.
// The result always has width entries.
func NormalizeHeaders(headerRow []string, width int) []string {
	if width < len(headerRow) {
		width = len(headerRow)
	}
	headers := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(headerRow) {
			name = strings.TrimSpace(headerRow[i])
		}
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		headers[i] = name
	}
	return headers
}
