// Package ingest turns uploaded file bytes into a normalized tabular.Table.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"sheetviz/adapters/excel"
	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
	"sheetviz/internal"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultMaxBytes is the upload ceiling enforced before any decoding.
	DefaultMaxBytes = 5 * 1024 * 1024
	// DefaultMaxFlattenDepth bounds how many object levels JSON flattening descends.
	DefaultMaxFlattenDepth = 10
)

// FileHint carries what the transport knows about an upload.
type FileHint struct {
	Filename string
	MimeType string
}

// Options configures a Parser.
type Options struct {
	MaxBytes        int64
	MaxFlattenDepth int
	Sheet           string // spreadsheet sheet name, first sheet when empty
}

// DefaultOptions returns the standard parser limits.
func DefaultOptions() Options {
	return Options{
		MaxBytes:        DefaultMaxBytes,
		MaxFlattenDepth: DefaultMaxFlattenDepth,
	}
}

// Parser decodes CSV, spreadsheet and JSON uploads. It holds no per-call
// state and is safe for concurrent use.
type Parser struct {
	opts        Options
	spreadsheet *excel.SpreadsheetReader
	logger      *internal.Logger
}

// NewParser creates a parser, filling unset limits from DefaultOptions.
func NewParser(opts Options, logger *internal.Logger) *Parser {
	defaults := DefaultOptions()
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaults.MaxBytes
	}
	if opts.MaxFlattenDepth <= 0 {
		opts.MaxFlattenDepth = defaults.MaxFlattenDepth
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	readerConfig := excel.DefaultReaderConfig()
	readerConfig.Sheet = opts.Sheet

	return &Parser{
		opts:        opts,
		spreadsheet: excel.NewSpreadsheetReader(readerConfig, logger),
		logger:      logger,
	}
}

// Options returns the effective parser options.
func (p *Parser) Options() Options {
	return p.opts
}

// Parse validates the size, resolves the format and decodes the data.
func (p *Parser) Parse(data []byte, hint FileHint) (*tabular.Table, error) {
	startTime := time.Now()

	if int64(len(data)) > p.opts.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", core.ErrFileTooLarge, len(data), p.opts.MaxBytes)
	}

	if len(strings.TrimSpace(string(stripBOM(data)))) == 0 {
		return nil, fmt.Errorf("%w: %s has no content", core.ErrEmptyFile, displayName(hint))
	}

	format, err := DetectFormat(data, hint)
	if err != nil {
		return nil, err
	}

	var table *tabular.Table
	switch {
	case format == tabular.FormatCSV:
		table, err = parseCSV(data)
	case format.IsSpreadsheet():
		table, err = p.parseSpreadsheet(data, format)
	case format == tabular.FormatJSON:
		table, err = parseJSON(data, p.opts.MaxFlattenDepth)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, format)
	}
	if err != nil {
		p.logger.Debug("[Parser] %s (%s) rejected: %v", displayName(hint), format, err)
		return nil, err
	}

	if table.RowCount() == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", core.ErrEmptyFile, displayName(hint))
	}

	p.logger.Debug("[Parser] %s parsed as %s in %.2fms (%d rows, %d columns)",
		displayName(hint), format, float64(time.Since(startTime).Nanoseconds())/1e6,
		table.RowCount(), len(table.Columns))
	return table, nil
}

var extensionFormats = map[string]tabular.Format{
	".csv":  tabular.FormatCSV,
	".xlsx": tabular.FormatXLSX,
	".xls":  tabular.FormatXLS,
	".json": tabular.FormatJSON,
}

var mimeFormats = map[string]tabular.Format{
	"text/csv":                 tabular.FormatCSV,
	"application/csv":          tabular.FormatCSV,
	"application/vnd.ms-excel": tabular.FormatXLS,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": tabular.FormatXLSX,
	"application/json": tabular.FormatJSON,
	"text/json":        tabular.FormatJSON,
}

// DetectFormat resolves the upload format from the filename extension, then
// the declared MIME type, then by sniffing the content. A filename with an
// extension outside the accepted set is rejected outright.
func DetectFormat(data []byte, hint FileHint) (tabular.Format, error) {
	if ext := strings.ToLower(filepath.Ext(hint.Filename)); ext != "" {
		if format, ok := extensionFormats[ext]; ok {
			return format, nil
		}
		return tabular.FormatUnset, fmt.Errorf("%w: extension %q", core.ErrUnsupportedFormat, ext)
	}

	if hint.MimeType != "" {
		mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(hint.MimeType, ";", 2)[0]))
		if format, ok := mimeFormats[mediaType]; ok {
			return format, nil
		}
	}

	if len(data) > 0 {
		detected := mimetype.Detect(data)
		for m := detected; m != nil; m = m.Parent() {
			for mediaType, format := range mimeFormats {
				if m.Is(mediaType) {
					return format, nil
				}
			}
		}
		return tabular.FormatUnset, fmt.Errorf("%w: detected %s", core.ErrUnsupportedFormat, detected.String())
	}

	return tabular.FormatUnset, fmt.Errorf("%w: no filename or content type", core.ErrUnsupportedFormat)
}

func displayName(hint FileHint) string {
	if hint.Filename != "" {
		return hint.Filename
	}
	return "upload"
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
