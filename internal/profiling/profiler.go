// Package profiling classifies table columns and computes their summary statistics.
package profiling

import (
	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
)

const (
	DefaultNumericThreshold = 0.7
	DefaultSampleSize       = 5
)

// Config holds the profiler thresholds.
type Config struct {
	// A column is numeric when numericCount > NumericThreshold * nonEmptyCount.
	NumericThreshold float64
	SampleSize       int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		NumericThreshold: DefaultNumericThreshold,
		SampleSize:       DefaultSampleSize,
	}
}

// DataProfiler computes a ColumnProfile for every column of a table
type DataProfiler struct {
	config Config
}

// NewDataProfiler creates a new data profiler
func NewDataProfiler(config Config) *DataProfiler {
	if config.NumericThreshold <= 0 {
		config.NumericThreshold = DefaultNumericThreshold
	}
	if config.SampleSize <= 0 {
		config.SampleSize = DefaultSampleSize
	}
	return &DataProfiler{config: config}
}

// Profile profiles the union of columns across all records, in table column order.
func (dp *DataProfiler) Profile(table *tabular.Table) (*tabular.Profile, error) {
	if table.RowCount() == 0 {
		return nil, core.ErrEmptyDataset
	}

	columns := table.Columns
	if len(columns) == 0 {
		columns = tabular.ColumnUnion(table.Records)
	}

	profile := &tabular.Profile{
		TotalRows: len(table.Records),
		Columns:   make([]tabular.ColumnProfile, 0, len(columns)),
	}
	for _, name := range columns {
		profile.Columns = append(profile.Columns, dp.ProfileColumn(name, table.Records))
	}
	return profile, nil
}

// ProfileColumn profiles a single column. Records without the key count as empty.
func (dp *DataProfiler) ProfileColumn(name string, records []tabular.Record) tabular.ColumnProfile {
	col := tabular.ColumnProfile{
		Name:         name,
		TotalRows:    len(records),
		DataType:     tabular.DataTypeText,
		SampleValues: []any{},
	}

	unique := make(map[string]struct{})
	var numbers []float64
	for _, rec := range records {
		v := rec[name]
		if !tabular.IsPresent(v) {
			continue
		}
		col.NonEmptyCount++
		unique[tabular.ValueKey(v)] = struct{}{}
		if len(col.SampleValues) < dp.config.SampleSize {
			col.SampleValues = append(col.SampleValues, v)
		}
		if f, ok := tabular.TryParseFiniteNumber(v); ok {
			numbers = append(numbers, f)
		}
	}
	col.NumericCount = len(numbers)
	col.UniqueCount = len(unique)

	if col.NonEmptyCount > 0 && float64(col.NumericCount) > dp.config.NumericThreshold*float64(col.NonEmptyCount) {
		col.DataType = tabular.DataTypeNumeric
		applySummary(&col, summarize(numbers))
	}
	return col
}

// Profile profiles a table with the default thresholds.
func Profile(table *tabular.Table) (*tabular.Profile, error) {
	return NewDataProfiler(DefaultConfig()).Profile(table)
}
