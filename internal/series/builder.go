// Package series projects a table onto chart-ready labels and datasets.
package series

import (
	"fmt"

	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
)

const (
	DefaultMaxYAxes    = 3
	DefaultFillAlpha   = "80"
	DefaultBorderWidth = 2
	lineTension        = 0.4
)

// DefaultPalette is cycled by y-column index.
var DefaultPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444",
	"#8B5CF6", "#06B6D4", "#EC4899", "#84CC16",
}

// Config holds the styling and selection limits.
type Config struct {
	Palette     []string
	MaxYAxes    int
	FillAlpha   string // hex alpha appended to fill colors
	BorderWidth int
}

// DefaultConfig returns the standard palette and limits.
func DefaultConfig() Config {
	return Config{
		Palette:     DefaultPalette,
		MaxYAxes:    DefaultMaxYAxes,
		FillAlpha:   DefaultFillAlpha,
		BorderWidth: DefaultBorderWidth,
	}
}

// Request is an axis selection. ChartType only affects styling.
type Request struct {
	XAxis     string            `json:"xAxis"`
	YAxis     []string          `json:"yAxis"`
	ChartType tabular.ChartType `json:"chartType"`
}

// RequestFromConfiguration turns a suggested configuration into a request.
func RequestFromConfiguration(cfg tabular.ChartConfiguration) Request {
	return Request{XAxis: cfg.XAxis, YAxis: cfg.YAxis, ChartType: cfg.ChartType}
}

// Builder produces SeriesData. It only reads the table.
type Builder struct {
	config Config
}

// NewBuilder creates a builder, filling unset fields from DefaultConfig.
func NewBuilder(config Config) *Builder {
	defaults := DefaultConfig()
	if len(config.Palette) == 0 {
		config.Palette = defaults.Palette
	}
	if config.MaxYAxes <= 0 {
		config.MaxYAxes = defaults.MaxYAxes
	}
	if config.FillAlpha == "" {
		config.FillAlpha = defaults.FillAlpha
	}
	if config.BorderWidth <= 0 {
		config.BorderWidth = defaults.BorderWidth
	}
	return &Builder{config: config}
}

// Build filters the records once to those with a present x value, then emits
// one label per kept row and one dataset per y column. Missing or non-numeric
// y values become 0 so every dataset stays aligned with the labels.
func (b *Builder) Build(table *tabular.Table, req Request) (*tabular.SeriesData, error) {
	if err := b.Validate(table, req); err != nil {
		return nil, err
	}

	var rows []tabular.Record
	for _, rec := range table.Records {
		if tabular.IsPresent(rec[req.XAxis]) {
			rows = append(rows, rec)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", core.ErrEmptyFilteredDataset, req.XAxis)
	}

	labels := make([]string, len(rows))
	for i, rec := range rows {
		labels[i] = tabular.FormatLabel(rec[req.XAxis])
	}

	datasets := make([]tabular.Dataset, len(req.YAxis))
	for j, column := range req.YAxis {
		data := make([]float64, len(rows))
		for i, rec := range rows {
			if v, ok := tabular.TryParseFiniteNumber(rec[column]); ok {
				data[i] = v
			}
		}
		datasets[j] = b.styleDataset(column, data, j, req.ChartType)
	}

	return &tabular.SeriesData{Labels: labels, Datasets: datasets}, nil
}

// Validate checks an axis selection against the table without building.
func (b *Builder) Validate(table *tabular.Table, req Request) error {
	if req.XAxis == "" {
		return core.ErrNoXAxisSelected
	}
	if len(req.YAxis) == 0 {
		return core.ErrNoYAxisSelected
	}
	if len(req.YAxis) > b.config.MaxYAxes {
		return fmt.Errorf("%w: %d selected, at most %d allowed", core.ErrTooManyYAxes, len(req.YAxis), b.config.MaxYAxes)
	}
	if table == nil {
		return core.ErrEmptyDataset
	}
	for _, column := range append([]string{req.XAxis}, req.YAxis...) {
		if !table.HasColumn(column) {
			return core.NewUnknownColumnError(column)
		}
	}
	return nil
}

func (b *Builder) styleDataset(label string, data []float64, index int, chartType tabular.ChartType) tabular.Dataset {
	color := b.config.Palette[index%len(b.config.Palette)]
	ds := tabular.Dataset{
		Label:           label,
		Data:            data,
		BackgroundColor: color,
		BorderColor:     color,
		BorderWidth:     b.config.BorderWidth,
	}
	if chartType.FillsArea() {
		ds.BackgroundColor = color + b.config.FillAlpha
	}
	switch chartType {
	case tabular.ChartArea, tabular.ChartRadar:
		ds.Fill = true
	}
	switch chartType {
	case tabular.ChartLine, tabular.ChartArea:
		ds.Tension = lineTension
	}
	return ds
}

// Build builds series with the default configuration.
func Build(table *tabular.Table, req Request) (*tabular.SeriesData, error) {
	return NewBuilder(DefaultConfig()).Build(table, req)
}
