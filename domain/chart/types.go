package chart

import (
	"time"

	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
)

// Metadata records the axis selection a chart was built from.
type Metadata struct {
	XAxis string   `json:"xAxis"`
	YAxis []string `json:"yAxis"`
}

// Chart is a finalized chart configuration plus its series data.
type Chart struct {
	ID        core.ID            `json:"id"`
	FileID    core.ID            `json:"fileId"`
	Title     string             `json:"title"`
	ChartType tabular.ChartType  `json:"chartType"`
	Data      tabular.SeriesData `json:"data"`
	Metadata  Metadata           `json:"metadata"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewChart creates a chart for a file from a finalized selection.
func NewChart(fileID core.ID, title string, cfg tabular.ChartConfiguration, data tabular.SeriesData) *Chart {
	now := time.Now()
	return &Chart{
		ID:        core.NewID(),
		FileID:    fileID,
		Title:     title,
		ChartType: cfg.ChartType,
		Data:      data,
		Metadata: Metadata{
			XAxis: cfg.XAxis,
			YAxis: append([]string(nil), cfg.YAxis...),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultTitle derives a title when the user did not supply one.
func DefaultTitle(cfg tabular.ChartConfiguration) string {
	if len(cfg.YAxis) == 0 {
		return cfg.XAxis
	}
	title := cfg.YAxis[0]
	for _, y := range cfg.YAxis[1:] {
		title += ", " + y
	}
	if cfg.XAxis == "" {
		return title
	}
	return title + " by " + cfg.XAxis
}
