package tabular

import "fmt"

// ChartType names a rendering style understood by the presentation layer.
type ChartType string

const (
	ChartBar      ChartType = "bar"
	ChartLine     ChartType = "line"
	ChartPie      ChartType = "pie"
	ChartDoughnut ChartType = "doughnut"
	ChartArea     ChartType = "area"
	ChartScatter  ChartType = "scatter"
	ChartRadar    ChartType = "radar"
)

// ChartTypes lists every selectable chart type.
var ChartTypes = []ChartType{ChartBar, ChartLine, ChartPie, ChartDoughnut, ChartArea, ChartScatter, ChartRadar}

// ParseChartType validates a user supplied chart type.
func ParseChartType(s string) (ChartType, error) {
	for _, ct := range ChartTypes {
		if string(ct) == s {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown chart type %q", s)
}

// FillsArea reports whether datasets of this type paint a translucent fill.
func (c ChartType) FillsArea() bool {
	switch c {
	case ChartBar, ChartArea, ChartRadar:
		return true
	}
	return false
}

// ChartConfiguration is the axis selection and chart type for a dataset.
type ChartConfiguration struct {
	XAxis     string    `json:"xAxis" yaml:"xAxis"`
	YAxis     []string  `json:"yAxis" yaml:"yAxis"`
	ChartType ChartType `json:"chartType" yaml:"chartType"`
}

// Dataset is one plotted series.
type Dataset struct {
	Label           string    `json:"label" yaml:"label"`
	Data            []float64 `json:"data" yaml:"data"`
	BackgroundColor string    `json:"backgroundColor" yaml:"backgroundColor"`
	BorderColor     string    `json:"borderColor" yaml:"borderColor"`
	BorderWidth     int       `json:"borderWidth" yaml:"borderWidth"`
	Fill            bool      `json:"fill" yaml:"fill"`
	Tension         float64   `json:"tension,omitempty" yaml:"tension,omitempty"`
}

// SeriesData is the renderer-facing projection of a table.
type SeriesData struct {
	Labels   []string  `json:"labels" yaml:"labels"`
	Datasets []Dataset `json:"datasets" yaml:"datasets"`
}
