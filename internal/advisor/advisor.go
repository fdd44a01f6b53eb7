// Package advisor derives a default chart configuration from a column profile.
package advisor

import "sheetviz/domain/tabular"

const (
	DefaultMaxYAxes         = 3
	DefaultCategoricalRatio = 0.8
)

// Config holds the advice limits.
type Config struct {
	MaxYAxes int
	// A text column is categorical when 1 < uniqueCount < CategoricalRatio * totalRows.
	CategoricalRatio float64
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		MaxYAxes:         DefaultMaxYAxes,
		CategoricalRatio: DefaultCategoricalRatio,
	}
}

// ChartAdvisor suggests axes and a chart type. It never fails; degenerate
// inputs produce a best-effort configuration with possibly empty axes.
type ChartAdvisor struct {
	config Config
}

// NewChartAdvisor creates an advisor, filling unset limits from DefaultConfig.
func NewChartAdvisor(config Config) *ChartAdvisor {
	if config.MaxYAxes <= 0 {
		config.MaxYAxes = DefaultMaxYAxes
	}
	if config.CategoricalRatio <= 0 {
		config.CategoricalRatio = DefaultCategoricalRatio
	}
	return &ChartAdvisor{config: config}
}

// Advise picks the x axis, up to MaxYAxes numeric y axes and a chart type.
// Columns without a profile entry are treated as text.
func (a *ChartAdvisor) Advise(columns []string, profile *tabular.Profile) tabular.ChartConfiguration {
	var text []tabular.ColumnProfile
	var numeric []string
	for _, name := range columns {
		col, ok := profile.Column(name)
		if !ok {
			col = tabular.ColumnProfile{Name: name, DataType: tabular.DataTypeText}
		}
		if col.IsNumeric() {
			numeric = append(numeric, name)
		} else {
			text = append(text, col)
		}
	}

	cfg := tabular.ChartConfiguration{
		XAxis:     a.pickXAxis(columns, text),
		YAxis:     []string{},
		ChartType: tabular.ChartLine,
	}
	for _, name := range numeric {
		if len(cfg.YAxis) == a.config.MaxYAxes {
			break
		}
		cfg.YAxis = append(cfg.YAxis, name)
	}

	switch {
	case len(numeric) == 1 && len(text) >= 1:
		cfg.ChartType = tabular.ChartPie
	case len(numeric) >= 2:
		cfg.ChartType = tabular.ChartBar
	}
	return cfg
}

func (a *ChartAdvisor) pickXAxis(columns []string, text []tabular.ColumnProfile) string {
	for _, col := range text {
		if col.UniqueCount > 1 && float64(col.UniqueCount) < a.config.CategoricalRatio*float64(col.TotalRows) {
			return col.Name
		}
	}
	if len(text) > 0 {
		return text[0].Name
	}
	if len(columns) > 0 {
		return columns[0]
	}
	return ""
}

// Advise suggests a configuration with the default limits.
func Advise(columns []string, profile *tabular.Profile) tabular.ChartConfiguration {
	return NewChartAdvisor(DefaultConfig()).Advise(columns, profile)
}
