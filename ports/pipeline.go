package ports

import (
	"sheetviz/domain/tabular"
	"sheetviz/internal/ingest"
	"sheetviz/internal/series"
)

// TableParser decodes raw upload bytes
type TableParser interface {
	Parse(data []byte, hint ingest.FileHint) (*tabular.Table, error)
}

// ColumnProfiler classifies and summarizes table columns
type ColumnProfiler interface {
	Profile(table *tabular.Table) (*tabular.Profile, error)
}

// ChartAdvisor suggests a default chart configuration
type ChartAdvisor interface {
	Advise(columns []string, profile *tabular.Profile) tabular.ChartConfiguration
}

// SeriesBuilder projects a table onto labels and datasets
type SeriesBuilder interface {
	Build(table *tabular.Table, req series.Request) (*tabular.SeriesData, error)
}
