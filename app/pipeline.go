package app

import (
	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
	"sheetviz/internal"
	"sheetviz/internal/advisor"
	"sheetviz/internal/ingest"
	"sheetviz/internal/profiling"
	"sheetviz/internal/series"
	"sheetviz/ports"
)

// Pipeline chains parse, profile, advise and build
type Pipeline struct {
	parser   ports.TableParser
	profiler ports.ColumnProfiler
	advisor  ports.ChartAdvisor
	builder  ports.SeriesBuilder
	logger   *internal.Logger
}

// Analysis is everything the pipeline derives from one upload
type Analysis struct {
	Table      *tabular.Table
	Profile    *tabular.Profile
	Suggestion tabular.ChartConfiguration
	Series     *tabular.SeriesData // nil when the suggestion cannot be plotted
}

// NewPipeline creates a pipeline from its stages
func NewPipeline(parser ports.TableParser, profiler ports.ColumnProfiler, advisor ports.ChartAdvisor, builder ports.SeriesBuilder, logger *internal.Logger) *Pipeline {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Pipeline{
		parser:   parser,
		profiler: profiler,
		advisor:  advisor,
		builder:  builder,
		logger:   logger,
	}
}

// NewDefaultPipeline wires the standard stages with the given parser options
func NewDefaultPipeline(opts ingest.Options, logger *internal.Logger) *Pipeline {
	return NewPipeline(
		ingest.NewParser(opts, logger),
		profiling.NewDataProfiler(profiling.DefaultConfig()),
		advisor.NewChartAdvisor(advisor.DefaultConfig()),
		series.NewBuilder(series.DefaultConfig()),
		logger,
	)
}

// Parse runs only the parser
func (p *Pipeline) Parse(data []byte, hint ingest.FileHint) (*tabular.Table, error) {
	return p.parser.Parse(data, hint)
}

// Analyze parses and profiles the data and suggests a chart. The suggested
// series is built only when the suggestion has a y axis; a suggestion that
// cannot be plotted is not an error.
func (p *Pipeline) Analyze(data []byte, hint ingest.FileHint) (*Analysis, error) {
	table, err := p.parser.Parse(data, hint)
	if err != nil {
		return nil, err
	}
	return p.AnalyzeTable(table)
}

// AnalyzeTable runs the stages after parsing
func (p *Pipeline) AnalyzeTable(table *tabular.Table) (*Analysis, error) {
	profile, err := p.profiler.Profile(table)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		Table:      table,
		Profile:    profile,
		Suggestion: p.advisor.Advise(table.Columns, profile),
	}
	if len(analysis.Suggestion.YAxis) > 0 {
		data, err := p.builder.Build(table, series.RequestFromConfiguration(analysis.Suggestion))
		switch {
		case err == nil:
			analysis.Series = data
		case core.IsSelectionError(err):
			p.logger.Debug("[Pipeline] suggested series not built: %v", err)
		default:
			p.logger.Warn("[Pipeline] building suggested series failed: %v", err)
		}
	}
	return analysis, nil
}

// Build runs only the series builder over an already parsed table
func (p *Pipeline) Build(table *tabular.Table, req series.Request) (*tabular.SeriesData, error) {
	return p.builder.Build(table, req)
}
