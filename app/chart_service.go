package app

import (
	"context"
	"strings"

	"sheetviz/domain/chart"
	"sheetviz/domain/core"
	"sheetviz/domain/dataset"
	"sheetviz/domain/tabular"
	"sheetviz/internal"
	"sheetviz/internal/errors"
	"sheetviz/internal/series"
	"sheetviz/ports"
)

// TableSource resolves a file id to its parsed table
type TableSource interface {
	LoadTable(ctx context.Context, id core.ID) (*tabular.Table, *dataset.UploadedFile, error)
}

// ChartService builds series for explicit selections and manages saved charts
type ChartService struct {
	tables  TableSource
	charts  ports.ChartRepository
	builder ports.SeriesBuilder
	logger  *internal.Logger
}

// SaveChartRequest finalizes a selection as a saved chart
type SaveChartRequest struct {
	FileID    core.ID           `json:"fileId"`
	Title     string            `json:"title"`
	ChartType tabular.ChartType `json:"chartType"`
	XAxis     string            `json:"xAxis"`
	YAxis     []string          `json:"yAxis"`
}

// NewChartService creates a chart service
func NewChartService(tables TableSource, charts ports.ChartRepository, builder ports.SeriesBuilder, logger *internal.Logger) *ChartService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ChartService{
		tables:  tables,
		charts:  charts,
		builder: builder,
		logger:  logger,
	}
}

// BuildSeries re-runs only the series builder for a user selection.
// An empty chart type means line.
func (s *ChartService) BuildSeries(ctx context.Context, fileID core.ID, req series.Request) (*tabular.SeriesData, error) {
	if req.ChartType == "" {
		req.ChartType = tabular.ChartLine
	}
	if _, err := tabular.ParseChartType(string(req.ChartType)); err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	table, _, err := s.tables.LoadTable(ctx, fileID)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(table, req)
}

// SaveChart builds the series for the selection and persists the chart.
// An empty chart type means line.
func (s *ChartService) SaveChart(ctx context.Context, req SaveChartRequest) (*chart.Chart, error) {
	if req.FileID.IsEmpty() {
		return nil, errors.ValidationError("fileId is required")
	}
	if req.ChartType == "" {
		req.ChartType = tabular.ChartLine
	}
	if _, err := tabular.ParseChartType(string(req.ChartType)); err != nil {
		return nil, errors.InvalidInput(err.Error())
	}

	cfg := tabular.ChartConfiguration{XAxis: req.XAxis, YAxis: req.YAxis, ChartType: req.ChartType}
	data, err := s.BuildSeries(ctx, req.FileID, series.RequestFromConfiguration(cfg))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = chart.DefaultTitle(cfg)
	}
	c := chart.NewChart(req.FileID, title, cfg, *data)
	if err := s.charts.Create(ctx, c); err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to save chart"))
	}
	s.logger.Info("[ChartService] saved %s chart %s for file %s", c.ChartType, c.ID, c.FileID)
	return c, nil
}

// GetChart returns a saved chart
func (s *ChartService) GetChart(ctx context.Context, id core.ID) (*chart.Chart, error) {
	return s.charts.GetByID(ctx, id)
}

// ListCharts returns saved charts, restricted to one file when fileID is set
func (s *ChartService) ListCharts(ctx context.Context, fileID core.ID, limit, offset int) ([]*chart.Chart, error) {
	limit, offset = clampPage(limit, offset)
	if fileID.IsEmpty() {
		return s.charts.List(ctx, limit, offset)
	}
	return s.charts.ListByFile(ctx, fileID, limit, offset)
}

// DeleteChart removes a saved chart
func (s *ChartService) DeleteChart(ctx context.Context, id core.ID) error {
	return s.charts.Delete(ctx, id)
}
