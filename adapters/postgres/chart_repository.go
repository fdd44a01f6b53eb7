package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sheetviz/domain/chart"
	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
	"sheetviz/ports"

	"github.com/jmoiron/sqlx"
)

// chartRepository implements the ChartRepository interface
type chartRepository struct {
	db *sqlx.DB
}

// NewChartRepository creates a new saved chart repository
func NewChartRepository(db *sqlx.DB) ports.ChartRepository {
	return &chartRepository{db: db}
}

type chartRow struct {
	ID        string    `db:"id"`
	FileID    string    `db:"file_id"`
	Title     string    `db:"title"`
	ChartType string    `db:"chart_type"`
	Data      []byte    `db:"data"`
	Metadata  []byte    `db:"metadata"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const chartColumns = `id, file_id, title, chart_type, data, metadata, created_at, updated_at`

func newChartRow(c *chart.Chart) (*chartRow, error) {
	dataJSON, err := json.Marshal(c.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal series data: %w", err)
	}
	metadataJSON, err := json.Marshal(c.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return &chartRow{
		ID:        c.ID.String(),
		FileID:    c.FileID.String(),
		Title:     c.Title,
		ChartType: string(c.ChartType),
		Data:      dataJSON,
		Metadata:  metadataJSON,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}, nil
}

func (r chartRow) toDomain() (*chart.Chart, error) {
	c := &chart.Chart{
		ID:        core.ID(r.ID),
		FileID:    core.ID(r.FileID),
		Title:     r.Title,
		ChartType: tabular.ChartType(r.ChartType),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Data, &c.Data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal series data: %w", err)
	}
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &c.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return c, nil
}

// Create inserts a new chart
func (r *chartRepository) Create(ctx context.Context, c *chart.Chart) error {
	row, err := newChartRow(c)
	if err != nil {
		return err
	}
	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO charts (`+chartColumns+`)
		VALUES (:id, :file_id, :title, :chart_type, :data, :metadata, :created_at, :updated_at)
	`, row)
	if err != nil {
		return fmt.Errorf("failed to create chart: %w", err)
	}
	return nil
}

// GetByID retrieves a chart by its ID
func (r *chartRepository) GetByID(ctx context.Context, id core.ID) (*chart.Chart, error) {
	var row chartRow
	err := r.db.GetContext(ctx, &row, `SELECT `+chartColumns+` FROM charts WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError(core.ErrChartNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get chart: %w", err)
	}
	return row.toDomain()
}

// List retrieves charts, newest first
func (r *chartRepository) List(ctx context.Context, limit, offset int) ([]*chart.Chart, error) {
	var rows []chartRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+chartColumns+` FROM charts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list charts: %w", err)
	}
	return chartsFromRows(rows)
}

// ListByFile retrieves the charts built from one file, newest first
func (r *chartRepository) ListByFile(ctx context.Context, fileID core.ID, limit, offset int) ([]*chart.Chart, error) {
	var rows []chartRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+chartColumns+` FROM charts
		WHERE file_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, fileID.String(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list charts for file: %w", err)
	}
	return chartsFromRows(rows)
}

// Delete removes a chart
func (r *chartRepository) Delete(ctx context.Context, id core.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM charts WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete chart: %w", err)
	}
	return expectOneRow(result, core.ErrChartNotFound, id)
}

func chartsFromRows(rows []chartRow) ([]*chart.Chart, error) {
	charts := make([]*chart.Chart, 0, len(rows))
	for _, row := range rows {
		c, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		charts = append(charts, c)
	}
	return charts, nil
}
