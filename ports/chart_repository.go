package ports

import (
	"context"

	"sheetviz/domain/chart"
	"sheetviz/domain/core"
)

// ChartRepository defines the interface for saved chart storage
type ChartRepository interface {
	Create(ctx context.Context, c *chart.Chart) error
	GetByID(ctx context.Context, id core.ID) (*chart.Chart, error)
	List(ctx context.Context, limit, offset int) ([]*chart.Chart, error)
	ListByFile(ctx context.Context, fileID core.ID, limit, offset int) ([]*chart.Chart, error)
	Delete(ctx context.Context, id core.ID) error
}
