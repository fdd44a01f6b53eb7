package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"sheetviz/domain/chart"
	"sheetviz/domain/core"
	"sheetviz/domain/dataset"
	"sheetviz/domain/tabular"
	"sheetviz/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile() *dataset.UploadedFile {
	f := dataset.NewUploadedFile(&dataset.FileUpload{
		Filename: "sales.csv",
		MimeType: "text/csv",
		Data:     []byte("month,revenue\nJan,100\n"),
	})
	f.StoredPath = "sales_20240101_000000_abcd1234.csv"
	table := tabular.NewTable(tabular.FormatCSV, []string{"month", "revenue"}, []tabular.Record{{"month": "Jan", "revenue": 100.0}})
	cfg := tabular.ChartConfiguration{XAxis: "month", YAxis: []string{"revenue"}, ChartType: tabular.ChartPie}
	f.MarkReady(table, &tabular.Profile{TotalRows: 1}, &cfg, 5)
	return f
}

func TestFileRowRoundTrip(t *testing.T) {
	f := sampleFile()
	row, err := newFileRow(f)
	require.NoError(t, err)
	assert.Equal(t, "csv", row.Format)
	assert.Equal(t, "ready", row.Status)

	back, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, f.ID, back.ID)
	assert.Equal(t, f.StoredPath, back.StoredPath)
	assert.Equal(t, f.Checksum, back.Checksum)
	assert.Equal(t, []string{"month", "revenue"}, back.Metadata.Columns)
	require.NotNil(t, back.Metadata.Suggestion)
	assert.Equal(t, tabular.ChartPie, back.Metadata.Suggestion.ChartType)
}

func TestChartRowRoundTrip(t *testing.T) {
	cfg := tabular.ChartConfiguration{XAxis: "month", YAxis: []string{"revenue"}, ChartType: tabular.ChartBar}
	c := chart.NewChart(core.NewID(), "Revenue", cfg, tabular.SeriesData{
		Labels:   []string{"Jan"},
		Datasets: []tabular.Dataset{{Label: "revenue", Data: []float64{100}}},
	})
	row, err := newChartRow(c)
	require.NoError(t, err)
	assert.JSONEq(t, `{"xAxis":"month","yAxis":["revenue"]}`, string(row.Metadata))

	back, err := row.toDomain()
	require.NoError(t, err)
	assert.Equal(t, c.Data, back.Data)
	assert.Equal(t, c.Metadata, back.Metadata)

	row.Data = []byte("not json")
	_, err = row.toDomain()
	assert.Error(t, err)
}

// Runs against a real database when TEST_DATABASE_URL is set.
func TestRepositoriesAgainstPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, migration.NewRunner().Run(ctx, db))

	files := NewFileRepository(db)
	charts := NewChartRepository(db)

	f := sampleFile()
	require.NoError(t, files.Create(ctx, f))
	got, err := files.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.OriginalFilename, got.OriginalFilename)

	require.NoError(t, files.UpdateStatus(ctx, f.ID, dataset.StatusFailed, "boom"))
	got, err = files.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset.StatusFailed, got.Status)
	assert.Equal(t, "boom", got.ErrorMessage)

	c := chart.NewChart(f.ID, "t", tabular.ChartConfiguration{XAxis: "month", YAxis: []string{"revenue"}, ChartType: tabular.ChartBar},
		tabular.SeriesData{Labels: []string{"Jan"}, Datasets: []tabular.Dataset{{Label: "revenue", Data: []float64{100}}}})
	require.NoError(t, charts.Create(ctx, c))

	byFile, err := charts.ListByFile(ctx, f.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, byFile, 1)
	assert.Equal(t, c.ID, byFile[0].ID)

	require.NoError(t, files.Delete(ctx, f.ID))
	_, err = charts.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, core.ErrChartNotFound, "charts cascade with their file")
	_, err = files.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, files.Delete(ctx, f.ID), core.ErrFileNotFound)
}
