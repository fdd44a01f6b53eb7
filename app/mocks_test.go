package app

import (
	"context"
	"io"

	"sheetviz/domain/chart"
	"sheetviz/domain/core"
	"sheetviz/domain/dataset"

	"github.com/stretchr/testify/mock"
)

// Mock implementations for testing
type MockFileRepository struct {
	mock.Mock
}

func (m *MockFileRepository) Create(ctx context.Context, f *dataset.UploadedFile) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFileRepository) GetByID(ctx context.Context, id core.ID) (*dataset.UploadedFile, error) {
	args := m.Called(ctx, id)
	f, _ := args.Get(0).(*dataset.UploadedFile)
	return f, args.Error(1)
}

func (m *MockFileRepository) List(ctx context.Context, limit, offset int) ([]*dataset.UploadedFile, error) {
	args := m.Called(ctx, limit, offset)
	files, _ := args.Get(0).([]*dataset.UploadedFile)
	return files, args.Error(1)
}

func (m *MockFileRepository) Delete(ctx context.Context, id core.ID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFileRepository) UpdateStatus(ctx context.Context, id core.ID, status dataset.FileStatus, errorMsg string) error {
	return m.Called(ctx, id, status, errorMsg).Error(0)
}

type MockChartRepository struct {
	mock.Mock
}

func (m *MockChartRepository) Create(ctx context.Context, c *chart.Chart) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockChartRepository) GetByID(ctx context.Context, id core.ID) (*chart.Chart, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*chart.Chart)
	return c, args.Error(1)
}

func (m *MockChartRepository) List(ctx context.Context, limit, offset int) ([]*chart.Chart, error) {
	args := m.Called(ctx, limit, offset)
	charts, _ := args.Get(0).([]*chart.Chart)
	return charts, args.Error(1)
}

func (m *MockChartRepository) ListByFile(ctx context.Context, fileID core.ID, limit, offset int) ([]*chart.Chart, error) {
	args := m.Called(ctx, fileID, limit, offset)
	charts, _ := args.Get(0).([]*chart.Chart)
	return charts, args.Error(1)
}

func (m *MockChartRepository) Delete(ctx context.Context, id core.ID) error {
	return m.Called(ctx, id).Error(0)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Store(ctx context.Context, data []byte, filename string) (string, error) {
	args := m.Called(ctx, data, filename)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockFileStorage) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}
