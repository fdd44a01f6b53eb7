package ports

import (
	"context"

	"sheetviz/domain/core"
	"sheetviz/domain/dataset"
)

// FileRepository defines the interface for uploaded file metadata storage
type FileRepository interface {
	// Core CRUD operations
	Create(ctx context.Context, file *dataset.UploadedFile) error
	GetByID(ctx context.Context, id core.ID) (*dataset.UploadedFile, error)
	List(ctx context.Context, limit, offset int) ([]*dataset.UploadedFile, error)
	Delete(ctx context.Context, id core.ID) error

	UpdateStatus(ctx context.Context, id core.ID, status dataset.FileStatus, errorMsg string) error
}
