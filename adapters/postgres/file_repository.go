package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sheetviz/domain/core"
	"sheetviz/domain/dataset"
	"sheetviz/domain/tabular"
	"sheetviz/ports"

	"github.com/jmoiron/sqlx"
)

// fileRepository implements the FileRepository interface
type fileRepository struct {
	db *sqlx.DB
}

// NewFileRepository creates a new uploaded file repository
func NewFileRepository(db *sqlx.DB) ports.FileRepository {
	return &fileRepository{db: db}
}

// fileRow mirrors the uploaded_files table
type fileRow struct {
	ID               string    `db:"id"`
	OriginalFilename string    `db:"original_filename"`
	StoredPath       string    `db:"stored_path"`
	FileSize         int64     `db:"file_size"`
	MimeType         string    `db:"mime_type"`
	Format           string    `db:"format"`
	Checksum         string    `db:"checksum"`
	RecordCount      int       `db:"record_count"`
	FieldCount       int       `db:"field_count"`
	Status           string    `db:"status"`
	ErrorMessage     string    `db:"error_message"`
	Metadata         []byte    `db:"metadata"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

const fileColumns = `id, original_filename, stored_path, file_size, mime_type, format, checksum,
	record_count, field_count, status, error_message, metadata, created_at, updated_at`

func newFileRow(f *dataset.UploadedFile) (*fileRow, error) {
	metadataJSON, err := json.Marshal(f.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return &fileRow{
		ID:               f.ID.String(),
		OriginalFilename: f.OriginalFilename,
		StoredPath:       f.StoredPath,
		FileSize:         f.FileSize,
		MimeType:         f.MimeType,
		Format:           string(f.Format),
		Checksum:         f.Checksum.String(),
		RecordCount:      f.RecordCount,
		FieldCount:       f.FieldCount,
		Status:           string(f.Status),
		ErrorMessage:     f.ErrorMessage,
		Metadata:         metadataJSON,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}, nil
}

func (r fileRow) toDomain() (*dataset.UploadedFile, error) {
	f := &dataset.UploadedFile{
		ID:               core.ID(r.ID),
		OriginalFilename: r.OriginalFilename,
		StoredPath:       r.StoredPath,
		FileSize:         r.FileSize,
		MimeType:         r.MimeType,
		Format:           tabular.Format(r.Format),
		Checksum:         core.Hash(r.Checksum),
		RecordCount:      r.RecordCount,
		FieldCount:       r.FieldCount,
		Status:           dataset.FileStatus(r.Status),
		ErrorMessage:     r.ErrorMessage,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &f.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return f, nil
}

// Create inserts a new uploaded file
func (r *fileRepository) Create(ctx context.Context, f *dataset.UploadedFile) error {
	row, err := newFileRow(f)
	if err != nil {
		return err
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO uploaded_files (`+fileColumns+`)
		VALUES (
			:id, :original_filename, :stored_path, :file_size, :mime_type, :format, :checksum,
			:record_count, :field_count, :status, :error_message, :metadata, :created_at, :updated_at
		)
	`, row)
	if err != nil {
		return fmt.Errorf("failed to create uploaded file: %w", err)
	}
	return nil
}

// GetByID retrieves an uploaded file by its ID
func (r *fileRepository) GetByID(ctx context.Context, id core.ID) (*dataset.UploadedFile, error) {
	var row fileRow
	err := r.db.GetContext(ctx, &row, `SELECT `+fileColumns+` FROM uploaded_files WHERE id = $1`, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.NewNotFoundError(core.ErrFileNotFound, id.String())
		}
		return nil, fmt.Errorf("failed to get uploaded file: %w", err)
	}
	return row.toDomain()
}

// List retrieves uploaded files, newest first
func (r *fileRepository) List(ctx context.Context, limit, offset int) ([]*dataset.UploadedFile, error) {
	var rows []fileRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+fileColumns+`
		FROM uploaded_files
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaded files: %w", err)
	}

	files := make([]*dataset.UploadedFile, 0, len(rows))
	for _, row := range rows {
		f, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// UpdateStatus changes the processing status of a file
func (r *fileRepository) UpdateStatus(ctx context.Context, id core.ID, status dataset.FileStatus, errorMsg string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE uploaded_files SET status = $2, error_message = $3, updated_at = NOW()
		WHERE id = $1
	`, id.String(), string(status), errorMsg)
	if err != nil {
		return fmt.Errorf("failed to update file status: %w", err)
	}
	return expectOneRow(result, core.ErrFileNotFound, id)
}

// Delete removes an uploaded file; its charts are removed by cascade
func (r *fileRepository) Delete(ctx context.Context, id core.ID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM uploaded_files WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete uploaded file: %w", err)
	}
	return expectOneRow(result, core.ErrFileNotFound, id)
}

func expectOneRow(result sql.Result, notFound error, id core.ID) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return core.NewNotFoundError(notFound, id.String())
	}
	return nil
}
