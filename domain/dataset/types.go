package dataset

import (
	"time"

	"sheetviz/domain/core"
	"sheetviz/domain/tabular"
)

// FileStatus represents the processing state of an uploaded file
type FileStatus string

const (
	StatusProcessing FileStatus = "processing"
	StatusReady      FileStatus = "ready"
	StatusFailed     FileStatus = "failed"
)

// UploadedFile represents a stored upload and what the pipeline learned about it
type UploadedFile struct {
	ID core.ID `json:"id"`

	// File information
	OriginalFilename string         `json:"original_filename"`
	StoredPath       string         `json:"-"`
	FileSize         int64          `json:"file_size"`
	MimeType         string         `json:"mime_type"`
	Format           tabular.Format `json:"format"`
	Checksum         core.Hash      `json:"checksum"`

	// Dataset statistics
	RecordCount int `json:"record_count"`
	FieldCount  int `json:"field_count"`

	// Processing state
	Status       FileStatus `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`

	Metadata FileMetadata `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileMetadata is stored as a JSON document alongside the file row
type FileMetadata struct {
	Columns    []string                    `json:"columns"`
	Profile    *tabular.Profile            `json:"profile,omitempty"`
	Suggestion *tabular.ChartConfiguration `json:"suggestion,omitempty"`
	SampleRows []tabular.Record            `json:"sample_rows,omitempty"`
}

// FileUpload is an upload received by the transport before processing
type FileUpload struct {
	Filename string
	MimeType string
	Data     []byte
}

// NewUploadedFile creates a new file record with default values
func NewUploadedFile(upload *FileUpload) *UploadedFile {
	now := time.Now()
	return &UploadedFile{
		ID:               core.NewID(),
		OriginalFilename: upload.Filename,
		FileSize:         int64(len(upload.Data)),
		MimeType:         upload.MimeType,
		Checksum:         core.NewHash(upload.Data),
		Status:           StatusProcessing,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// IsReady returns true if the file was parsed and profiled
func (f *UploadedFile) IsReady() bool {
	return f.Status == StatusReady
}

// MarkReady records the pipeline results and flips the status to ready
func (f *UploadedFile) MarkReady(table *tabular.Table, profile *tabular.Profile, suggestion *tabular.ChartConfiguration, sampleSize int) {
	f.Format = table.Format
	f.RecordCount = table.RowCount()
	f.FieldCount = len(table.Columns)
	f.Metadata = FileMetadata{
		Columns:    table.Columns,
		Profile:    profile,
		Suggestion: suggestion,
		SampleRows: sampleRows(table.Records, sampleSize),
	}
	f.Status = StatusReady
	f.ErrorMessage = ""
	f.UpdatedAt = time.Now()
}

// MarkFailed records a processing failure
func (f *UploadedFile) MarkFailed(err error) {
	f.Status = StatusFailed
	if err != nil {
		f.ErrorMessage = err.Error()
	}
	f.UpdatedAt = time.Now()
}

func sampleRows(records []tabular.Record, limit int) []tabular.Record {
	if limit <= 0 || len(records) == 0 {
		return nil
	}
	if len(records) < limit {
		limit = len(records)
	}
	out := make([]tabular.Record, limit)
	copy(out, records[:limit])
	return out
}
