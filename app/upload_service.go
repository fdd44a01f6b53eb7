package app

import (
	"context"
	"fmt"
	"io"

	"sheetviz/domain/core"
	"sheetviz/domain/dataset"
	"sheetviz/domain/tabular"
	"sheetviz/internal"
	"sheetviz/internal/errors"
	"sheetviz/internal/ingest"
	"sheetviz/ports"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// UploadService stores uploads, runs the analysis pipeline and records the result
type UploadService struct {
	files      ports.FileRepository
	storage    ports.FileStorage
	pipeline   *Pipeline
	cache      *TableCache
	maxBytes   int64
	sampleRows int
	logger     *internal.Logger
}

// UploadConfig holds the service limits
type UploadConfig struct {
	MaxBytes   int64
	SampleRows int
}

// UploadRequest is one uploaded file
type UploadRequest struct {
	Filename string
	MimeType string
	Data     []byte
}

// UploadResult is the stored file plus what the pipeline derived from it
type UploadResult struct {
	File       *dataset.UploadedFile      `json:"file"`
	Profile    *tabular.Profile           `json:"profile"`
	Suggestion tabular.ChartConfiguration `json:"suggestion"`
	Series     *tabular.SeriesData        `json:"series,omitempty"`
}

// NewUploadService creates an upload service
func NewUploadService(files ports.FileRepository, storage ports.FileStorage, pipeline *Pipeline, cache *TableCache, config UploadConfig, logger *internal.Logger) *UploadService {
	if config.MaxBytes <= 0 {
		config.MaxBytes = ingest.DefaultMaxBytes
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &UploadService{
		files:      files,
		storage:    storage,
		pipeline:   pipeline,
		cache:      cache,
		maxBytes:   config.MaxBytes,
		sampleRows: config.SampleRows,
		logger:     logger,
	}
}

// Upload validates the request, then stores the raw bytes and analyzes them
// concurrently. A file that fails analysis is still recorded, with status
// failed, and the analysis error is returned.
func (s *UploadService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if int64(len(req.Data)) > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", core.ErrFileTooLarge, len(req.Data), s.maxBytes)
	}
	hint := ingest.FileHint{Filename: req.Filename, MimeType: req.MimeType}
	if len(req.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", core.ErrEmptyFile, req.Filename)
	}
	if _, err := ingest.DetectFormat(req.Data, hint); err != nil {
		return nil, err
	}

	file := dataset.NewUploadedFile(&dataset.FileUpload{
		Filename: req.Filename,
		MimeType: req.MimeType,
		Data:     req.Data,
	})
	s.logger.Info("[UploadService] processing %s (%d bytes) as %s", req.Filename, len(req.Data), file.ID)

	var (
		storedPath  string
		analysis    *Analysis
		analysisErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := s.storage.Store(gctx, req.Data, req.Filename)
		if err != nil {
			return errors.ExternalServiceError("storage", err)
		}
		storedPath = path
		return nil
	})
	g.Go(func() error {
		analysis, analysisErr = s.pipeline.Analyze(req.Data, hint)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	file.StoredPath = storedPath

	if analysisErr != nil {
		file.MarkFailed(analysisErr)
		if core.IsIngestError(analysisErr) {
			s.logger.Warn("[UploadService] %s is not readable tabular data: %v", file.ID, analysisErr)
		} else {
			s.logger.Error("[UploadService] analysis of %s failed: %v", file.ID, analysisErr)
		}
	} else {
		file.MarkReady(analysis.Table, analysis.Profile, &analysis.Suggestion, s.sampleRows)
	}

	if err := s.files.Create(ctx, file); err != nil {
		if delErr := s.storage.Delete(ctx, storedPath); delErr != nil {
			s.logger.Warn("[UploadService] failed to remove orphaned upload %s: %v", storedPath, delErr)
		}
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to record uploaded file"))
	}

	if analysisErr != nil {
		return nil, analysisErr
	}

	s.cache.Put(file.ID, analysis.Table)
	s.logger.Info("[UploadService] %s ready: %d rows, %d columns, suggested %s",
		file.ID, file.RecordCount, file.FieldCount, analysis.Suggestion.ChartType)

	return &UploadResult{
		File:       file,
		Profile:    analysis.Profile,
		Suggestion: analysis.Suggestion,
		Series:     analysis.Series,
	}, nil
}

// GetFile returns a file record
func (s *UploadService) GetFile(ctx context.Context, id core.ID) (*dataset.UploadedFile, error) {
	return s.files.GetByID(ctx, id)
}

// ListFiles returns file records, newest first
func (s *UploadService) ListFiles(ctx context.Context, limit, offset int) ([]*dataset.UploadedFile, error) {
	limit, offset = clampPage(limit, offset)
	return s.files.List(ctx, limit, offset)
}

// DeleteFile removes the record, the stored bytes and any cached table
func (s *UploadService) DeleteFile(ctx context.Context, id core.ID) error {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.files.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(id)
	if file.StoredPath != "" {
		if err := s.storage.Delete(ctx, file.StoredPath); err != nil {
			s.logger.Warn("[UploadService] file %s deleted but stored bytes remain: %v", id, err)
		}
	}
	return nil
}

// LoadTable returns the parsed table of a ready file, re-parsing the stored
// bytes when the cache has no live entry.
func (s *UploadService) LoadTable(ctx context.Context, id core.ID) (*tabular.Table, *dataset.UploadedFile, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !file.IsReady() {
		return nil, file, errors.InvalidInput(fmt.Sprintf("file %s is %s, not ready", id, file.Status))
	}
	if table, ok := s.cache.Get(id); ok {
		return table, file, nil
	}

	rc, err := s.storage.Open(ctx, file.StoredPath)
	if err != nil {
		return nil, file, err
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, s.maxBytes+1))
	if err != nil {
		return nil, file, errors.ExternalServiceError("storage", err)
	}

	table, err := s.pipeline.Parse(data, ingest.FileHint{Filename: file.OriginalFilename, MimeType: file.MimeType})
	if err != nil {
		return nil, file, err
	}
	s.cache.Put(id, table)
	s.logger.Debug("[UploadService] re-parsed %s from storage", id)
	return table, file, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
