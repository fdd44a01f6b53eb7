package migration

import (
	"context"

	"sheetviz/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Step is one named group of schema statements
type Step struct {
	Name       string
	Statements []string
}

// Steps returns the ordered schema statements. Every statement is idempotent.
func Steps() []Step {
	return []Step{
		{Name: "uploaded_files table", Statements: []string{createUploadedFilesTable}},
		{Name: "charts table", Statements: []string{createChartsTable}},
		{Name: "indexes", Statements: createIndexes},
	}
}

// Run executes all database migrations in order inside one transaction
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to begin migration transaction"))
	}
	defer tx.Rollback()

	for _, s := range Steps() {
		for _, stmt := range s.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return errors.Wrapf(err, "failed to migrate %s", s.Name)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to commit migrations"))
	}
	return nil
}

const createUploadedFilesTable = `
	CREATE TABLE IF NOT EXISTS uploaded_files (
		id UUID PRIMARY KEY,
		original_filename VARCHAR(500) NOT NULL,
		stored_path VARCHAR(1000) NOT NULL DEFAULT '',
		file_size BIGINT NOT NULL DEFAULT 0,
		mime_type VARCHAR(255) NOT NULL DEFAULT '',
		format VARCHAR(10) NOT NULL DEFAULT '',
		checksum VARCHAR(64) NOT NULL DEFAULT '',
		record_count INTEGER NOT NULL DEFAULT 0,
		field_count INTEGER NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'processing',
		error_message TEXT NOT NULL DEFAULT '',
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

const createChartsTable = `
	CREATE TABLE IF NOT EXISTS charts (
		id UUID PRIMARY KEY,
		file_id UUID NOT NULL REFERENCES uploaded_files(id) ON DELETE CASCADE,
		title VARCHAR(500) NOT NULL,
		chart_type VARCHAR(20) NOT NULL,
		data JSONB NOT NULL,
		metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)
`

var createIndexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_uploaded_files_created_at ON uploaded_files(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_uploaded_files_status ON uploaded_files(status)`,
	`CREATE INDEX IF NOT EXISTS idx_charts_file_id ON charts(file_id)`,
	`CREATE INDEX IF NOT EXISTS idx_charts_created_at ON charts(created_at DESC)`,
}
