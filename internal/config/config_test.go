package config

import (
	"testing"
	"time"

	"sheetviz/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/sheetviz?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "uploads/files", cfg.Storage.BasePath)
	assert.Equal(t, DefaultMaxUploadBytes, cfg.Upload.MaxBytes)
	assert.Equal(t, 10*time.Minute, cfg.Upload.CacheTTL)
	assert.Equal(t, "6060", cfg.Ops.Port)
	assert.False(t, cfg.Ops.Profiler)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/sheetviz")
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("ANALYSIS_CACHE_TTL", "90s")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_PORT", "6061")
	t.Setenv("SPREADSHEET_SHEET", "Data")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxBytes)
	assert.Equal(t, 90*time.Second, cfg.Upload.CacheTTL)
	assert.True(t, cfg.Ops.Profiler)
	assert.Equal(t, "6061", cfg.Ops.Port)
	assert.Equal(t, "Data", cfg.Upload.Sheet)
}

func TestOpsPortPrecedence(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/sheetviz")
	t.Setenv("PPROF_PORT", "6061")
	t.Setenv("OPS_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Ops.Port)
	assert.False(t, cfg.Ops.Profiler)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"DATABASE_URL": ""}},
		{"upload limit above 5MB", map[string]string{"MAX_UPLOAD_BYTES": "6000000"}},
		{"negative upload limit", map[string]string{"MAX_UPLOAD_BYTES": "-1"}},
		{"pprof on server port", map[string]string{"PPROF_ENABLED": "true", "PPROF_PORT": "8080"}},
		{"ops on server port", map[string]string{"OPS_PORT": "8080"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://db/sheetviz")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
