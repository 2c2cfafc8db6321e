package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TemporalInept/lituus/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lituus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, "trees", cfg.Output.Directory)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Compress)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Otel.Endpoint)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
pipeline:
  workers: 8
catalog:
  overlay: overlays/c20.yaml
output:
  directory: out
  format: gob
  compress: true
logging:
  level: debug
  json: true
otel:
  endpoint: localhost:4317
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.Equal(t, "overlays/c20.yaml", cfg.Catalog.Overlay)
	assert.Equal(t, "out", cfg.Output.Directory)
	assert.Equal(t, "gob", cfg.Output.Format)
	assert.True(t, cfg.Output.Compress)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.JSON)
	assert.Equal(t, "localhost:4317", cfg.Otel.Endpoint)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LITUUS_PIPELINE_WORKERS", "16")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Pipeline.Workers)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "zero workers",
			content: "pipeline:\n  workers: 0\n",
			wantErr: config.ErrInvalidWorkers,
		},
		{
			name:    "bad format",
			content: "output:\n  format: xml\n",
			wantErr: config.ErrInvalidFormat,
		},
		{
			name:    "bad log level",
			content: "logging:\n  level: loud\n",
			wantErr: config.ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := config.Load(path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
