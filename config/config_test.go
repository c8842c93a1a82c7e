package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Zero(t, cfg.Timeout)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
log_level: debug
timeout: 5s
memory_limit_pages: 512
window:
  max_width: 1920
  max_height: 1080
`))
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, uint32(512), cfg.MemoryLimitPages)
	assert.Equal(t, uint32(1920), cfg.Window.MaxWidth)
	assert.Equal(t, uint32(1080), cfg.Window.MaxHeight)
	assert.Equal(t, uint32(1024), cfg.Window.MaxCaption, "unset keys keep their defaults")
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad level", "log_level: loud\n", "validation failed"},
		{"negative timeout", "timeout: -1s\n", "validation failed"},
		{"too many pages", "memory_limit_pages: 70000\n", "validation failed"},
		{"zero width", "window:\n  max_width: 0\n", "validation failed"},
		{"unknown key", "colour: blue\n", "failed to parse config"},
		{"not yaml", "window: [\n", "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aqua-host.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.Level())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "log_level")
	assert.Contains(t, props, "timeout")
	assert.Contains(t, props, "memory_limit_pages")
	assert.Contains(t, props, "window")
}
