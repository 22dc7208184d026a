package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultConfigFillsEveryField(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultConfig()

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, uint16(5500), cfg.Connection.DefaultPort)
	assert.Equal(t, 10*time.Second, cfg.Connection.ConnectTimeout)
	assert.Equal(t, 180*time.Second, cfg.Connection.KeepAliveInterval)
	assert.Equal(t, uint16(5498), cfg.Tracker.Port)
	assert.Equal(t, 9090, cfg.Metrics.Port)

	require.NoError(t, Validate(cfg))
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Logging: LoggingConfig{Level: "DEBUG", Format: "json", Output: "stdout"},
		Connection: ConnectionConfig{
			DefaultPort: 5501,
		},
	}
	ApplyDefaults(cfg)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, uint16(5501), cfg.Connection.DefaultPort, "explicit values must survive ApplyDefaults")
	assert.Equal(t, 10*time.Second, cfg.Connection.ConnectTimeout, "unset fields still get defaults")
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()

	cfg := GetDefaultConfig()
	cfg.Logging.Level = "VERBOSE"

	err := Validate(cfg)
	assert.Error(t, err)
}

func TestLoadWithMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadReadsYAMLFileAndAppliesDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
logging:
  level: DEBUG
  format: json
  output: stdout
connection:
  default_port: 5510
  connect_timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, uint16(5510), cfg.Connection.DefaultPort)
	assert.Equal(t, 5*time.Second, cfg.Connection.ConnectTimeout)
	assert.Equal(t, 180*time.Second, cfg.Connection.KeepAliveInterval, "unset fields still get defaulted after file load")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Connection.DisplayName = "roundtrip-tester"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip-tester", loaded.Connection.DisplayName)
}

func TestMustLoadErrorsOnExplicitMissingPath(t *testing.T) {
	t.Parallel()

	_, err := MustLoad("/nonexistent/explicit/config.yaml")
	assert.Error(t, err)
}
