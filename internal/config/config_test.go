package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBM-i2/analyze-connect/internal/apperr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connector.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
port = "4000"
schema_path = "static/schema.xml"

[socrata]
url = "https://data.cityofnewyork.us/resource/pasr-j7fb.json"
api_token = "token"
requests_per_second = 5.0
burst = 2

[memgraph]
uri = "bolt://localhost:7687"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "static/schema.xml", cfg.Server.SchemaPath)
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "token", cfg.Socrata.APIToken)
	assert.Equal(t, 5.0, cfg.Socrata.RequestsPerSecond)
	assert.Equal(t, 2, cfg.Socrata.Burst)
	assert.Equal(t, 30, cfg.Socrata.TimeoutSeconds)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
	assert.Equal(t, "bolt://localhost:7687", cfg.Memgraph.URI)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[server\nport = "))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("SOCRATA_URL", "https://example.org/resource/x.json")
	t.Setenv("SOCRATA_API_TOKEN", "env-token")
	t.Setenv("METRICS_ENABLED", "true")
	t.Setenv("MEMGRAPH_URI", "bolt://graph:7687")

	cfg := Default()
	cfg.Socrata.APIToken = "file-token"
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "https://example.org/resource/x.json", cfg.Socrata.URL)
	assert.Equal(t, "env-token", cfg.Socrata.APIToken)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "bolt://graph:7687", cfg.Memgraph.URI)
}

func TestApplyEnvBadBool(t *testing.T) {
	t.Setenv("METRICS_ENABLED", "sometimes")
	assert.Error(t, Default().ApplyEnv())
}

func TestPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, DefaultPath, Path())

	t.Setenv("CONFIG_PATH", "/etc/connector.toml")
	assert.Equal(t, "/etc/connector.toml", Path())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.ErrorIs(t, err, apperr.ErrConfiguration)
	assert.Contains(t, err.Error(), "socrata.url")

	cfg.Socrata.URL = "https://example.org"
	err = cfg.Validate()
	require.ErrorIs(t, err, apperr.ErrConfiguration)
	assert.Contains(t, err.Error(), "socrata.api_token")

	cfg.Socrata.APIToken = "t"
	assert.NoError(t, cfg.Validate())
}
