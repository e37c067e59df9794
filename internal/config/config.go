package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/IBM-i2/analyze-connect/internal/apperr"
)

// DefaultPath is read when CONFIG_PATH is not set.
const DefaultPath = "config/connector.toml"

type ServerConfig struct {
	Port                string `toml:"port"`
	SchemaPath          string `toml:"schema_path"`
	ChartingSchemesPath string `toml:"charting_schemes_path"`
	GinMode             string `toml:"gin_mode"`
}

type SocrataConfig struct {
	URL               string  `toml:"url"`
	APIToken          string  `toml:"api_token"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// MemgraphConfig points at the optional demo graph. An empty URI means the
// demo service serves its fixed row.
type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Socrata  SocrataConfig  `toml:"socrata"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Memgraph MemgraphConfig `toml:"memgraph"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "3700",
			GinMode: "release",
		},
		Socrata: SocrataConfig{
			TimeoutSeconds: 30,
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error; the defaults are returned as they are.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// Path returns CONFIG_PATH, or DefaultPath when it is unset.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// ApplyEnv overrides file settings with the environment variables that are
// set. Malformed booleans are reported rather than ignored.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("SOCRATA_URL"); v != "" {
		c.Socrata.URL = v
	}
	if v := os.Getenv("SOCRATA_API_TOKEN"); v != "" {
		c.Socrata.APIToken = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		c.Metrics.Enabled = enabled
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("MEMGRAPH_URI"); v != "" {
		c.Memgraph.URI = v
	}
	if v := os.Getenv("MEMGRAPH_USER"); v != "" {
		c.Memgraph.User = v
	}
	if v := os.Getenv("MEMGRAPH_PASSWORD"); v != "" {
		c.Memgraph.Password = v
	}
	return nil
}

// Validate checks the settings the connector cannot start without.
func (c *Config) Validate() error {
	if c.Socrata.URL == "" {
		return &apperr.ConfigurationError{Field: "socrata.url"}
	}
	if c.Socrata.APIToken == "" {
		return &apperr.ConfigurationError{Field: "socrata.api_token"}
	}
	if c.Server.Port == "" {
		return &apperr.ConfigurationError{Field: "server.port"}
	}
	return nil
}
