// Package config loads relation-mcp configuration from TOML files with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/relationtools/relation-mcp/internal/common"
)

// placeholder is used when no subdomain or token is configured. Requests
// built from it target a non-existent host and fail at connect time.
const placeholder = "placeholder"

// apiDomain is the fixed domain of the re:lation API.
const apiDomain = "relationapp.jp"

// RelationConfig holds re:lation API access configuration.
type RelationConfig struct {
	Subdomain string `toml:"subdomain"`
	Token     string `toml:"token"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the request timeout duration.
func (c *RelationConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 300 * time.Second
	}
	return d
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// Config holds all relation-mcp configuration. Loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	Relation RelationConfig       `toml:"relation"`
	Server   ServerConfig         `toml:"server"`
	Logging  common.LoggingConfig `toml:"logging"`
}

// BaseURL derives the re:lation API base URL from the configured subdomain.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("https://%s.%s/api/v2", c.Relation.Subdomain, apiDomain)
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Relation: RelationConfig{
			Subdomain: placeholder,
			Token:     placeholder,
			Timeout:   "300s",
		},
		Server: ServerConfig{
			Name: "relation-mcp",
			Port: "4270",
		},
		Logging: common.LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}

// Load loads configuration from an optional TOML file with environment
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// Environment values take precedence over file values.
func applyEnvOverrides(cfg *Config) {
	if sd := os.Getenv("RELATION_SUBDOMAIN"); sd != "" {
		cfg.Relation.Subdomain = sd
	}
	if token := os.Getenv("RELATION_API_TOKEN"); token != "" {
		cfg.Relation.Token = token
	}
	if port := os.Getenv("RELATION_MCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if level := os.Getenv("RELATION_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}
