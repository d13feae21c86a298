// Package config loads the optional CLI configuration file. Values from the
// file are defaults; command-line flags override them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the user's home directory when no --config
// flag is given.
const DefaultFileName = ".ansiquip.yaml"

// Config holds the file-configurable settings.
type Config struct {
	// Token is the Quip API token. Prefer a vaulted/secret-managed value
	// over keeping it in this file.
	Token string `yaml:"token"`

	// TokenFile points at a file whose contents are the token. Used when
	// Token is empty.
	TokenFile string `yaml:"token_file"`

	// BaseAPIURL overrides the API host, e.g. for a corporate deployment.
	BaseAPIURL string `yaml:"base_api_url"`

	// TimeoutSeconds bounds each API request.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// RateLimitThreshold is the remaining-quota level that triggers pacing
	// between calls.
	RateLimitThreshold int `yaml:"rate_limit_threshold"`
}

// Load reads the config file at path. An empty path means the default
// location, and a missing file there is not an error: the zero Config is
// returned so flags alone can drive the CLI.
func Load(path string) (Config, error) {
	defaulted := path == ""
	if defaulted {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, nil
		}
		path = filepath.Join(home, DefaultFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if defaulted && os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveToken returns the token, reading TokenFile when Token is unset.
func (c Config) ResolveToken() (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	if c.TokenFile == "" {
		return "", fmt.Errorf("no token configured")
	}
	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	token := string(data)
	// Trim the trailing newline editors leave behind.
	for len(token) > 0 && (token[len(token)-1] == '\n' || token[len(token)-1] == '\r') {
		token = token[:len(token)-1]
	}
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", c.TokenFile)
	}
	return token, nil
}
