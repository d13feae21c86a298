package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	content := `token: abc123
base_api_url: https://quip.internal.example.com
timeout_seconds: 30
rate_limit_threshold: 20
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Token != "abc123" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.BaseAPIURL != "https://quip.internal.example.com" {
		t.Errorf("BaseAPIURL = %q", cfg.BaseAPIURL)
	}
	if cfg.TimeoutSeconds != 30 || cfg.RateLimitThreshold != 20 {
		t.Errorf("numbers = %d, %d", cfg.TimeoutSeconds, cfg.RateLimitThreshold)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() succeeded for a missing explicit path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte(":\tnot yaml ["), 0o600)

	if _, err := Load(path); err == nil {
		t.Error("Load() succeeded on invalid YAML")
	}
}

func TestResolveToken(t *testing.T) {
	cfg := Config{Token: "direct"}
	tok, err := cfg.ResolveToken()
	if err != nil || tok != "direct" {
		t.Errorf("ResolveToken() = %q, %v", tok, err)
	}

	path := filepath.Join(t.TempDir(), "token")
	os.WriteFile(path, []byte("from-file\n"), 0o600)
	cfg = Config{TokenFile: path}
	tok, err = cfg.ResolveToken()
	if err != nil || tok != "from-file" {
		t.Errorf("ResolveToken() from file = %q, %v", tok, err)
	}

	if _, err := (Config{}).ResolveToken(); err == nil {
		t.Error("ResolveToken() succeeded with nothing configured")
	}
}
