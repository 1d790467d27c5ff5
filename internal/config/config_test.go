package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Graph.DefaultDepth != 1 {
		t.Errorf("default depth = %d", cfg.Graph.DefaultDepth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logging.Level)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
server:
  port: 9090
  host: 127.0.0.1
openalex:
  mailto: team@example.org
cache:
  path: ` + filepath.Join(dir, "cache.db") + `
  ttl: 1h
graph:
  default_depth: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("host = %q", cfg.Server.Host)
	}
	if cfg.OpenAlex.Mailto != "team@example.org" {
		t.Errorf("mailto = %q", cfg.OpenAlex.Mailto)
	}
	if cfg.Cache.TTL.Std() != time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if cfg.Graph.DefaultDepth != 2 {
		t.Errorf("depth = %d", cfg.Graph.DefaultDepth)
	}
	// Unset fields keep their defaults.
	if cfg.Graph.DefaultMaxNodes != 300 {
		t.Errorf("max nodes = %d", cfg.Graph.DefaultMaxNodes)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONET_PORT", "7070")
	t.Setenv("CONET_CACHE_PATH", filepath.Join(dir, "env.db"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("env override lost, port = %d", cfg.Server.Port)
	}
}

func TestInvalidPort(t *testing.T) {
	t.Setenv("CONET_PORT", "not-a-number")
	t.Setenv("CONET_CACHE_PATH", filepath.Join(t.TempDir(), "c.db"))
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for invalid CONET_PORT")
	}
}

func TestPortOutOfRange(t *testing.T) {
	t.Setenv("CONET_PORT", "99999")
	t.Setenv("CONET_CACHE_PATH", filepath.Join(t.TempDir(), "c.db"))
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
