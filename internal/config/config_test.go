package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("token ttl = %v", cfg.Auth.TokenTTL)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  addr: ":9090"
  read_timeout: 5s
storage:
  backend: sqlite
  path: /tmp/market.db
limits:
  requests_per_second: 50
  burst: 100
log:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Path != "/tmp/market.db" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Limits.RequestsPerSecond != 50 || cfg.Limits.Burst != 100 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
	// Unset fields keep their defaults.
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("write timeout = %v", cfg.Server.WriteTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("STORAGE_SEED", "false")
	t.Setenv("AUTH_SECRET", "env-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Storage.Seed {
		t.Error("seed not overridden")
	}
	if cfg.Auth.Secret != "env-secret" {
		t.Errorf("secret = %q", cfg.Auth.Secret)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	if _, err := Load(""); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}
