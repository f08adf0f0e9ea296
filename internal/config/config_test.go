package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
database:
  driver: postgres
  dbname: firstaid
storage:
  type: minio
jwt:
  secret: short
  expire_hours: 2
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.DBName != "firstaid" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.JWT.ExpireTime != 2*time.Hour {
		t.Fatalf("expected 2h token lifetime, got %v", cfg.JWT.ExpireTime)
	}
	if cfg.Leaderboard.CacheTTL() != 30*time.Second {
		t.Fatalf("expected 30s leaderboard ttl, got %v", cfg.Leaderboard.CacheTTL())
	}
	if cfg.RateLimit.Window() != time.Minute {
		t.Fatalf("expected 1m rate limit window, got %v", cfg.RateLimit.Window())
	}
}

func TestLoadConfigRejectsWeakSecretsInRelease(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
storage:
  type: minio
jwt:
  secret: too-short
session:
  secret: also-too-short
`)

	if _, err := LoadConfig(dir); err == nil {
		t.Fatalf("expected release mode to reject short secrets")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
