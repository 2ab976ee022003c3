package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
database:
  driver: mysql
  host: db.internal
  port: 3306
  user: insights
  password: secret
  name: analytics
ai:
  apiKey: test-key
  baseURL: https://api.groq.com/openai/v1
  model: llama-3.3-70b-versatile
  timeoutSeconds: 30
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.AI.Model != "llama-3.3-70b-versatile" {
		t.Errorf("AI.Model = %q", cfg.AI.Model)
	}
	if got := cfg.StageTimeout(); got != 30*time.Second {
		t.Errorf("StageTimeout() = %v, want 30s", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	path := writeConfig(t, `
database:
  host: localhost
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("default port = %d, want 3001", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("default driver = %q, want postgres", cfg.Database.Driver)
	}
	if got := cfg.StageTimeout(); got != 60*time.Second {
		t.Errorf("default StageTimeout() = %v, want 60s", got)
	}
}

func TestLoadAPIKeyFallback(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	path := writeConfig(t, `
ai:
  model: gpt-4o-mini
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.APIKey != "groq-key" {
		t.Errorf("APIKey = %q, want GROQ_API_KEY to win", cfg.AI.APIKey)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = 5432
	cfg.Database.User = "insights"
	cfg.Database.Password = "secret"
	cfg.Database.Name = "analytics"

	want := "host=localhost port=5432 user=insights password=secret dbname=analytics sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Errorf("PostgresDSN() = %q, want %q", got, want)
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = 3306
	cfg.Database.User = "insights"
	cfg.Database.Password = "secret"
	cfg.Database.Name = "analytics"

	want := "insights:secret@tcp(db.internal:3306)/analytics?parseTime=true&charset=utf8mb4&loc=UTC"
	if got := cfg.MySQLDSN(); got != want {
		t.Errorf("MySQLDSN() = %q, want %q", got, want)
	}
}
