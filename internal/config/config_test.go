package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

log:
  level: "debug"
  format: "console"

translation:
  source_lang: "en"
  provider_timeout: "20s"
  rate_limit_interval: "2s"
  concurrency: 8

providers:
  deepl_api_key: "deepl-key:fx"
  libretranslate_mirrors: "https://a.example, https://b.example"

cache:
  ttl: "1h"

hospital:
  name: "St. Mary's"
  phone: "555-0100"
  primary_color: "#003366"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "config.yaml", validYAML))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("unexpected server %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected read timeout 5s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 60*time.Second {
		t.Errorf("expected default write timeout, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Translation.ProviderTimeout != 20*time.Second || cfg.Translation.Concurrency != 8 {
		t.Errorf("unexpected translation %+v", cfg.Translation)
	}
	if cfg.Translation.RetryMax != 3 || cfg.Translation.RetryBaseDelay != 500*time.Millisecond {
		t.Errorf("expected retry defaults, got %+v", cfg.Translation)
	}
	if cfg.Cache.TTL != time.Hour || cfg.Cache.KeyPrefix != "medlai:" {
		t.Errorf("unexpected cache %+v", cfg.Cache)
	}
	if got := cfg.Providers.PaidProviders(); !reflect.DeepEqual(got, []string{"deepl"}) {
		t.Errorf("expected [deepl], got %v", got)
	}
	if got := cfg.Providers.LibreMirrors(); !reflect.DeepEqual(got, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("unexpected mirrors %v", got)
	}
	if b := cfg.Hospital.Branding(); b.Name != "St. Mary's" || b.SecondaryColor != "#f0f6ff" {
		t.Errorf("unexpected branding %+v", b)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeFile(t, dir, "config.yaml", validYAML))
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
	if got := cfg.Providers.PaidProviders(); !reflect.DeepEqual(got, []string{"deepl", "openai"}) {
		t.Errorf("expected [deepl openai], got %v", got)
	}
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 || cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("unexpected defaults %+v %+v", cfg.Server, cfg.Log)
	}
	if cfg.Translation.RateLimitInterval != time.Second || cfg.Translation.SourceLang != "en" {
		t.Errorf("unexpected translation defaults %+v", cfg.Translation)
	}
	if len(cfg.Providers.PaidProviders()) != 0 {
		t.Errorf("expected no paid providers, got %v", cfg.Providers.PaidProviders())
	}
	if cfg.Providers.LibreMirrors() != nil {
		t.Errorf("expected no mirrors, got %v", cfg.Providers.LibreMirrors())
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "GOOGLE_TRANSLATE_API_KEY=from-dotenv\nHOSPITAL_NAME=Dotenv General\n")
	t.Setenv("HOSPITAL_NAME", "Process Env")
	t.Cleanup(func() { os.Unsetenv("GOOGLE_TRANSLATE_API_KEY") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Providers.GoogleAPIKey != "from-dotenv" {
		t.Errorf("expected key from .env, got %q", cfg.Providers.GoogleAPIKey)
	}
	if cfg.Hospital.Name != "Process Env" {
		t.Errorf(".env must not override the environment, got %q", cfg.Hospital.Name)
	}
}

func TestLoad_MissingExplicitFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("config", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", filepath.Join(dir, "missing.yaml"))
		if _, err := Load(); err == nil {
			t.Error("expected error for missing explicit config")
		}
	})

	t.Run("dotenv", func(t *testing.T) {
		t.Setenv("DOTENV_PATH", filepath.Join(dir, "missing.env"))
		if _, err := Load(); err == nil {
			t.Error("expected error for missing explicit .env")
		}
	})
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info", Format: "json"},
		Translation: TranslationConfig{
			SourceLang:        "en",
			ProviderTimeout:   15 * time.Second,
			RateLimitInterval: time.Second,
			RetryMax:          3,
			RetryBaseDelay:    500 * time.Millisecond,
			Concurrency:       4,
		},
		Hospital: HospitalConfig{PrimaryColor: "#fff", SecondaryColor: "#00aaff"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"unsupported source", func(c *Config) { c.Translation.SourceLang = "xx" }, "source_lang"},
		{"zero timeout", func(c *Config) { c.Translation.ProviderTimeout = 0 }, "provider_timeout"},
		{"negative interval", func(c *Config) { c.Translation.RateLimitInterval = -time.Second }, "rate_limit_interval"},
		{"zero concurrency", func(c *Config) { c.Translation.Concurrency = 0 }, "concurrency"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Minute }, "cache.ttl"},
		{"bad color", func(c *Config) { c.Hospital.PrimaryColor = "blue" }, "primary_color"},
		{"rate limit disabled", func(c *Config) { c.Translation.RateLimitInterval = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTranslationConfig_RetryConfig(t *testing.T) {
	cfg := validConfig().Translation
	cfg.RetryMax = 1
	cfg.RetryBaseDelay = time.Second

	retry := cfg.RetryConfig()
	if retry.MaxRetries != 1 || retry.BaseDelay != time.Second {
		t.Errorf("unexpected retry %+v", retry)
	}
}
