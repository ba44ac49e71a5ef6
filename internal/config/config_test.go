package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session.TTL = %v", cfg.Session.TTL)
	}
	if cfg.Session.CookieName != "jokediary.sid" {
		t.Errorf("Session.CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("Auth.BcryptCost = %d", cfg.Auth.BcryptCost)
	}
	if cfg.DB.AcquireTimeout != 5*time.Second {
		t.Errorf("DB.AcquireTimeout = %v", cfg.DB.AcquireTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:4000" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("DB_MAX_OPEN", "42")
	t.Setenv("MEILI_MASTER_KEY", "master")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("Session.TTL = %v", cfg.Session.TTL)
	}
	if cfg.DB.MaxOpen != 42 {
		t.Errorf("DB.MaxOpen = %d", cfg.DB.MaxOpen)
	}
	if cfg.MeiliSearch.APIKey != "master" {
		t.Errorf("MeiliSearch.APIKey = %q", cfg.MeiliSearch.APIKey)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		AppEnv:  "production",
		Session: SessionConfig{Secret: defaultSessionSecret, TTL: time.Hour, Store: "database"},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for default secret in production")
	}

	cfg.Session.Secret = "s3cret"
	cfg.Session.Store = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for redis store without address")
	}

	cfg.Redis.Addr = "localhost:6379"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
