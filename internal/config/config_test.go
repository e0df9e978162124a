package config_test

import (
	"testing"
	"time"

	"github.com/boddenberg/digtecnico-client-go/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := config.Load("testdata/does-not-exist.env")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.RootURL != "http://localhost:3000/api" {
		t.Errorf("unexpected root url %q", cfg.RootURL)
	}
	if cfg.BaseURL != "http://localhost:3000/api/mobile" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Timeout)
	}
	if cfg.StorageNamespace != "@DigTecnico" {
		t.Errorf("unexpected namespace %q", cfg.StorageNamespace)
	}
}

func TestLoad_ProductionEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := config.Load("testdata/does-not-exist.env")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.BaseURL != "https://api.fibron.com/api/mobile" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
}

func TestLoad_ExplicitURLsOverride(t *testing.T) {
	t.Setenv("API_ROOT_URL", "http://10.0.2.2:3000/api/")
	t.Setenv("API_BASE_URL", "http://10.0.2.2:3000/api/v2/mobile/")

	cfg, err := config.Load("testdata/does-not-exist.env")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.RootURL != "http://10.0.2.2:3000/api" {
		t.Errorf("trailing slash not trimmed: %q", cfg.RootURL)
	}
	if cfg.BaseURL != "http://10.0.2.2:3000/api/v2/mobile" {
		t.Errorf("unexpected base url %q", cfg.BaseURL)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("APP_ENV", "qa")

	if _, err := config.Load("testdata/does-not-exist.env"); err == nil {
		t.Fatal("expected error for unknown APP_ENV")
	}
}

func TestLoad_InvalidTokenStore(t *testing.T) {
	t.Setenv("TOKEN_STORE", "sqlite")

	if _, err := config.Load("testdata/does-not-exist.env"); err == nil {
		t.Fatal("expected error for unknown TOKEN_STORE")
	}
}

func TestLoad_DotEnvDoesNotOverrideEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load("testdata/sample.env")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("env should win over .env, got %q", cfg.LogLevel)
	}
	if cfg.Mock.LoginShape != "snake" {
		t.Errorf("expected login shape from .env, got %q", cfg.Mock.LoginShape)
	}
}
