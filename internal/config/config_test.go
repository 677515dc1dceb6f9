package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "FITCOACH_STORE", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL", "ALLOWED_ORIGINS", "ENV"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "3001" {
		t.Errorf("Port = %q, want 3001", cfg.Port)
	}
	if cfg.Store != "users.json" {
		t.Errorf("Store = %q, want users.json", cfg.Store)
	}
	if cfg.GeminiAPIKey != "" {
		t.Errorf("GeminiAPIKey = %q, want empty", cfg.GeminiAPIKey)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.IsProduction() {
		t.Error("IsProduction() = true by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("FITCOACH_STORE", "redis://localhost:6379/0")
	t.Setenv("API_KEY", "legacy")
	t.Setenv("GEMINI_API_KEY", " key-1 ")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://fit.example.com ,")
	t.Setenv("ENV", "Production")

	cfg := Load()
	if cfg.Port != "8080" || cfg.Store != "redis://localhost:6379/0" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.GeminiAPIKey != "key-1" {
		t.Errorf("GeminiAPIKey = %q, want GEMINI_API_KEY to win", cfg.GeminiAPIKey)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://fit.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false for ENV=Production")
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9090\n"), 0600); err != nil {
		t.Fatal(err)
	}
	// godotenv.Load never overrides variables that are already set, so
	// unset PORT for the duration of the test.
	os.Unsetenv("PORT")

	if err := godotenv.Load(path); err != nil {
		t.Fatalf("godotenv.Load() error = %v", err)
	}
	if cfg := Load(); cfg.Port != "9090" {
		t.Errorf("Port = %q, want value from .env", cfg.Port)
	}
}
