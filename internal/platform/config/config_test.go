package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestServiceDefaults(t *testing.T) {
	cfg := ServiceFrom(mapLookup(nil))

	if cfg.Port != 3001 {
		t.Errorf("expected default port 3001, got %d", cfg.Port)
	}
	if cfg.AllowedOrigin != "http://localhost:8080" {
		t.Errorf("expected default origin, got %q", cfg.AllowedOrigin)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected 10s shutdown timeout, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Addr() != ":3001" {
		t.Errorf("expected addr :3001, got %q", cfg.Addr())
	}
}

func TestServicePortEnvVar(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		set      bool
		want     int
	}{
		{"unset", "", false, 3001},
		{"empty", "", true, 3001},
		{"override", "4000", true, 4000},
		{"another port", "5000", true, 5000},
		{"not a number", "abc", true, 3001},
		{"zero", "0", true, 3001},
		{"negative", "-1", true, 3001},
		{"too large", "65536", true, 3001},
		{"max", "65535", true, 65535},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{}
			if tt.set {
				env["PORT"] = tt.envValue
			}
			if got := ServiceFrom(mapLookup(env)).Port; got != tt.want {
				t.Errorf("got port %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLoadServiceReadsProcessEnv(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("ALLOWED_ORIGIN", "https://app.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := LoadService()
	if cfg.Port != 4000 {
		t.Errorf("expected port 4000, got %d", cfg.Port)
	}
	if cfg.AllowedOrigin != "https://app.example" {
		t.Errorf("unexpected origin %q", cfg.AllowedOrigin)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
}

func TestInvalidShutdownTimeoutFallsBack(t *testing.T) {
	for _, v := range []string{"soon", "-5s", "0s"} {
		cfg := ServiceFrom(mapLookup(map[string]string{"SHUTDOWN_TIMEOUT": v}))
		if cfg.ShutdownTimeout != DefaultShutdownTimeout {
			t.Errorf("%q: expected default timeout, got %v", v, cfg.ShutdownTimeout)
		}
	}
}

func TestClientDefaults(t *testing.T) {
	cfg := ClientFrom(mapLookup(nil))
	if cfg.GreetingURL != "http://localhost:3001" {
		t.Errorf("unexpected greeting URL %q", cfg.GreetingURL)
	}
	if cfg.ElementID != "APIcontent" {
		t.Errorf("unexpected element id %q", cfg.ElementID)
	}
}

func TestClientOverrides(t *testing.T) {
	cfg := ClientFrom(mapLookup(map[string]string{
		"GREETING_URL":      "http://localhost:5000",
		"TARGET_ELEMENT_ID": "greeting",
	}))
	if cfg.GreetingURL != "http://localhost:5000" {
		t.Errorf("unexpected greeting URL %q", cfg.GreetingURL)
	}
	if cfg.ElementID != "greeting" {
		t.Errorf("unexpected element id %q", cfg.ElementID)
	}
}

func TestWebDefaults(t *testing.T) {
	cfg := WebFrom(mapLookup(map[string]string{"WEB_PORT": "nope"}))
	if cfg.Port != 8080 {
		t.Errorf("expected default web port 8080, got %d", cfg.Port)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
	if cfg.GreetingURL != DefaultGreetingURL {
		t.Errorf("unexpected greeting URL %q", cfg.GreetingURL)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("PORT=4555\nALLOWED_ORIGIN=http://dotenv.example\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// Existing values win over the file.
	t.Setenv("ALLOWED_ORIGIN", "http://process.example")
	t.Setenv("PORT", "")
	if err := os.Unsetenv("PORT"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}

	cfg := LoadService()
	if cfg.Port != 4555 {
		t.Errorf("expected port from env file, got %d", cfg.Port)
	}
	if cfg.AllowedOrigin != "http://process.example" {
		t.Errorf("expected process env to win, got %q", cfg.AllowedOrigin)
	}
}

func TestLoadDotEnvIgnoresMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
}
