package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("expected default host localhost, got %q", cfg.Host)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Addr() != "localhost:8080" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("NGROK_ENABLED", "true")
	t.Setenv("NGROK_DOMAIN", "game.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:9090" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
	if !cfg.Debug {
		t.Error("expected debug to be enabled")
	}
	if !cfg.NgrokEnabled || cfg.NgrokDomain != "game.example.com" {
		t.Errorf("ngrok settings not parsed: %+v", cfg)
	}
}

func TestLoadBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric port")
	}
}
