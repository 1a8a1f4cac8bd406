package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("expected 30s default timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.ProjectTTL != 30*time.Minute {
		t.Errorf("expected 30m default project TTL, got %v", cfg.ProjectTTL)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DAYHIVE_API_URL", "https://staging.example.com/api")
	t.Setenv("DAYHIVE_PROJECT_TTL", "5m")
	t.Setenv("DAYHIVE_DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.APIURL != "https://staging.example.com/api" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.ProjectTTL != 5*time.Minute {
		t.Errorf("expected 5m project TTL, got %v", cfg.ProjectTTL)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
}
