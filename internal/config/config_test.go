package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("RECOMPUTE_MODE", "")
	t.Setenv("PIPELINE_API_KEY", "new-key, old-key,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.Port)
	}
	if cfg.CacheBackend != "database" || cfg.RecomputeMode != "async" {
		t.Errorf("unexpected defaults %s/%s", cfg.CacheBackend, cfg.RecomputeMode)
	}
	if cfg.SourceTimeout != 10*time.Second {
		t.Errorf("expected 10s source timeout, got %s", cfg.SourceTimeout)
	}
	if len(cfg.PipelineAPIKeys) != 2 || cfg.PipelineAPIKeys[1] != "old-key" {
		t.Errorf("unexpected pipeline keys %v", cfg.PipelineAPIKeys)
	}
	if Get() != cfg {
		t.Error("expected Get to return the loaded configuration")
	}
}

func TestLoadRejectsUnknownModes(t *testing.T) {
	t.Run("cache_backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "memcached")
		if _, err := Load(); err == nil {
			t.Error("expected an error for an unknown cache backend")
		}
	})

	t.Run("recompute_mode", func(t *testing.T) {
		t.Setenv("RECOMPUTE_MODE", "cron")
		if _, err := Load(); err == nil {
			t.Error("expected an error for an unknown recompute mode")
		}
	})
}

func TestParsersFallBack(t *testing.T) {
	t.Setenv("X_DURATION", "soon")
	t.Setenv("X_INT", "-3")
	t.Setenv("X_BOOL", "maybe")

	if got := getDuration("X_DURATION", time.Minute); got != time.Minute {
		t.Errorf("getDuration = %s, want 1m", got)
	}
	if got := getInt("X_INT", 4); got != 4 {
		t.Errorf("getInt = %d, want 4", got)
	}
	if got := getBool("X_BOOL", true); !got {
		t.Error("getBool should fall back to true")
	}

	t.Setenv("X_DURATION", "250ms")
	if got := getDuration("X_DURATION", time.Minute); got != 250*time.Millisecond {
		t.Errorf("getDuration = %s, want 250ms", got)
	}
}
