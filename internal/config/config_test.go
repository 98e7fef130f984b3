package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MURAL_REDIS_ADDR", "localhost:6379")

	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %v, want :8080", cfg.ListenPort)
	}
	if cfg.SweepInterval != time.Minute {
		t.Errorf("SweepInterval = %v, want 1m", cfg.SweepInterval)
	}
	if cfg.RecurrenceInterval != 5*time.Minute {
		t.Errorf("RecurrenceInterval = %v, want 5m", cfg.RecurrenceInterval)
	}
	if cfg.SweepHoldTTL != 5*time.Minute {
		t.Errorf("SweepHoldTTL = %v, want 5m", cfg.SweepHoldTTL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %v, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
	if cfg.SeedFile != "" {
		t.Errorf("SeedFile should default to empty, got %v", cfg.SeedFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MURAL_REDIS_ADDR", "redis:6379")
	t.Setenv("MURAL_LISTEN_PORT", ":9090")
	t.Setenv("MURAL_SWEEP_INTERVAL", "30s")
	t.Setenv("MURAL_ALLOWED_HOSTS", `mural.home.lan, "mural.example.com"`)
	t.Setenv("MURAL_TRUST_PROXY", "true")
	t.Setenv("MURAL_REDIS_DB", "3")

	cfg := Load()

	if cfg.ListenPort != ":9090" {
		t.Errorf("ListenPort = %v, want :9090", cfg.ListenPort)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("SweepInterval = %v, want 30s", cfg.SweepInterval)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[1] != "mural.example.com" {
		t.Errorf("AllowedHosts = %v, want trimmed unquoted pair", cfg.AllowedHosts)
	}
	if !cfg.TrustProxy {
		t.Error("TrustProxy = false, want true")
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %v, want 3", cfg.RedisDB)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("MURAL_REDIS_ADDR", "localhost:6379")
	t.Setenv("MURAL_SWEEP_INTERVAL", "soon")
	t.Setenv("MURAL_PRETTY_LOG", "kinda")
	t.Setenv("MURAL_REDIS_POOL_SIZE", "many")

	cfg := Load()

	if cfg.SweepInterval != time.Minute {
		t.Errorf("invalid duration should fall back, got %v", cfg.SweepInterval)
	}
	if !cfg.PrettyLog {
		t.Error("invalid bool should fall back to default true")
	}
	if cfg.RedisPoolSize != 10 {
		t.Errorf("invalid int should fall back, got %v", cfg.RedisPoolSize)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(` a, "b" , , 'c'`)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitAndTrim() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitAndTrim()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if splitAndTrim("") != nil {
		t.Error("splitAndTrim(\"\") should be nil")
	}
}
