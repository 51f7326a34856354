package config

import (
	"errors"
	"testing"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvRevealTickMS, EnvCommitDelayMS, EnvDwellMS, EnvToastMS, EnvSeed,
		EnvCaptions, EnvLogFile, EnvMetricsAddr, EnvChime, EnvData,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Playback.RevealTick != 300*time.Millisecond {
		t.Fatalf("expected 300ms reveal tick, got %s", cfg.Playback.RevealTick)
	}
	if cfg.Playback.CommitDelay != 800*time.Millisecond {
		t.Fatalf("expected 800ms commit delay, got %s", cfg.Playback.CommitDelay)
	}
	if cfg.Playback.Dwell != 2*time.Second {
		t.Fatalf("expected 2s dwell, got %s", cfg.Playback.Dwell)
	}
	if cfg.Toast != 0 || cfg.Seed != 0 || cfg.Captions || cfg.Chime {
		t.Fatalf("unexpected non-zero defaults: %+v", cfg)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Fatalf("expected default log file, got %q", cfg.LogFile)
	}
}

func TestLoadRespectsOverridesAndFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRevealTickMS, "50")
	t.Setenv(EnvCommitDelayMS, "not-a-number")
	t.Setenv(EnvToastMS, " 1200 ")
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvCaptions, "YES")
	t.Setenv(EnvChime, "maybe")
	t.Setenv(EnvLogFile, "stderr")
	t.Setenv(EnvMetricsAddr, ":9102")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Playback.RevealTick != 50*time.Millisecond {
		t.Fatalf("expected 50ms reveal tick, got %s", cfg.Playback.RevealTick)
	}
	if cfg.Playback.CommitDelay != 800*time.Millisecond {
		t.Fatalf("expected fallback commit delay, got %s", cfg.Playback.CommitDelay)
	}
	if cfg.Toast != 1200*time.Millisecond {
		t.Fatalf("expected 1200ms toast, got %s", cfg.Toast)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Seed)
	}
	if !cfg.Captions {
		t.Fatal("expected captions enabled")
	}
	if cfg.Chime {
		t.Fatal("expected unparsable bool to fall back to false")
	}
	if cfg.LogFile != "stderr" || cfg.MetricsAddr != ":9102" {
		t.Fatalf("unexpected log/metrics settings: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero tick", EnvRevealTickMS, "0"},
		{"negative dwell", EnvDwellMS, "-5"},
		{"zero toast", EnvToastMS, "0"},
		{"bad seed", EnvSeed, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.key != EnvSeed && !errors.Is(err, domain.ErrInvalidTiming) {
				t.Fatalf("expected ErrInvalidTiming, got %v", err)
			}
		})
	}
}
