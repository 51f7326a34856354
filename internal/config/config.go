// Package config resolves runtime settings from environment variables.
// Command-line flags in cmd/voicemode override what Load returns.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/voicemode/internal/domain"
)

// Env var names.
const (
	EnvRevealTickMS  = "VOICEMODE_REVEAL_TICK_MS"
	EnvCommitDelayMS = "VOICEMODE_COMMIT_DELAY_MS"
	EnvDwellMS       = "VOICEMODE_DWELL_MS"
	EnvToastMS       = "VOICEMODE_TOAST_MS"
	EnvSeed          = "VOICEMODE_SEED"
	EnvCaptions      = "VOICEMODE_CAPTIONS"
	EnvLogFile       = "VOICEMODE_LOG_FILE"
	EnvMetricsAddr   = "VOICEMODE_METRICS_ADDR"
	EnvChime         = "VOICEMODE_CHIME"
	EnvData          = "VOICEMODE_DATA"
)

// DefaultLogFile keeps log output out of the TUI.
const DefaultLogFile = ".voicemode-logs/voicemode.log"

// Config stores runtime configuration.
type Config struct {
	Playback PlaybackConfig
	// Toast overrides the catalog's toast duration when non-zero.
	Toast time.Duration
	// Seed makes the conversation pick reproducible. Zero means random.
	Seed        uint64
	Captions    bool
	LogFile     string
	MetricsAddr string
	Chime       bool
	DataPath    string
}

type PlaybackConfig struct {
	RevealTick  time.Duration
	CommitDelay time.Duration
	Dwell       time.Duration
}

// Load resolves configuration from environment variables and defaults.
// Unparsable values fall back to the default; explicit non-positive
// timings are rejected.
func Load() (Config, error) {
	cfg := Config{
		Captions:    envOrDefaultBool(EnvCaptions, false),
		LogFile:     envOrDefault(EnvLogFile, DefaultLogFile),
		MetricsAddr: envOrDefault(EnvMetricsAddr, ""),
		Chime:       envOrDefaultBool(EnvChime, false),
		DataPath:    envOrDefault(EnvData, ""),
	}

	var err error
	if cfg.Playback.RevealTick, err = envMillis(EnvRevealTickMS, 300); err != nil {
		return Config{}, err
	}
	if cfg.Playback.CommitDelay, err = envMillis(EnvCommitDelayMS, 800); err != nil {
		return Config{}, err
	}
	if cfg.Playback.Dwell, err = envMillis(EnvDwellMS, 2000); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(os.Getenv(EnvToastMS)) != "" {
		if cfg.Toast, err = envMillis(EnvToastMS, 0); err != nil {
			return Config{}, err
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvSeed)); v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, perr)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

func envMillis(key string, fallback int) (time.Duration, error) {
	ms := envOrDefaultInt(key, fallback)
	if ms <= 0 {
		return 0, fmt.Errorf("%s=%d: %w", key, ms, domain.ErrInvalidTiming)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func envOrDefault(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envOrDefaultInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDefaultBool(key string, fallback bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}
