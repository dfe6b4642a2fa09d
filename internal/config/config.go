// Package config loads the player configuration from TOML files.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appDirName = "indie-pulse"

type Config struct {
	// Catalog is the hosted backend streams are resolved against.
	Catalog CatalogConfig `koanf:"catalog"`

	// Playback tunes the engine's retry and queue behavior.
	Playback PlaybackConfig `koanf:"playback"`

	// Last.fm scrobbling (enables scrobbling when configured)
	Lastfm LastfmConfig `koanf:"lastfm"`

	// UI holds terminal presentation settings.
	UI UIConfig `koanf:"ui"`
}

// CatalogConfig holds the backend connection settings.
type CatalogConfig struct {
	URL    string `koanf:"url"`     // e.g., "https://api.indiepulse.fm"
	APIKey string `koanf:"api_key"` // bearer token for signed stream URLs
}

// PlaybackConfig tunes the engine. Zero values mean defaults.
type PlaybackConfig struct {
	ResolveAttempts    int     `koanf:"resolve_attempts"`     // URL resolution tries per track (default: 3)
	ResolveRetrySecs   float64 `koanf:"resolve_retry_secs"`   // fixed delay between tries (default: 2)
	TransportAttempts  int     `koanf:"transport_attempts"`   // stream reloads before giving up (default: 3)
	TransportRetrySecs float64 `koanf:"transport_retry_secs"` // fixed delay between reloads (default: 2)
	PreviousThreshSecs float64 `koanf:"previous_thresh_secs"` // Previous restarts past this (default: 3)
	QueueMax           int     `koanf:"queue_max"`            // queue bound (default: 1000)
	HistoryMax         int     `koanf:"history_max"`          // history bound (default: 100)
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" or "none" (default: unicode)
}

// LastfmConfig holds Last.fm scrobbling configuration.
type LastfmConfig struct {
	APIKey     string `koanf:"api_key"`
	APISecret  string `koanf:"api_secret"`
	SessionKey string `koanf:"session_key"`
}

func Load() (*Config, error) {
	return loadPaths(getConfigPaths())
}

func loadPaths(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Normalize catalog URL (remove trailing slash)
	cfg.Catalog.URL = strings.TrimSuffix(cfg.Catalog.URL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/indie-pulse/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDirName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// HasCatalogConfig returns true if a backend is configured.
func (c *Config) HasCatalogConfig() bool {
	return c.Catalog.URL != ""
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// ResolveRetryDelay returns the configured resolution retry delay.
func (c *Config) ResolveRetryDelay() time.Duration {
	return secondsOrZero(c.Playback.ResolveRetrySecs)
}

// TransportRetryDelay returns the configured stream reload delay.
func (c *Config) TransportRetryDelay() time.Duration {
	return secondsOrZero(c.Playback.TransportRetrySecs)
}

// PreviousThreshold returns the configured restart threshold.
func (c *Config) PreviousThreshold() time.Duration {
	return secondsOrZero(c.Playback.PreviousThreshSecs)
}

func secondsOrZero(secs float64) time.Duration {
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
