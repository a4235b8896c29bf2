// Package config holds the server settings and the viper-backed manager that
// loads them from an optional config file and FREEFLIX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Name is used for the config file base name and the environment prefix.
const Name = "freeflix"

// EnvKeyReplacer maps nested keys (metadata.tmdbApiKey) to env names
// (FREEFLIX_METADATA_TMDBAPIKEY).
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// ServerSettings controls the HTTP listener.
type ServerSettings struct {
	Host string `json:"host" mapstructure:"host"`
	Port int    `json:"port" mapstructure:"port"`

	// AllowedOrigins are extra CORS origins on top of local/private-network ones.
	AllowedOrigins []string `json:"allowedOrigins" mapstructure:"allowedOrigins"`
}

// Addr returns the listen address.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetadataSettings configures the TMDB client and its cache.
type MetadataSettings struct {
	TMDBAPIKey     string `json:"tmdbApiKey" mapstructure:"tmdbApiKey"`
	Language       string `json:"language" mapstructure:"language"`
	CacheDir       string `json:"cacheDir" mapstructure:"cacheDir"`
	CacheTTLHours  int    `json:"cacheTtlHours" mapstructure:"cacheTtlHours"`
	Demo           bool   `json:"demo" mapstructure:"demo"` // Serve mock data only
	RequestTimeout int    `json:"requestTimeoutSeconds" mapstructure:"requestTimeoutSeconds"`
	RequestsPerSec int    `json:"requestsPerSecond" mapstructure:"requestsPerSecond"`
}

// Timeout returns the per-request TMDB timeout.
func (m MetadataSettings) Timeout() time.Duration {
	return time.Duration(m.RequestTimeout) * time.Second
}

// SearchSettings configures search debouncing.
type SearchSettings struct {
	DebounceMillis int `json:"debounceMillis" mapstructure:"debounceMillis"`
	MinQueryLength int `json:"minQueryLength" mapstructure:"minQueryLength"`
}

// Debounce returns the debounce window.
func (s SearchSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMillis) * time.Millisecond
}

// PlayerSettings configures playback sessions.
type PlayerSettings struct {
	DefaultSource   string `json:"defaultSource" mapstructure:"defaultSource"`
	SessionTTLHours int    `json:"sessionTtlHours" mapstructure:"sessionTtlHours"`
}

// SessionTTL returns the idle lifetime of a playback session.
func (p PlayerSettings) SessionTTL() time.Duration {
	return time.Duration(p.SessionTTLHours) * time.Hour
}

// LogSettings configures the optional rotating log file.
type LogSettings struct {
	File       string `json:"file" mapstructure:"file"`
	MaxSizeMB  int    `json:"maxSizeMb" mapstructure:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays" mapstructure:"maxAgeDays"`
}

// RateLimitSettings configures per-IP limiting on the API.
type RateLimitSettings struct {
	RequestsPerSecond float64 `json:"requestsPerSecond" mapstructure:"requestsPerSecond"`
	Burst             int     `json:"burst" mapstructure:"burst"`
}

// Settings is the full server configuration.
type Settings struct {
	Server    ServerSettings    `json:"server" mapstructure:"server"`
	Metadata  MetadataSettings  `json:"metadata" mapstructure:"metadata"`
	Search    SearchSettings    `json:"search" mapstructure:"search"`
	Player    PlayerSettings    `json:"player" mapstructure:"player"`
	Log       LogSettings       `json:"log" mapstructure:"log"`
	RateLimit RateLimitSettings `json:"rateLimit" mapstructure:"rateLimit"`
}

// DefaultSettings returns the factory configuration.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Host: "0.0.0.0", Port: 7777},
		Metadata: MetadataSettings{
			Language:       "en-US",
			CacheDir:       "cache",
			CacheTTLHours:  24,
			RequestTimeout: 10,
			RequestsPerSec: 40,
		},
		Search: SearchSettings{DebounceMillis: 500, MinQueryLength: 2},
		Player: PlayerSettings{DefaultSource: "vidsrc-cc", SessionTTLHours: 6},
		Log: LogSettings{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		RateLimit: RateLimitSettings{RequestsPerSecond: 20, Burst: 40},
	}
}

// Manager loads settings through viper. The zero value is not usable; use NewManager.
type Manager struct {
	mu   sync.Mutex
	v    *viper.Viper
	path string
}

// NewManager creates a manager reading from path. An empty path searches the
// working directory for freeflix.{yaml,json,toml}; a missing file is not an error.
func NewManager(path string) *Manager {
	return NewManagerWithFs(afero.NewOsFs(), path)
}

// NewManagerWithFs is NewManager over an explicit filesystem.
func NewManagerWithFs(fs afero.Fs, path string) *Manager {
	v := viper.New()
	v.SetFs(fs)
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(Name)
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(Name)
	v.SetEnvKeyReplacer(EnvKeyReplacer)
	v.AutomaticEnv()
	registerDefaults(v, DefaultSettings())
	return &Manager{v: v, path: path}
}

// Viper exposes the underlying instance so CLI flags can be bound to keys.
func (m *Manager) Viper() *viper.Viper {
	return m.v
}

// Load reads the config file (if any) and returns the merged settings.
func (m *Manager) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || m.path != "" {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := m.v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s.normalized(), nil
}

// registerDefaults declares every key so AutomaticEnv can see env-only overrides.
func registerDefaults(v *viper.Viper, d Settings) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.allowedOrigins", d.Server.AllowedOrigins)

	v.SetDefault("metadata.tmdbApiKey", d.Metadata.TMDBAPIKey)
	v.SetDefault("metadata.language", d.Metadata.Language)
	v.SetDefault("metadata.cacheDir", d.Metadata.CacheDir)
	v.SetDefault("metadata.cacheTtlHours", d.Metadata.CacheTTLHours)
	v.SetDefault("metadata.demo", d.Metadata.Demo)
	v.SetDefault("metadata.requestTimeoutSeconds", d.Metadata.RequestTimeout)
	v.SetDefault("metadata.requestsPerSecond", d.Metadata.RequestsPerSec)

	v.SetDefault("search.debounceMillis", d.Search.DebounceMillis)
	v.SetDefault("search.minQueryLength", d.Search.MinQueryLength)

	v.SetDefault("player.defaultSource", d.Player.DefaultSource)
	v.SetDefault("player.sessionTtlHours", d.Player.SessionTTLHours)

	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.maxSizeMb", d.Log.MaxSizeMB)
	v.SetDefault("log.maxBackups", d.Log.MaxBackups)
	v.SetDefault("log.maxAgeDays", d.Log.MaxAgeDays)

	v.SetDefault("rateLimit.requestsPerSecond", d.RateLimit.RequestsPerSecond)
	v.SetDefault("rateLimit.burst", d.RateLimit.Burst)
}

// normalized replaces nonsensical values with defaults.
func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if s.Server.Port <= 0 {
		s.Server.Port = d.Server.Port
	}
	if strings.TrimSpace(s.Metadata.Language) == "" {
		s.Metadata.Language = d.Metadata.Language
	}
	if s.Metadata.CacheTTLHours <= 0 {
		s.Metadata.CacheTTLHours = d.Metadata.CacheTTLHours
	}
	if s.Metadata.RequestTimeout <= 0 {
		s.Metadata.RequestTimeout = d.Metadata.RequestTimeout
	}
	if s.Metadata.RequestsPerSec <= 0 {
		s.Metadata.RequestsPerSec = d.Metadata.RequestsPerSec
	}
	if s.Search.DebounceMillis <= 0 {
		s.Search.DebounceMillis = d.Search.DebounceMillis
	}
	if s.Search.MinQueryLength <= 0 {
		s.Search.MinQueryLength = d.Search.MinQueryLength
	}
	if strings.TrimSpace(s.Player.DefaultSource) == "" {
		s.Player.DefaultSource = d.Player.DefaultSource
	}
	if s.Player.SessionTTLHours <= 0 {
		s.Player.SessionTTLHours = d.Player.SessionTTLHours
	}
	if s.RateLimit.RequestsPerSecond <= 0 {
		s.RateLimit.RequestsPerSecond = d.RateLimit.RequestsPerSecond
	}
	if s.RateLimit.Burst <= 0 {
		s.RateLimit.Burst = d.RateLimit.Burst
	}
	return s
}
