package config

import (
	"cmp"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables holding secrets. They never live in config.json.
const (
	EnvWeatherAPIKey = "OPENWEATHER_API_KEY"
	EnvPlacesAPIKey  = "GOOGLE_PLACES_API_KEY"
	EnvRedisURL      = "SATCHEL_REDIS_URL"
)

// Config holds application configuration.
type Config struct {
	// Bind and Port are the web server listen address.
	Bind string `json:"bind,omitempty"`
	Port int    `json:"port,omitempty"`

	// PublicBaseURL is the externally reachable server URL (e.g. "https://pack.example.com").
	// When set, PDF exports carry a QR code linking back to the saved list.
	PublicBaseURL string `json:"public_base_url,omitempty"`

	// WeatherTimeoutMS bounds the best-effort weather lookup done before generation.
	WeatherTimeoutMS int `json:"weather_timeout_ms,omitempty"`

	// WeatherCacheTTLSeconds is how long a weather summary is reused for the same trip.
	WeatherCacheTTLSeconds int `json:"weather_cache_ttl_seconds,omitempty"`

	// RateLimitPerMinute is the per-client request budget of the HTTP API.
	// Zero means the default; a negative value turns limiting off.
	RateLimitPerMinute int `json:"rate_limit_per_minute,omitempty"`

	// CORSAllowedOrigins lists origins allowed to call the HTTP API from a browser.
	// Empty means same-origin only.
	CORSAllowedOrigins []string `json:"cors_allowed_origins,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// DisabledTypes is a list of tool type names ("packing", "list") to disable entirely.
	DisabledTypes []string `json:"disabled_types,omitempty"`

	// Secrets, filled from the environment by LoadEnv.
	WeatherAPIKey string `json:"-"`
	PlacesAPIKey  string `json:"-"`
	RedisURL      string `json:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Bind:                   "127.0.0.1",
		Port:                   8484,
		WeatherTimeoutMS:       3000,
		WeatherCacheTTLSeconds: 1800,
		RateLimitPerMinute:     60,
	}
}

// WeatherTimeout returns WeatherTimeoutMS as a duration.
func (c *Config) WeatherTimeout() time.Duration {
	return time.Duration(c.WeatherTimeoutMS) * time.Millisecond
}

// WeatherCacheTTL returns WeatherCacheTTLSeconds as a duration.
func (c *Config) WeatherCacheTTL() time.Duration {
	return time.Duration(c.WeatherCacheTTLSeconds) * time.Second
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.satchel.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.satchel) and repo (.satchel) directories.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// LoadEnv fills the secret fields from the environment. A .env file in dir is
// read first when present; variables already set in the process win.
func (c *Config) LoadEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return err
		}
	}
	c.WeatherAPIKey = strings.TrimSpace(os.Getenv(EnvWeatherAPIKey))
	c.PlacesAPIKey = strings.TrimSpace(os.Getenv(EnvPlacesAPIKey))
	c.RedisURL = strings.TrimSpace(os.Getenv(EnvRedisURL))
	return nil
}

// FindRepoConfig walks upward from startDir to find the nearest .satchel/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".satchel", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw reads one config file without applying defaults.
// A missing file (or an empty path) reads as the zero Config.
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile reads one config file over the defaults.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge layers overlay on base. A non-zero overlay scalar wins; lists are
// concatenated with blanks and duplicates dropped.
func Merge(base, overlay *Config) *Config {
	result := &Config{
		Bind:                   cmp.Or(overlay.Bind, base.Bind),
		Port:                   cmp.Or(overlay.Port, base.Port),
		PublicBaseURL:          cmp.Or(overlay.PublicBaseURL, base.PublicBaseURL),
		WeatherTimeoutMS:       cmp.Or(overlay.WeatherTimeoutMS, base.WeatherTimeoutMS),
		WeatherCacheTTLSeconds: cmp.Or(overlay.WeatherCacheTTLSeconds, base.WeatherCacheTTLSeconds),
		RateLimitPerMinute:     cmp.Or(overlay.RateLimitPerMinute, base.RateLimitPerMinute),
		DBMaxOpenConns:         cmp.Or(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns:         cmp.Or(overlay.DBMaxIdleConns, base.DBMaxIdleConns),
		WeatherAPIKey:          cmp.Or(overlay.WeatherAPIKey, base.WeatherAPIKey),
		PlacesAPIKey:           cmp.Or(overlay.PlacesAPIKey, base.PlacesAPIKey),
		RedisURL:               cmp.Or(overlay.RedisURL, base.RedisURL),
	}

	result.CORSAllowedOrigins = mergeStringSlice(base.CORSAllowedOrigins, overlay.CORSAllowedOrigins)
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)
	result.DisabledTypes = mergeStringSlice(base.DisabledTypes, overlay.DisabledTypes)

	return result
}

// mergeStringSlice returns nil when nothing is left.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
