package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeMock   Mode = "mock"
	ModeLive   Mode = "live"
	ModeHybrid Mode = "hybrid"
)

// ProviderConfig toggles a leg provider. Higher priority providers are
// merged first, so their legs win id collisions.
type ProviderConfig struct {
	Enabled  bool `yaml:"enabled"`
	Priority int  `yaml:"priority"`
}

type ResolverConfig struct {
	MinOptions int `yaml:"minOptions"`
}

type SourcesConfig struct {
	DatabaseURL    string `yaml:"databaseUrl"`
	LegsFile       string `yaml:"legsFile"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	TTLSeconds int    `yaml:"ttlSeconds"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Config struct {
	Mode      Mode                      `yaml:"mode"`
	LogLevel  string                    `yaml:"logLevel"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	Resolver  ResolverConfig            `yaml:"resolver"`
	Sources   SourcesConfig             `yaml:"sources"`
	Cache     CacheConfig               `yaml:"cache"`
	Server    ServerConfig              `yaml:"server"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:     ModeMock,
		LogLevel: "info",
		Providers: map[string]ProviderConfig{
			"mock_legs": {Enabled: true, Priority: 100},
			"legs_file": {Enabled: true, Priority: 60},
			"postgres":  {Enabled: true, Priority: 50},
		},
		Resolver: ResolverConfig{MinOptions: 5},
		Sources:  SourcesConfig{TimeoutSeconds: 15},
		Cache:    CacheConfig{Enabled: false, TTLSeconds: 300},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load builds the configuration from defaults, the YAML config file, a .env
// file in the working directory, and TRAVEL_* environment variables, in
// that order of precedence (last wins).
func Load() *Config {
	cfg := DefaultConfig()

	_ = godotenv.Load()

	if path := configPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	if envMode := os.Getenv("TRAVEL_MODE"); envMode != "" {
		cfg.WithMode(envMode)
	}

	if envProviders := os.Getenv("TRAVEL_PROVIDERS"); envProviders != "" {
		names := strings.Split(envProviders, ",")
		for _, n := range names {
			n = strings.TrimSpace(n)
			if _, ok := cfg.Providers[n]; !ok {
				cfg.Providers[n] = ProviderConfig{Enabled: true, Priority: 50}
			}
		}
	}

	if v := os.Getenv("TRAVEL_DATABASE_URL"); v != "" {
		cfg.Sources.DatabaseURL = v
	}
	if v := os.Getenv("TRAVEL_LEGS_FILE"); v != "" {
		cfg.Sources.LegsFile = v
	}
	if v := os.Getenv("TRAVEL_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TRAVEL_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
		cfg.Cache.Enabled = true
	}
	if v := os.Getenv("TRAVEL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TRAVEL_MIN_OPTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Resolver.MinOptions = n
		}
	}

	return cfg
}

func (c *Config) WithMode(mode string) *Config {
	if mode == "" {
		return c
	}
	switch strings.ToLower(mode) {
	case "mock":
		c.Mode = ModeMock
	case "live":
		c.Mode = ModeLive
	case "hybrid":
		c.Mode = ModeHybrid
	}
	return c
}

// ProviderEnabled reports whether a provider may be used. Providers without
// a config entry are enabled.
func (c *Config) ProviderEnabled(name string) bool {
	pc, ok := c.Providers[name]
	if !ok {
		return true
	}
	return pc.Enabled
}

// ProviderPriority returns the configured priority, zero when the provider
// has no config entry.
func (c *Config) ProviderPriority(name string) int {
	return c.Providers[name].Priority
}

func (c *Config) ProviderTimeout() time.Duration {
	if c.Sources.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.Sources.TimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func configPath() string {
	if p := os.Getenv("TRAVEL_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "beetlebot", "travel.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
