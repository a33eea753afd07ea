package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings required to boot the AOER engine.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Provider   ProviderConfig   `yaml:"provider"`
	Cache      CacheConfig      `yaml:"cache"`
	Logging    LoggingConfig    `yaml:"logging"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Scoring    ScoringConfig    `yaml:"scoring"`
}

// ServerConfig controls HTTP listener behaviour.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	MetricsAddress  string        `yaml:"metricsAddress"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
}

// ProviderConfig selects and configures the observation source.
type ProviderConfig struct {
	// Kind is "http" or "postgres".
	Kind     string               `yaml:"kind"`
	HTTP     HTTPProviderConfig   `yaml:"http"`
	Postgres PostgresSourceConfig `yaml:"postgres"`
}

// HTTPProviderConfig configures the JSON observation provider client.
type HTTPProviderConfig struct {
	BaseURL          string        `yaml:"baseURL"`
	ObservationsPath string        `yaml:"observationsPath"`
	Timeout          time.Duration `yaml:"timeout"`
}

// PostgresSourceConfig configures direct reads from the backing store.
type PostgresSourceConfig struct {
	DSN string `yaml:"dsn"`
}

// CacheConfig controls Valkey-backed caching of observation fetches.
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Addr            string        `yaml:"addr"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	DB              int           `yaml:"db"`
	DialTimeout     time.Duration `yaml:"dialTimeout"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	TLS             bool          `yaml:"tls"`
	ObservationsTTL time.Duration `yaml:"observationsTTL"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// ThresholdsConfig points at an optional recommendation threshold pack.
type ThresholdsConfig struct {
	Path string `yaml:"path"`
}

// ScoringConfig tunes the score integration layer.
type ScoringConfig struct {
	// Window is the trailing observation window for score adjustments.
	Window time.Duration `yaml:"window"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("AOER_ENGINE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			MetricsAddress:  ":2112",
			GracefulTimeout: 10 * time.Second,
		},
		Provider: ProviderConfig{
			Kind: "http",
			HTTP: HTTPProviderConfig{
				ObservationsPath: "/api/v1/query-checks",
				Timeout:          5 * time.Second,
			},
		},
		Cache: CacheConfig{
			Enabled:         false,
			DialTimeout:     2 * time.Second,
			ReadTimeout:     500 * time.Millisecond,
			WriteTimeout:    500 * time.Millisecond,
			ObservationsTTL: 10 * time.Minute,
		},
		Logging:    LoggingConfig{Level: "info", JSON: false},
		Thresholds: ThresholdsConfig{Path: "configs/thresholds.yaml"},
		Scoring:    ScoringConfig{Window: 30 * 24 * time.Hour},
	}
}

func validate(cfg Config) error {
	switch cfg.Provider.Kind {
	case "http", "postgres":
	default:
		return fmt.Errorf("provider.kind must be http or postgres, got %q", cfg.Provider.Kind)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AOER_ENGINE_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("AOER_ENGINE_METRICS_ADDRESS"); v != "" {
		cfg.Server.MetricsAddress = v
	}
	if v := os.Getenv("AOER_ENGINE_PROVIDER_KIND"); v != "" {
		cfg.Provider.Kind = v
	}
	if v := os.Getenv("AOER_ENGINE_PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.HTTP.BaseURL = v
	}
	if v := os.Getenv("AOER_ENGINE_PROVIDER_OBSERVATIONS_PATH"); v != "" {
		cfg.Provider.HTTP.ObservationsPath = v
	}
	if v := os.Getenv("AOER_ENGINE_PROVIDER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Provider.HTTP.Timeout = d
		}
	}
	if v := os.Getenv("AOER_ENGINE_POSTGRES_DSN"); v != "" {
		cfg.Provider.Postgres.DSN = v
	}
	if v := os.Getenv("AOER_ENGINE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("AOER_ENGINE_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("AOER_ENGINE_THRESHOLDS_PATH"); v != "" {
		cfg.Thresholds.Path = v
	}
	if v := os.Getenv("AOER_ENGINE_SCORING_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Scoring.Window = d
		}
	}
	if v := os.Getenv("AOER_ENGINE_CACHE_ENABLED"); v != "" {
		cfg.Cache.Enabled = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("AOER_ENGINE_CACHE_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("AOER_ENGINE_CACHE_USERNAME"); v != "" {
		cfg.Cache.Username = v
	}
	if v := os.Getenv("AOER_ENGINE_CACHE_PASSWORD"); v != "" {
		cfg.Cache.Password = v
	}
	if v := os.Getenv("AOER_ENGINE_CACHE_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Cache.DB = db
		}
	}
	if v := os.Getenv("AOER_ENGINE_CACHE_TLS"); strings.EqualFold(v, "true") || v == "1" {
		cfg.Cache.TLS = true
	}
	if v := os.Getenv("AOER_ENGINE_CACHE_OBSERVATIONS_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Cache.ObservationsTTL = d
		}
	}
}
