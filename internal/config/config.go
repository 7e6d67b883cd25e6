// Package config provides application configuration via Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Cache   CacheConfig
	Fetcher FetcherConfig
	Engine  EngineConfig
	Log     LogConfig
	API     APIConfig
	Metrics MetricsConfig
}

// MetricsConfig controls the CSV telemetry sink (internal/telemetry). An
// empty Path disables persistence and searches use a NullSink.
type MetricsConfig struct {
	Path string
}

// CacheConfig configures the link cache and its optional persistent backing store.
type CacheConfig struct {
	TTL time.Duration

	// BackingStorePath is the path to the SQLite-backed persistent cache.
	// If empty, the link cache is purely in-memory.
	BackingStorePath string
}

type FetcherConfig struct {
	RateLimit      float64
	RequestTimeout time.Duration
	UserAgent      string
	RetryMax       int
	RetryBaseDelay time.Duration
}

// EngineConfig carries the search engine's global caps, per spec.md §4.4 and §5.
type EngineConfig struct {
	Timeout                 time.Duration
	MaxDepth                int
	MaxPages                int
	ConcurrentRequestsLimit int
	MaxQueueSize            int // 0 = unbounded
}

type LogConfig struct {
	Level string
}

type APIConfig struct {
	Host            string
	Port            int
	EnableCORS      bool
	CORSOrigins     []string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64
	RateBurst       int
	Production      bool
}

var defaultConfig = Config{
	Cache: CacheConfig{
		TTL:              time.Hour,
		BackingStorePath: "",
	},
	Fetcher: FetcherConfig{
		RateLimit:      100.0,
		RequestTimeout: 10 * time.Second,
		UserAgent:      "WikiRace/1.0 (https://github.com/wikirace/wikirace)",
		RetryMax:       3,
		RetryBaseDelay: 2 * time.Second,
	},
	Engine: EngineConfig{
		Timeout:                 20 * time.Second,
		MaxDepth:                6,
		MaxPages:                1000,
		ConcurrentRequestsLimit: 10,
		MaxQueueSize:            0,
	},
	Log: LogConfig{
		Level: "info",
	},
	API: APIConfig{
		Host:            "localhost",
		Port:            8080,
		EnableCORS:      true,
		CORSOrigins:     []string{"*"},
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimit:       100.0,
		RateBurst:       200,
		Production:      false,
	},
	Metrics: MetricsConfig{
		Path: "",
	},
}

// Load reads configuration from file and environment variables.
// Locations: ./config.yaml, ~/.config/wikirace/config.yaml
// Env vars prefixed with WIKIRACE_ (e.g., WIKIRACE_ENGINE_MAX_DEPTH).
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(userConfigDir(), "wikirace"))

	v.SetEnvPrefix("WIKIRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	cfg.Cache.TTL = v.GetDuration("cache.ttl")
	cfg.Cache.BackingStorePath = v.GetString("cache.backing_store_path")

	cfg.Fetcher.RateLimit = v.GetFloat64("fetcher.rate_limit")
	cfg.Fetcher.RequestTimeout = v.GetDuration("fetcher.request_timeout")
	cfg.Fetcher.UserAgent = v.GetString("fetcher.user_agent")
	cfg.Fetcher.RetryMax = v.GetInt("fetcher.retry_max")
	cfg.Fetcher.RetryBaseDelay = v.GetDuration("fetcher.retry_base_delay")

	cfg.Engine.Timeout = v.GetDuration("engine.timeout")
	cfg.Engine.MaxDepth = v.GetInt("engine.max_depth")
	cfg.Engine.MaxPages = v.GetInt("engine.max_pages")
	cfg.Engine.ConcurrentRequestsLimit = v.GetInt("engine.concurrent_requests_limit")
	cfg.Engine.MaxQueueSize = v.GetInt("engine.max_queue_size")

	cfg.Log.Level = v.GetString("log.level")

	cfg.API.Host = v.GetString("api.host")
	cfg.API.Port = v.GetInt("api.port")
	cfg.API.EnableCORS = v.GetBool("api.enable_cors")
	cfg.API.CORSOrigins = v.GetStringSlice("api.cors_origins")
	cfg.API.ReadTimeout = v.GetDuration("api.read_timeout")
	cfg.API.WriteTimeout = v.GetDuration("api.write_timeout")
	cfg.API.ShutdownTimeout = v.GetDuration("api.shutdown_timeout")
	cfg.API.RateLimit = v.GetFloat64("api.rate_limit")
	cfg.API.RateBurst = v.GetInt("api.rate_burst")
	cfg.API.Production = v.GetBool("api.production")

	cfg.Metrics.Path = v.GetString("metrics.path")

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.ttl", defaultConfig.Cache.TTL)
	v.SetDefault("cache.backing_store_path", defaultConfig.Cache.BackingStorePath)

	v.SetDefault("fetcher.rate_limit", defaultConfig.Fetcher.RateLimit)
	v.SetDefault("fetcher.request_timeout", defaultConfig.Fetcher.RequestTimeout)
	v.SetDefault("fetcher.user_agent", defaultConfig.Fetcher.UserAgent)
	v.SetDefault("fetcher.retry_max", defaultConfig.Fetcher.RetryMax)
	v.SetDefault("fetcher.retry_base_delay", defaultConfig.Fetcher.RetryBaseDelay)

	v.SetDefault("engine.timeout", defaultConfig.Engine.Timeout)
	v.SetDefault("engine.max_depth", defaultConfig.Engine.MaxDepth)
	v.SetDefault("engine.max_pages", defaultConfig.Engine.MaxPages)
	v.SetDefault("engine.concurrent_requests_limit", defaultConfig.Engine.ConcurrentRequestsLimit)
	v.SetDefault("engine.max_queue_size", defaultConfig.Engine.MaxQueueSize)

	v.SetDefault("log.level", defaultConfig.Log.Level)

	v.SetDefault("api.host", defaultConfig.API.Host)
	v.SetDefault("api.port", defaultConfig.API.Port)
	v.SetDefault("api.enable_cors", defaultConfig.API.EnableCORS)
	v.SetDefault("api.cors_origins", defaultConfig.API.CORSOrigins)
	v.SetDefault("api.read_timeout", defaultConfig.API.ReadTimeout)
	v.SetDefault("api.write_timeout", defaultConfig.API.WriteTimeout)
	v.SetDefault("api.shutdown_timeout", defaultConfig.API.ShutdownTimeout)
	v.SetDefault("api.rate_limit", defaultConfig.API.RateLimit)
	v.SetDefault("api.rate_burst", defaultConfig.API.RateBurst)
	v.SetDefault("api.production", defaultConfig.API.Production)

	v.SetDefault("metrics.path", defaultConfig.Metrics.Path)
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return ""
}
