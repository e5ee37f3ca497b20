// Package config loads surveyor configuration from environment
// variables, .env files, and an optional sources.yaml file.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/btrdirectory/surveyor/pkg/errors"
)

// Defaults applied when no configuration overrides them.
const (
	DefaultCrawlDelay   = 2500 * time.Millisecond
	DefaultMaxPages     = 3
	DefaultTestLimit    = 20
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultModel        = "gemini-2.0-flash"
	DefaultConcurrency  = 4
	DefaultSearchLimit  = 30
	DefaultCacheMaxAge  = 7 * 24 * time.Hour
	DefaultGeocoderBase = "https://api.postcodes.io"
)

// Config holds runtime configuration for surveyor commands.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string

	// SerpAPIKey authenticates web search requests.
	SerpAPIKey string

	// GeminiAPIKey authenticates LLM extraction requests.
	GeminiAPIKey string

	// Model is the Gemini model name used for extraction.
	Model string

	// CrawlDelay is the politeness delay between fetches to the same
	// run of pages.
	CrawlDelay time.Duration

	// MaxPages caps how many pages are crawled per listing.
	MaxPages int

	// TestLimit caps how many listings are processed in test mode.
	TestLimit int

	// Concurrency bounds how many listings are processed in parallel.
	Concurrency int

	// SearchLimit caps how many unique result URLs a search run keeps.
	SearchLimit int

	// HTTPTimeout applies to outbound HTTP requests.
	HTTPTimeout time.Duration

	// CachePath is the sqlite crawl cache location. Empty disables
	// caching.
	CachePath string

	// CacheMaxAge is how long cached crawl responses stay fresh.
	CacheMaxAge time.Duration

	// GeocoderBaseURL is the postcodes.io API base URL.
	GeocoderBaseURL string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables take precedence over .env entries.
func Load() (*Config, error) {
	// godotenv.Load never overrides variables already set.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SURVEYOR_MODEL", DefaultModel)
	v.SetDefault("SURVEYOR_CRAWL_DELAY", DefaultCrawlDelay.String())
	v.SetDefault("SURVEYOR_MAX_PAGES", DefaultMaxPages)
	v.SetDefault("SURVEYOR_TEST_LIMIT", DefaultTestLimit)
	v.SetDefault("SURVEYOR_CONCURRENCY", DefaultConcurrency)
	v.SetDefault("SURVEYOR_SEARCH_LIMIT", DefaultSearchLimit)
	v.SetDefault("SURVEYOR_HTTP_TIMEOUT", DefaultHTTPTimeout.String())
	v.SetDefault("SURVEYOR_CACHE_PATH", defaultCachePath())
	v.SetDefault("SURVEYOR_CACHE_MAX_AGE", DefaultCacheMaxAge.String())
	v.SetDefault("SURVEYOR_GEOCODER_URL", DefaultGeocoderBase)

	cfg := &Config{
		DatabaseURL:     getString(v, "DATABASE_URL"),
		SerpAPIKey:      getString(v, "SERPAPI_KEY"),
		GeminiAPIKey:    getString(v, "GEMINI_API_KEY"),
		Model:           v.GetString("SURVEYOR_MODEL"),
		MaxPages:        v.GetInt("SURVEYOR_MAX_PAGES"),
		TestLimit:       v.GetInt("SURVEYOR_TEST_LIMIT"),
		Concurrency:     v.GetInt("SURVEYOR_CONCURRENCY"),
		SearchLimit:     v.GetInt("SURVEYOR_SEARCH_LIMIT"),
		CachePath:       v.GetString("SURVEYOR_CACHE_PATH"),
		GeocoderBaseURL: v.GetString("SURVEYOR_GEOCODER_URL"),
	}

	var err error
	if cfg.CrawlDelay, err = parseDuration(v, "SURVEYOR_CRAWL_DELAY", DefaultCrawlDelay); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = parseDuration(v, "SURVEYOR_HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = parseDuration(v, "SURVEYOR_CACHE_MAX_AGE", DefaultCacheMaxAge); err != nil {
		return nil, err
	}

	if cfg.MaxPages < 1 {
		return nil, errors.NewConfigError("SURVEYOR_MAX_PAGES", "must be at least 1", nil)
	}
	if cfg.Concurrency < 1 {
		return nil, errors.NewConfigError("SURVEYOR_CONCURRENCY", "must be at least 1", nil)
	}

	return cfg, nil
}

// RequireDatabase returns an error if no database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return errors.NewConfigError("DATABASE_URL", "database connection string not set", nil)
	}
	return nil
}

// RequireSearch returns an error if no search API key is configured.
func (c *Config) RequireSearch() error {
	if c.SerpAPIKey == "" {
		return errors.NewConfigError("SERPAPI_KEY", "search API key not set", errors.ErrAPIKeyRequired)
	}
	return nil
}

// RequireLLM returns an error if no LLM API key is configured.
func (c *Config) RequireLLM() error {
	if c.GeminiAPIKey == "" {
		return errors.NewConfigError("GEMINI_API_KEY", "LLM API key not set", errors.ErrAPIKeyRequired)
	}
	return nil
}

// getString checks both the OS environment and viper. Viper's
// AutomaticEnv covers most cases but misses variables set after
// initialization, so the OS environment is consulted directly too.
func getString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.NewConfigError(key, "invalid duration "+raw, err)
	}
	return d, nil
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".surveyor-cache.db"
	}
	return dir + "/surveyor/crawl-cache.db"
}
