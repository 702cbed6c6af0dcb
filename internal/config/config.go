package config

import (
	"fmt"
	"time"

	"github.com/cloo-solutions/deepsearch/internal/probe"
	"github.com/cloo-solutions/deepsearch/internal/provider"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	SearchAPIKey   string        `envconfig:"SEARCH_API_KEY" required:"true"`
	SearchCX       string        `envconfig:"SEARCH_CX" required:"true"`
	SearchBaseURL  string        `envconfig:"SEARCH_BASE_URL" default:"https://www.googleapis.com/customsearch/v1"`
	SearchPageSize int           `envconfig:"SEARCH_PAGE_SIZE" default:"10"`
	SearchTimeout  time.Duration `envconfig:"SEARCH_TIMEOUT" default:"10s"`
	ProviderRPS    float64       `envconfig:"PROVIDER_RPS" default:"0"`

	// Direct-download heuristics
	ProbeTimeout      time.Duration `envconfig:"PROBE_TIMEOUT" default:"8s"`
	ProbeMaxRedirects int           `envconfig:"PROBE_MAX_REDIRECTS" default:"3"`
	ProbeMinSize      int64         `envconfig:"PROBE_MIN_SIZE" default:"10240"`
	ProbeConcurrency  int           `envconfig:"PROBE_CONCURRENCY" default:"10"`
	ProbeUserAgent    string        `envconfig:"PROBE_USER_AGENT" default:"deepsearch/1.0"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DEEPSEARCH", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate rejects probe settings that would silently disable a heuristic.
func (c *Config) validate() error {
	switch {
	case c.ProbeMinSize <= 0:
		return fmt.Errorf("DEEPSEARCH_PROBE_MIN_SIZE must be positive, got %d", c.ProbeMinSize)
	case c.ProbeMaxRedirects < 0:
		return fmt.Errorf("DEEPSEARCH_PROBE_MAX_REDIRECTS must not be negative, got %d", c.ProbeMaxRedirects)
	case c.ProbeTimeout <= 0:
		return fmt.Errorf("DEEPSEARCH_PROBE_TIMEOUT must be positive, got %s", c.ProbeTimeout)
	case c.ProbeConcurrency <= 0:
		return fmt.Errorf("DEEPSEARCH_PROBE_CONCURRENCY must be positive, got %d", c.ProbeConcurrency)
	}
	return nil
}

func (c *Config) HasRedis() bool {
	return c.RedisAddr != ""
}

func (c *Config) HasSentry() bool {
	return c.SentryDSN != ""
}

// Credentials returns the search provider credentials.
func (c *Config) Credentials() provider.Credentials {
	return provider.Credentials{
		APIKey: c.SearchAPIKey,
		CX:     c.SearchCX,
	}
}

// ProbePolicy returns the direct-download validation thresholds.
func (c *Config) ProbePolicy() probe.Policy {
	return probe.Policy{
		Timeout:      c.ProbeTimeout,
		MaxRedirects: c.ProbeMaxRedirects,
		MinSize:      c.ProbeMinSize,
		UserAgent:    c.ProbeUserAgent,
	}
}
