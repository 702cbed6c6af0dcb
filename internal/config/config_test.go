package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	t.Setenv("DEEPSEARCH_SEARCH_API_KEY", "key-123")
	t.Setenv("DEEPSEARCH_SEARCH_CX", "cx-456")
	t.Setenv("DEEPSEARCH_PORT", "9090")
	t.Setenv("DEEPSEARCH_DEBUG", "true")
	t.Setenv("DEEPSEARCH_PROBE_TIMEOUT", "2s")
	t.Setenv("DEEPSEARCH_PROBE_MIN_SIZE", "2048")
	t.Setenv("DEEPSEARCH_PROVIDER_RPS", "2.5")
	t.Setenv("DEEPSEARCH_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "key-123", cfg.SearchAPIKey)
	assert.Equal(t, "cx-456", cfg.SearchCX)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 2*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, int64(2048), cfg.ProbeMinSize)
	assert.Equal(t, 2.5, cfg.ProviderRPS)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEEPSEARCH_SEARCH_API_KEY", "key-123")
	t.Setenv("DEEPSEARCH_SEARCH_CX", "cx-456")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "https://www.googleapis.com/customsearch/v1", cfg.SearchBaseURL)
	assert.Equal(t, 10, cfg.SearchPageSize)
	assert.Equal(t, 8*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 3, cfg.ProbeMaxRedirects)
	assert.Equal(t, int64(10240), cfg.ProbeMinSize)
	assert.Equal(t, 10, cfg.ProbeConcurrency)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.HasRedis())
	assert.False(t, cfg.HasSentry())
}

func TestLoad_RequiredCredentials(t *testing.T) {
	os.Unsetenv("DEEPSEARCH_SEARCH_API_KEY")
	os.Unsetenv("DEEPSEARCH_SEARCH_CX")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_API_KEY")
}

func TestCredentials(t *testing.T) {
	cfg := &Config{SearchAPIKey: "key", SearchCX: "cx"}

	creds := cfg.Credentials()
	assert.Equal(t, "key", creds.APIKey)
	assert.Equal(t, "cx", creds.CX)
}

func TestValidationPolicyFromConfig(t *testing.T) {
	cfg := &Config{
		ProbeTimeout:      5 * time.Second,
		ProbeMaxRedirects: 2,
		ProbeMinSize:      4096,
		ProbeUserAgent:    "test-agent",
	}

	policy := cfg.ProbePolicy()
	assert.Equal(t, 5*time.Second, policy.Timeout)
	assert.Equal(t, 2, policy.MaxRedirects)
	assert.Equal(t, int64(4096), policy.MinSize)
	assert.Equal(t, "test-agent", policy.UserAgent)
}

func TestHasRedis(t *testing.T) {
	cfg := &Config{RedisAddr: "localhost:6379"}
	assert.True(t, cfg.HasRedis())

	cfg.RedisAddr = ""
	assert.False(t, cfg.HasRedis())
}

func TestLoad_RejectsDisabledHeuristics(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"zero min size", "DEEPSEARCH_PROBE_MIN_SIZE", "0"},
		{"negative min size", "DEEPSEARCH_PROBE_MIN_SIZE", "-1"},
		{"negative redirects", "DEEPSEARCH_PROBE_MAX_REDIRECTS", "-1"},
		{"zero timeout", "DEEPSEARCH_PROBE_TIMEOUT", "0s"},
		{"zero concurrency", "DEEPSEARCH_PROBE_CONCURRENCY", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEEPSEARCH_SEARCH_API_KEY", "key")
			t.Setenv("DEEPSEARCH_SEARCH_CX", "cx")
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_ZeroRedirectsAllowed(t *testing.T) {
	t.Setenv("DEEPSEARCH_SEARCH_API_KEY", "key")
	t.Setenv("DEEPSEARCH_SEARCH_CX", "cx")
	t.Setenv("DEEPSEARCH_PROBE_MAX_REDIRECTS", "0")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.ProbePolicy().MaxRedirects)
}
