// Package provider talks to the keyed web search API (Google Custom Search
// JSON API shaped) that backs deep search.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloo-solutions/deepsearch/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"
	DefaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of a failed response ends up in the error.
	maxErrorBody = 512
)

var (
	ErrEmptyBaseURL = errors.New("search provider base url is empty")
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond throttles outbound searches; 0 disables throttling.
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client calls the search provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a provider client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid search provider base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		limiter:    limiter,
	}, nil
}

type searchResponse struct {
	Items []struct {
		Title      string `json:"title"`
		Link       string `json:"link"`
		Snippet    string `json:"snippet"`
		Mime       string `json:"mime"`
		FileFormat string `json:"fileFormat"`
	} `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search runs one provider query and returns its hits in ranking order.
func (c *Client) Search(ctx context.Context, params QueryParams) ([]domain.RawSearchHit, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	searchURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	query := searchURL.Query()
	for k, v := range params.Values() {
		query[k] = v
	}
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", redactKey(err, params.Key))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, body)
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	hits := make([]domain.RawSearchHit, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		format := item.FileFormat
		if format == "" {
			format = item.Mime
		}
		hits = append(hits, domain.RawSearchHit{
			Title:   strings.TrimSpace(item.Title),
			Link:    item.Link,
			Snippet: strings.TrimSpace(item.Snippet),
			Format:  format,
		})
	}
	return hits, nil
}

func statusError(status int, body []byte) error {
	var decoded errorResponse
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Error.Message != "" {
		return fmt.Errorf("http %d: %s", status, decoded.Error.Message)
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	if text == "" {
		text = http.StatusText(status)
	}
	return fmt.Errorf("http %d: %s", status, text)
}

// redactKey keeps the API key out of transport errors, which embed the URL.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	msg := strings.ReplaceAll(err.Error(), url.QueryEscape(key), "REDACTED")
	msg = strings.ReplaceAll(msg, key, "REDACTED")
	if msg == err.Error() {
		return err
	}
	return errors.New(msg)
}
