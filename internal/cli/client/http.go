package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	envAPIURL = "DEEPSEARCH_API_URL"

	defaultAPIURL = "http://localhost:8080"

	// Probing every candidate can take several seconds per result page.
	defaultTimeout = 60 * time.Second
)

type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClientWithCmd creates an APIClient with config cascade: flag → env → default.
// If cmd is nil, skips flag checking.
func NewAPIClientWithCmd(cmd *cobra.Command) (*APIClient, error) {
	_ = godotenv.Load()

	var baseURL string
	if cmd != nil {
		if flagURL, err := cmd.Flags().GetString("api-url"); err == nil && flagURL != "" {
			baseURL = flagURL
		}
	}
	if baseURL == "" {
		baseURL = os.Getenv(envAPIURL)
	}
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	return NewAPIClientWithConfig(baseURL)
}

// NewAPIClientWithConfig creates an APIClient for an explicit base URL.
func NewAPIClientWithConfig(baseURL string) (*APIClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}, nil
}

// APIError represents an error from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// SearchResult mirrors one entry of the deep search response.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Filetype    string `json:"filetype"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
}

// SearchResponse is the body of a successful deep search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

type errorBody struct {
	Error string `json:"error"`
}

// DeepSearch calls GET /api/deep-search.
func (c *APIClient) DeepSearch(ctx context.Context, query, ext string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("ext", ext)

	var resp SearchResponse
	if err := c.get(ctx, "/api/deep-search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []SearchResult{}
	}
	return &resp, nil
}

func (c *APIClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var body errorBody
		if err := json.Unmarshal(respBody, &body); err != nil || body.Error == "" {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
