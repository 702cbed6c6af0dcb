// Package probe decides whether a search hit links to a real, directly
// downloadable file by inspecting the headers of a HEAD request.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cloo-solutions/deepsearch/internal/domain"
	"github.com/cloo-solutions/deepsearch/internal/logging"
	"github.com/rs/zerolog"
)

const (
	DefaultTimeout      = 8 * time.Second
	DefaultMaxRedirects = 3
	// DefaultMinSize rejects placeholder and error pages served under a file URL.
	DefaultMinSize int64 = 10 * 1024
	DefaultUserAgent     = "deepsearch/1.0"
)

// binaryTypePrefixes are accepted regardless of the extension token.
var binaryTypePrefixes = []string{"application/", "video/", "audio/"}

var errTooManyRedirects = errors.New("too many redirects")

// Policy holds the validation thresholds.
type Policy struct {
	Timeout time.Duration
	// MaxRedirects of 0 follows no redirects; negative means the default.
	MaxRedirects int
	// MinSize is exclusive: a file must be strictly larger to be valid.
	// 0 accepts any reported length; negative means the default.
	MinSize   int64
	UserAgent string
}

// DefaultPolicy returns the production thresholds.
func DefaultPolicy() Policy {
	return Policy{
		Timeout:      DefaultTimeout,
		MaxRedirects: DefaultMaxRedirects,
		MinSize:      DefaultMinSize,
		UserAgent:    DefaultUserAgent,
	}
}

func (p Policy) withDefaults() Policy {
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	if p.MaxRedirects < 0 {
		p.MaxRedirects = DefaultMaxRedirects
	}
	if p.MinSize < 0 {
		p.MinSize = DefaultMinSize
	}
	if p.UserAgent == "" {
		p.UserAgent = DefaultUserAgent
	}
	return p
}

// Validator probes candidate URLs. It is safe for concurrent use.
type Validator struct {
	client *http.Client
	policy Policy
	logger zerolog.Logger
}

// NewValidator creates a Validator with its own HTTP client.
func NewValidator(policy Policy, logger zerolog.Logger) *Validator {
	policy = policy.withDefaults()
	return &Validator{
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: policy.Timeout,
			},
			CheckRedirect: redirectLimit(policy.MaxRedirects),
		},
		policy: policy,
		logger: logger,
	}
}

// Policy returns the thresholds in effect.
func (v *Validator) Policy() Policy {
	return v.policy
}

func redirectLimit(max int) func(*http.Request, []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) > max {
			return fmt.Errorf("%w: stopped after %d", errTooManyRedirects, max)
		}
		return nil
	}
}

// Validate probes rawURL and reports whether it serves a file ending in ext
// (the literal suffix, dot included). It never returns an error: every failure
// yields an invalid outcome.
func (v *Validator) Validate(ctx context.Context, rawURL, ext string) domain.ValidationOutcome {
	logger := logging.FromContext(ctx, &v.logger).With().Str("url", rawURL).Logger()

	if !strings.HasSuffix(strings.ToLower(rawURL), strings.ToLower(ext)) {
		logger.Debug().Str("ext", ext).Msg("probe skipped: extension mismatch")
		return domain.ValidationOutcome{}
	}

	ctx, cancel := context.WithTimeout(ctx, v.policy.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		logger.Debug().Err(err).Msg("probe rejected: bad url")
		return domain.ValidationOutcome{}
	}
	req.Header.Set("User-Agent", v.policy.UserAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := v.client.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("probe failed")
		return domain.ValidationOutcome{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Debug().Int("status", resp.StatusCode).Msg("probe rejected: status")
		return domain.ValidationOutcome{}
	}

	size := contentLength(resp)
	if size <= v.policy.MinSize {
		logger.Debug().Int64("size", size).Msg("probe rejected: too small")
		return domain.ValidationOutcome{}
	}

	contentType := resp.Header.Get("Content-Type")
	if !acceptableContentType(contentType, ext) {
		logger.Debug().Str("content_type", contentType).Msg("probe rejected: content type")
		return domain.ValidationOutcome{}
	}

	return domain.ValidationOutcome{
		Valid:       true,
		Size:        size,
		ContentType: contentType,
	}
}

// contentLength returns -1 when the server did not report a length.
func contentLength(resp *http.Response) int64 {
	if resp.ContentLength >= 0 {
		return resp.ContentLength
	}
	n, err := strconv.ParseInt(strings.TrimSpace(resp.Header.Get("Content-Length")), 10, 64)
	if err != nil {
		return -1
	}
	return n
}

// acceptableContentType is lenient: a missing header, a header mentioning the
// extension, or any binary top-level type all pass.
func acceptableContentType(contentType, ext string) bool {
	if contentType == "" {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(contentType))
	token := strings.TrimLeft(strings.ToLower(ext), ".")
	if token != "" && strings.Contains(lower, token) {
		return true
	}
	for _, prefix := range binaryTypePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
