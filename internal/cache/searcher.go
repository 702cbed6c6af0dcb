package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/cloo-solutions/deepsearch/internal/domain"
	"github.com/cloo-solutions/deepsearch/internal/logging"
	"github.com/cloo-solutions/deepsearch/internal/telemetry"
	"github.com/rs/zerolog"
)

// SearchService is the contract shared by the deep search service and the
// caching decorator.
type SearchService interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error)
}

// Store is the byte store the decorator reads from and writes to.
type Store interface {
	Get(ctx context.Context, id string) ([]byte, bool, error)
	Set(ctx context.Context, id string, data []byte) error
}

// Searcher serves repeated searches from the store. Store failures are
// logged and bypassed; they never fail a search.
type Searcher struct {
	inner  SearchService
	store  Store
	logger zerolog.Logger
}

// NewSearcher wraps inner with a result cache backed by store.
func NewSearcher(inner SearchService, store Store, logger zerolog.Logger) *Searcher {
	return &Searcher{
		inner:  inner,
		store:  store,
		logger: logger,
	}
}

// Key derives the cache key for a query and extension. Extensions are
// classified first so "pdf", ".pdf" and "PDF" share an entry.
func Key(query, ext string) string {
	spec := domain.Classify(ext)
	sum := sha256.Sum256([]byte(query + "\x00" + spec.Normalized))
	return hex.EncodeToString(sum[:])
}

// Search implements SearchService.
func (s *Searcher) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return s.inner.Search(ctx, req)
	}

	logger := logging.FromContext(ctx, &s.logger)
	key := Key(req.Query, req.Extension)

	if results, ok := s.lookup(ctx, key, logger); ok {
		logger.Debug().Str("cache_key", key).Int("results", len(results)).Msg("deep search cache hit")
		return results, nil
	}

	results, err := s.inner.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	s.save(ctx, key, results, logger)
	return results, nil
}

func (s *Searcher) lookup(ctx context.Context, key string, logger *zerolog.Logger) ([]domain.SearchResult, bool) {
	raw, found, err := s.store.Get(ctx, key)
	if err != nil {
		logger.Warn().Err(err).Str("cache_key", key).Msg("cache read failed, bypassing")
		telemetry.CaptureError(ctx, err)
		return nil, false
	}
	if !found {
		return nil, false
	}

	results := make([]domain.SearchResult, 0)
	if err := json.Unmarshal(raw, &results); err != nil {
		logger.Warn().Err(err).Str("cache_key", key).Msg("cache entry corrupt, bypassing")
		return nil, false
	}
	return results, true
}

func (s *Searcher) save(ctx context.Context, key string, results []domain.SearchResult, logger *zerolog.Logger) {
	data, err := json.Marshal(results)
	if err != nil {
		logger.Warn().Err(err).Msg("cache encode failed")
		return
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		logger.Warn().Err(err).Str("cache_key", key).Msg("cache write failed, bypassing")
		telemetry.CaptureError(ctx, err)
	}
}
