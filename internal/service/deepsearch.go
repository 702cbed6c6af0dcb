package service

import (
	"context"

	"github.com/cloo-solutions/deepsearch/internal/domain"
	"github.com/cloo-solutions/deepsearch/internal/logging"
	"github.com/cloo-solutions/deepsearch/internal/provider"
	"github.com/cloo-solutions/deepsearch/internal/telemetry"
	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeConcurrency bounds the number of in-flight probes per search.
const DefaultProbeConcurrency = 10

// SearchProvider runs a query against the external search API
type SearchProvider interface {
	Search(ctx context.Context, params provider.QueryParams) ([]domain.RawSearchHit, error)
}

// DownloadValidator probes one candidate URL. Implementations never fail;
// problems are reported as an invalid outcome.
type DownloadValidator interface {
	Validate(ctx context.Context, url, ext string) domain.ValidationOutcome
}

// DeepSearchConfig holds the process-wide settings injected at startup
type DeepSearchConfig struct {
	Credentials      provider.Credentials
	PageSize         int
	ProbeConcurrency int
}

// DeepSearchService runs the search, filter and validate pipeline
type DeepSearchService struct {
	provider  SearchProvider
	validator DownloadValidator
	cfg       DeepSearchConfig
	logger    zerolog.Logger
}

// NewDeepSearchService creates a new DeepSearchService
func NewDeepSearchService(p SearchProvider, v DownloadValidator, cfg DeepSearchConfig, logger zerolog.Logger) *DeepSearchService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = provider.DefaultPageSize
	}
	if cfg.ProbeConcurrency <= 0 {
		cfg.ProbeConcurrency = DefaultProbeConcurrency
	}
	return &DeepSearchService{
		provider:  p,
		validator: v,
		cfg:       cfg,
		logger:    logger,
	}
}

// Search returns the validated, directly downloadable results for req in
// provider ranking order. An empty result is not an error.
func (s *DeepSearchService) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	spec := domain.Classify(req.Extension)

	ctx, span := telemetry.StartSpan(ctx, "DeepSearchService.Search", telemetry.SpanAttributes{
		Extension: spec.Normalized,
		Operation: "search",
	})
	defer span.End()

	logger := logging.FromContext(ctx, &s.logger).With().
		Str("ext", spec.Normalized).
		Bool("image_search", spec.IsImageClass).
		Logger()

	params := provider.BuildQuery(req.Query, spec, s.cfg.Credentials, s.cfg.PageSize)
	telemetry.AddBreadcrumb(ctx, "search", "querying search provider")

	hits, err := s.provider.Search(ctx, params)
	if err != nil {
		upstreamErr := domain.NewUpstreamError(err)
		span.SetError(upstreamErr)
		logger.Error().Err(err).Msg("search provider call failed")
		return nil, upstreamErr
	}

	candidates := FilterResults(hits, spec)
	span.SetData("hits", len(hits))
	span.SetData("candidates", len(candidates))

	outcomes := s.validateAll(ctx, candidates, spec)

	results := make([]domain.SearchResult, 0, len(candidates))
	for i, candidate := range candidates {
		if !outcomes[i].Valid {
			continue
		}
		results = append(results, domain.NewSearchResult(candidate, outcomes[i]))
	}

	span.SetData("results", len(results))
	span.SetStatus(sentry.SpanStatusOK)
	logger.Info().
		Int("hits", len(hits)).
		Int("candidates", len(candidates)).
		Int("results", len(results)).
		Msg("deep search completed")

	return results, nil
}

// validateAll probes every candidate concurrently. Outcome i always belongs
// to candidate i, whatever order the probes finish in.
func (s *DeepSearchService) validateAll(ctx context.Context, candidates []domain.CandidateResult, spec domain.ExtensionSpec) []domain.ValidationOutcome {
	outcomes := make([]domain.ValidationOutcome, len(candidates))
	if len(candidates) == 0 {
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(s.cfg.ProbeConcurrency)

	for i, candidate := range candidates {
		g.Go(func() error {
			probeCtx, span := telemetry.StartSpan(ctx, "DownloadValidator.Validate", telemetry.SpanAttributes{
				URL:       candidate.URL,
				Operation: "probe",
			})
			defer span.End()

			outcomes[i] = s.validator.Validate(probeCtx, candidate.URL, spec.Suffix())
			span.SetData("valid", outcomes[i].Valid)
			return nil
		})
	}

	// Probe failures are folded into invalid outcomes, so Wait has nothing to report.
	_ = g.Wait()

	return outcomes
}
