package handlers

import (
	"context"
	"net/http"

	"github.com/cloo-solutions/deepsearch/internal/api"
	"github.com/cloo-solutions/deepsearch/internal/domain"
	"github.com/cloo-solutions/deepsearch/internal/logging"
	"github.com/rs/zerolog"
)

type DeepSearchService interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error)
}

type DeepSearchHandler struct {
	svc    DeepSearchService
	logger zerolog.Logger
}

func NewDeepSearchHandler(svc DeepSearchService, logger zerolog.Logger) *DeepSearchHandler {
	return &DeepSearchHandler{svc: svc, logger: logger}
}

type DeepSearchResponse struct {
	Results []domain.SearchResult `json:"results"`
}

// Search handles GET /api/deep-search?query=&ext=
func (h *DeepSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := domain.SearchRequest{
		Query:     q.Get("query"),
		Extension: q.Get("ext"),
	}

	results, err := h.svc.Search(r.Context(), req)
	if err != nil {
		if api.DomainErrorToHTTP(err) >= http.StatusInternalServerError {
			logging.FromContext(r.Context(), &h.logger).Error().Err(err).Msg("deep search failed")
		}
		api.HandleError(w, err)
		return
	}

	if results == nil {
		results = []domain.SearchResult{}
	}

	api.JSON(w, http.StatusOK, DeepSearchResponse{Results: results})
}
