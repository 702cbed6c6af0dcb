package service

import (
	"strings"

	"github.com/cloo-solutions/deepsearch/internal/domain"
)

// FilterResults keeps the hits that match the requested extension, in
// provider order. Image searches also accept hits whose reported format
// mentions the extension, since image links often lack a file suffix.
func FilterResults(hits []domain.RawSearchHit, spec domain.ExtensionSpec) []domain.CandidateResult {
	candidates := make([]domain.CandidateResult, 0, len(hits))
	for _, hit := range hits {
		if !matchesExtension(hit, spec) {
			continue
		}
		candidates = append(candidates, domain.CandidateResult{
			Title:       hit.Title,
			URL:         hit.Link,
			Filetype:    spec.Normalized,
			Snippet:     hit.Snippet,
			ContentType: hit.Format,
		})
	}
	return candidates
}

func matchesExtension(hit domain.RawSearchHit, spec domain.ExtensionSpec) bool {
	if spec.IsEmpty() {
		return true
	}
	if spec.HasSuffix(hit.Link) {
		return true
	}
	return spec.IsImageClass && strings.Contains(strings.ToLower(hit.Format), spec.Normalized)
}
