package domain

// SearchRequest is one incoming deep-search request
type SearchRequest struct {
	Query     string
	Extension string
}

// Validate rejects requests with an empty query or extension
func (r SearchRequest) Validate() error {
	if r.Query == "" || r.Extension == "" {
		return ErrMissingQueryOrExt
	}
	if Classify(r.Extension).IsEmpty() {
		return ErrMissingQueryOrExt
	}
	return nil
}

// RawSearchHit is an item as returned by the search provider
type RawSearchHit struct {
	Title   string
	Link    string
	Snippet string
	// Format is the provider's file format or mime hint, if any.
	Format string
}

// CandidateResult is a hit that matched the requested extension but has not
// been probed yet
type CandidateResult struct {
	Title       string
	URL         string
	Filetype    string
	Snippet     string
	ContentType string
}

// ValidationOutcome is the result of probing one candidate URL.
// Size and ContentType are only set when Valid is true.
type ValidationOutcome struct {
	Valid       bool
	Size        int64
	ContentType string
}

// SearchResult is a validated, directly downloadable file
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Filetype    string `json:"filetype"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
}

// NewSearchResult merges a candidate with its successful validation outcome
func NewSearchResult(c CandidateResult, outcome ValidationOutcome) SearchResult {
	return SearchResult{
		Title:       c.Title,
		URL:         c.URL,
		Filetype:    c.Filetype,
		Size:        outcome.Size,
		ContentType: outcome.ContentType,
		Snippet:     c.Snippet,
	}
}
