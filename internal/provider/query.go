package provider

import (
	"net/url"
	"strconv"

	"github.com/cloo-solutions/deepsearch/internal/domain"
)

const (
	// DefaultPageSize is the number of hits requested per search.
	DefaultPageSize = 10
	// MaxPageSize is the largest page the provider accepts.
	MaxPageSize = 10

	SearchTypeImage = "image"
)

// Credentials authenticate against the search provider.
type Credentials struct {
	APIKey string
	CX     string
}

// QueryParams are the provider request parameters for one search.
type QueryParams struct {
	Key        string
	CX         string
	Q          string
	Num        int
	SearchType string
}

// BuildQuery turns a free-text query and extension into provider parameters.
// Image extensions switch to image search; other extensions append a
// filetype qualifier; an empty extension leaves the query untouched.
func BuildQuery(query string, spec domain.ExtensionSpec, creds Credentials, pageSize int) QueryParams {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	params := QueryParams{
		Key: creds.APIKey,
		CX:  creds.CX,
		Q:   query,
		Num: pageSize,
	}

	switch {
	case spec.IsImageClass:
		params.SearchType = SearchTypeImage
	case !spec.IsEmpty():
		params.Q = query + " filetype:" + spec.Normalized
	}

	return params
}

// Values encodes the parameters for the provider's query string.
func (p QueryParams) Values() url.Values {
	values := url.Values{}
	values.Set("key", p.Key)
	values.Set("cx", p.CX)
	values.Set("q", p.Q)
	values.Set("num", strconv.Itoa(p.Num))
	if p.SearchType != "" {
		values.Set("searchType", p.SearchType)
	}
	return values
}
