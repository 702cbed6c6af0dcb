package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SearchRequest
		wantErr bool
	}{
		{"valid", SearchRequest{Query: "sample report", Extension: "pdf"}, false},
		{"dotted extension", SearchRequest{Query: "logo", Extension: ".PNG"}, false},
		{"missing query", SearchRequest{Extension: "pdf"}, true},
		{"missing extension", SearchRequest{Query: "report"}, true},
		{"both missing", SearchRequest{}, true},
		{"extension without name", SearchRequest{Query: "report", Extension: "."}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Equal(t, ErrMissingQueryOrExt, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSearchResult(t *testing.T) {
	candidate := CandidateResult{
		Title:       "Annual report",
		URL:         "https://example.com/report.pdf",
		Filetype:    "pdf",
		Snippet:     "2024 figures",
		ContentType: "PDF/Adobe Acrobat",
	}

	result := NewSearchResult(candidate, ValidationOutcome{Valid: true, Size: 51200, ContentType: "application/pdf"})

	assert.Equal(t, SearchResult{
		Title:       "Annual report",
		URL:         "https://example.com/report.pdf",
		Filetype:    "pdf",
		Size:        51200,
		ContentType: "application/pdf",
		Snippet:     "2024 figures",
	}, result)
}

func TestDomainError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamError(cause)

	assert.Equal(t, ErrCodeUpstream, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[UPSTREAM_ERROR] search provider request failed: connection refused", err.Error())
	assert.Equal(t, "search provider request failed: connection refused", err.PublicMessage())

	assert.Equal(t, "[VALIDATION_ERROR] Missing query or ext", ErrMissingQueryOrExt.Error())
	assert.Equal(t, "Missing query or ext", ErrMissingQueryOrExt.PublicMessage())
}
