package provider

import (
	"testing"

	"github.com/cloo-solutions/deepsearch/internal/domain"
	"github.com/stretchr/testify/assert"
)

var testCreds = Credentials{APIKey: "test-key", CX: "test-cx"}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		ext      string
		expected QueryParams
	}{
		{
			name:  "file extension appends filetype qualifier",
			query: "sample report",
			ext:   ".PDF",
			expected: QueryParams{
				Key: "test-key", CX: "test-cx", Q: "sample report filetype:pdf", Num: 10,
			},
		},
		{
			name:  "image extension switches search mode",
			query: "company logo",
			ext:   "png",
			expected: QueryParams{
				Key: "test-key", CX: "test-cx", Q: "company logo", Num: 10, SearchType: "image",
			},
		},
		{
			name:  "empty extension searches unfiltered",
			query: "anything",
			ext:   "",
			expected: QueryParams{
				Key: "test-key", CX: "test-cx", Q: "anything", Num: 10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := BuildQuery(tt.query, domain.Classify(tt.ext), testCreds, DefaultPageSize)
			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestBuildQuery_PageSizeBounds(t *testing.T) {
	spec := domain.Classify("pdf")

	assert.Equal(t, DefaultPageSize, BuildQuery("q", spec, testCreds, 0).Num)
	assert.Equal(t, 5, BuildQuery("q", spec, testCreds, 5).Num)
	assert.Equal(t, MaxPageSize, BuildQuery("q", spec, testCreds, 50).Num)
}

func TestQueryParams_Values(t *testing.T) {
	values := BuildQuery("logo", domain.Classify("svg"), testCreds, 10).Values()

	assert.Equal(t, "test-key", values.Get("key"))
	assert.Equal(t, "test-cx", values.Get("cx"))
	assert.Equal(t, "logo", values.Get("q"))
	assert.Equal(t, "10", values.Get("num"))
	assert.Equal(t, "image", values.Get("searchType"))

	values = BuildQuery("report", domain.Classify("pdf"), testCreds, 10).Values()
	assert.Equal(t, "report filetype:pdf", values.Get("q"))
	_, hasSearchType := values["searchType"]
	assert.False(t, hasSearchType)
}
