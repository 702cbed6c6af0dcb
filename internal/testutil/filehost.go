package testutil

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// File describes what a FileHost answers for one path.
type File struct {
	Status        int
	ContentType   string
	ContentLength int64
}

// FileHost is an httptest server that answers HEAD probes from a fixed
// table and records every path it was asked about.
type FileHost struct {
	*httptest.Server

	mu    sync.Mutex
	files map[string]File
	hits  map[string]int
}

// NewFileHost starts a FileHost serving files and closes it on test cleanup.
func NewFileHost(t *testing.T, files map[string]File) *FileHost {
	t.Helper()
	fh := &FileHost{files: files, hits: make(map[string]int)}
	fh.Server = httptest.NewServer(http.HandlerFunc(fh.serve))
	t.Cleanup(fh.Close)
	return fh
}

func (fh *FileHost) serve(w http.ResponseWriter, r *http.Request) {
	fh.mu.Lock()
	fh.hits[r.URL.Path]++
	f, ok := fh.files[r.URL.Path]
	fh.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if f.ContentType != "" {
		w.Header().Set("Content-Type", f.ContentType)
	}
	w.Header().Set("Content-Length", strconv.FormatInt(f.ContentLength, 10))
	status := f.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

// URL returns the absolute URL for path on this host.
func (fh *FileHost) URL(path string) string {
	return fh.Server.URL + path
}

// Hits returns how many requests path received.
func (fh *FileHost) Hits(path string) int {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	return fh.hits[path]
}

// TotalHits returns the number of requests received across all paths.
func (fh *FileHost) TotalHits() int {
	fh.mu.Lock()
	defer fh.mu.Unlock()
	total := 0
	for _, n := range fh.hits {
		total += n
	}
	return total
}
