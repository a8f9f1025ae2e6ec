package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/fetch"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head><title>Senior Product Manager</title><script>track()</script></head>
<body>
	<nav>Home | Jobs</nav>
	<div class="job-description">
		<h1>Senior Product Manager</h1>
		<h2>Requirements</h2>
		<ul>
			<li>5+ years of product management experience</li>
			<li>Experience with SQL and A/B testing</li>
		</ul>
	</div>
	<form id="application-form">Upload your resume</form>
	<footer>Equal opportunity employer</footer>
</body>
</html>`

func TestFromURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	text, meta, err := FromURL(context.Background(), server.URL, nil)
	require.NoError(t, err)

	assert.Contains(t, text, "# Senior Product Manager")
	assert.Contains(t, text, "## Requirements")
	assert.Contains(t, text, "- 5+ years of product management experience")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Upload your resume")
	assert.NotContains(t, text, "track()")

	assert.Equal(t, server.URL, meta.URL)
	assert.Equal(t, string(fetch.PlatformUnknown), meta.Platform)
	assert.Equal(t, Hash(text), meta.Hash)
	assert.False(t, meta.FromCache)
}

func TestFromURL_PlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("Requirements:\n-  SQL\n-  Agile"))
	}))
	defer server.Close()

	text, _, err := FromURL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "Requirements:\n- SQL\n- Agile", text)
}

func TestFromURL_UsesCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer server.Close()

	fetcher := fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{Cache: cache.NewMemory()})
	first, _, err := FromURL(context.Background(), server.URL, fetcher)
	require.NoError(t, err)
	second, meta, err := FromURL(context.Background(), server.URL, fetcher)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, meta.FromCache)
	assert.Equal(t, 1, hits)
}

func TestFromURL_Errors(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><script>app()</script></body></html>"))
	}))
	defer empty.Close()

	tests := []struct {
		name    string
		url     string
		message string
	}{
		{"invalid url", "not a url", "HTTP request failed"},
		{"http 404", notFound.URL, "404"},
		{"no content", empty.URL, "no text content found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FromURL(context.Background(), tt.url, nil)
			require.Error(t, err)

			var ingestErr *Error
			require.True(t, errors.As(err, &ingestErr))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
