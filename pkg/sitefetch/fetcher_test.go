package sitefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(title, body string) string {
	return "<html><head><title>" + title + "</title></head><body>" + body + "</body></html>"
}

func newTestSite(t *testing.T, pages map[string]string, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		body, ok := pages[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearchReturnsRelevantPages(t *testing.T) {
	server := newTestSite(t, map[string]string{
		"/":                    page("Home", "Welcome to the firm."),
		"/retirement-planning": page("Retirement Planning", "We guide clients through retirement income decisions."),
		"/tax-planning":        page("Tax Planning", "Strategies for taxes in retirement."),
	}, nil)

	f := NewFetcher(server.URL, time.Second, time.Minute)
	results := f.Search(context.Background(), "how do I plan for retirement")

	require.Len(t, results, 2)
	assert.Equal(t, "Retirement Planning", results[0].Title)
	assert.Equal(t, "Tax Planning", results[1].Title)
	for _, r := range results {
		assert.Contains(t, strings.ToLower(r.Content), "retirement")
	}
}

func TestSearchIgnoresShortQueryWords(t *testing.T) {
	server := newTestSite(t, map[string]string{
		"/": page("Home", "the and for a to"),
	}, nil)

	f := NewFetcher(server.URL, time.Second, time.Minute)

	// Every query word is three characters or fewer, so nothing matches.
	assert.Empty(t, f.Search(context.Background(), "the and for"))
}

func TestSearchCapsResults(t *testing.T) {
	pages := make(map[string]string, len(sitePaths))
	for _, path := range sitePaths {
		pages[path] = page("Page", "retirement content everywhere")
	}
	server := newTestSite(t, pages, nil)

	f := NewFetcher(server.URL, time.Second, time.Minute)
	results := f.Search(context.Background(), "retirement")

	assert.Len(t, results, maxResults)
}

func TestFetchPageStripsChrome(t *testing.T) {
	server := newTestSite(t, map[string]string{
		"/": "<html><head><title>Home</title><script>var x = 'retirement';</script></head>" +
			"<body><nav>retirement nav links</nav><main>Planning your retirement.</main>" +
			"<footer>retirement footer</footer></body></html>",
	}, nil)

	f := NewFetcher(server.URL, time.Second, time.Minute)
	results := f.Search(context.Background(), "retirement")

	require.Len(t, results, 1)
	assert.Equal(t, "Planning your retirement.", results[0].Content)
}

func TestFetchPagePrefersMainContent(t *testing.T) {
	server := newTestSite(t, map[string]string{
		"/": "<html><head><title>Home</title></head><body>sidebar retirement noise" +
			"<main>Retirement guidance from the main section.</main></body></html>",
	}, nil)

	f := NewFetcher(server.URL, time.Second, time.Minute)
	results := f.Search(context.Background(), "retirement")

	require.Len(t, results, 1)
	assert.Equal(t, "Retirement guidance from the main section.", results[0].Content)
}

func TestFetchPageTitleFallsBackToURL(t *testing.T) {
	server := newTestSite(t, map[string]string{
		"/": "<html><body>retirement content</body></html>",
	}, nil)

	f := NewFetcher(server.URL, time.Second, time.Minute)
	results := f.Search(context.Background(), "retirement")

	require.Len(t, results, 1)
	assert.Equal(t, server.URL+"/", results[0].Title)
}

func TestSearchTruncatesContent(t *testing.T) {
	long := "retirement " + strings.Repeat("x", 3*maxResultRunes)
	server := newTestSite(t, map[string]string{
		"/": page("Home", long),
	}, nil)

	f := NewFetcher(server.URL, time.Second, time.Minute)
	results := f.Search(context.Background(), "retirement")

	require.Len(t, results, 1)
	assert.Len(t, []rune(results[0].Content), maxResultRunes)
}

func TestSearchCachesPages(t *testing.T) {
	var hits int32
	pages := make(map[string]string, len(sitePaths))
	for _, path := range sitePaths {
		pages[path] = page("Home", "retirement content")
	}
	server := newTestSite(t, pages, &hits)

	f := NewFetcher(server.URL, time.Second, time.Minute)

	f.Search(context.Background(), "retirement")
	first := atomic.LoadInt32(&hits)
	f.Search(context.Background(), "retirement")

	// The second pass is served entirely from cache.
	assert.Equal(t, first, atomic.LoadInt32(&hits))
}

func TestSearchSkipsFailedPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(server.URL, time.Second, time.Minute)

	assert.Empty(t, f.Search(context.Background(), "retirement"))
}

func TestSearchUnreachableSite(t *testing.T) {
	f := NewFetcher("http://127.0.0.1:1", 100*time.Millisecond, time.Minute)

	assert.Empty(t, f.Search(context.Background(), "retirement"))
}
