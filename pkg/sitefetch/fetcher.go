package sitefetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"
)

// Page is a piece of live site content used to augment retrieval context.
type Page struct {
	URL     string
	Title   string
	Content string
}

const (
	maxPageRunes   = 5000
	maxResultRunes = 1000
	maxResults     = 3
)

// sitePaths are the marketing pages worth checking for any query.
var sitePaths = []string{
	"/",
	"/about",
	"/services",
	"/retirement-planning",
	"/tax-planning",
	"/wealth-management",
}

// Fetcher pulls pages from the advisory firm's site so answers can draw on
// current site copy alongside the approved knowledge base. Pages are cached
// between requests; fetch failures degrade to an empty result, never an
// error.
type Fetcher struct {
	baseURL string
	client  *http.Client
	cache   *gocache.Cache
}

func NewFetcher(baseURL string, timeout, cacheTTL time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Search fetches the known site pages and returns the ones relevant to the
// query, truncated for prompt use.
func (f *Fetcher) Search(ctx context.Context, query string) []Page {
	var results []Page
	for _, path := range sitePaths {
		page, err := f.fetchPage(ctx, f.baseURL+path)
		if err != nil || page == nil {
			continue
		}
		if !relevant(page.Content, query) {
			continue
		}
		p := *page
		p.Content = truncateRunes(p.Content, maxResultRunes)
		results = append(results, p)
		if len(results) == maxResults {
			break
		}
	}
	return results
}

func (f *Fetcher) fetchPage(ctx context.Context, url string) (*Page, error) {
	if cached, ok := f.cache.Get(url); ok {
		page := cached.(Page)
		return &page, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "advisor-chat-bot/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	// Chrome elements carry no answerable content.
	doc.Find("script, style, nav, footer").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = url
	}

	content := doc.Find("main").First()
	if content.Length() == 0 {
		content = doc.Find("article").First()
	}
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}

	text := normalizeWhitespace(content.Text())
	if text == "" {
		return nil, nil
	}

	page := Page{
		URL:     url,
		Title:   title,
		Content: truncateRunes(text, maxPageRunes),
	}
	f.cache.Set(url, page, gocache.DefaultExpiration)
	return &page, nil
}

// relevant reports whether any substantial query word (longer than three
// characters) appears in the page content.
func relevant(content, query string) bool {
	contentLower := strings.ToLower(content)
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) > 3 && strings.Contains(contentLower, word) {
			return true
		}
	}
	return false
}

func normalizeWhitespace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
