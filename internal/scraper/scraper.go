// Package scraper fetches pages from a course module site and extracts the
// pieces the crawl needs: the table-of-contents links on the index page and
// the title plus raw body of each chapter page.
//
// A single Scraper carries the HTTP client, the cookie set and the base URL
// used to resolve relative links, so index discovery and chapter extraction
// share one fetch capability.
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
)

// Config holds configuration options for the scraper.
type Config struct {
	// UserAgent is the User-Agent header value sent with HTTP requests
	UserAgent string
	// Timeout specifies the maximum duration to wait for an HTTP request to complete
	Timeout time.Duration
}

// DefaultConfig returns a default configuration with reasonable values.
func DefaultConfig() *Config {
	return &Config{
		UserAgent: "Mozilla/5.0 (compatible; AcadSave/1.0)",
		Timeout:   10 * time.Second,
	}
}

// Scraper fetches pages and extracts links and content from them.
type Scraper struct {
	base    *url.URL
	cookies map[string]string

	// Config contains the configuration options for this scraper
	Config *Config
	// client is the HTTP client used for making requests
	client *http.Client

	log *log.Logger
}

// New creates a scraper rooted at baseURL. Relative hrefs found on fetched
// pages are resolved against it. The cookie set is attached to every request.
// If config is nil, default configuration will be used.
func New(baseURL string, cookies map[string]string, config *Config, logger *log.Logger) (*Scraper, error) {
	if config == nil {
		config = DefaultConfig()
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	client := &http.Client{
		Timeout: config.Timeout,
	}

	return &Scraper{
		base:    base,
		cookies: cookies,
		Config:  config,
		client:  client,
		log:     logger,
	}, nil
}

// BaseURL returns the URL the scraper was created with.
func (s *Scraper) BaseURL() string {
	return s.base.String()
}

// Fetch performs a GET request against rawURL with the scraper's cookies and
// parses the response body into a document. Any non-200 response is an error.
func (s *Scraper) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	s.log.Debug("request", "url", rawURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", s.Config.UserAgent)
	for name, value := range s.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Url = resp.Request.URL

	return doc, nil
}

// docURL renders the URL a document was fetched from, for log context.
func docURL(doc *goquery.Document) string {
	if doc.Url != nil {
		return doc.Url.String()
	}
	return ""
}
