// Package crawler sequences a full crawl of one course module: fetch the
// index page, discover chapter links, then fetch, convert and persist each
// chapter in order with a pacing delay between requests.
package crawler

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"acadsave/internal/markdown"
	"acadsave/internal/scraper"
	"acadsave/internal/storage"
)

// Config holds configuration options for a crawl.
type Config struct {
	// OutputRoot is the parent directory crawl results are written under
	OutputRoot string
	// LinksFile is the name of the transient link-list file
	LinksFile string
	// MinDelay and MaxDelay bound the randomized pacing delay imposed
	// between successive chapter fetches
	MinDelay time.Duration
	MaxDelay time.Duration
}

// DefaultConfig returns a default configuration with reasonable values.
func DefaultConfig() *Config {
	return &Config{
		OutputRoot: "results",
		LinksFile:  "links.txt",
		MinDelay:   1 * time.Second,
		MaxDelay:   3 * time.Second,
	}
}

// Crawler runs the crawl against one module index page.
type Crawler struct {
	scraper   *scraper.Scraper
	converter *markdown.Converter
	config    *Config
	log       *log.Logger

	// Verbose enables the banner and the result table on stdout
	Verbose bool
}

// New creates a crawler from its collaborators. If config is nil, default
// configuration will be used.
func New(s *scraper.Scraper, conv *markdown.Converter, config *Config, logger *log.Logger) *Crawler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Crawler{
		scraper:   s,
		converter: conv,
		config:    config,
		log:       logger,
	}
}

// pageResult records the outcome of one chapter for the end-of-run summary.
type pageResult struct {
	Index  int
	URL    string
	Title  string
	File   string
	Status string
}

const (
	statusSaved  = "saved"
	statusFailed = "failed"
)

// Run executes one full crawl. Chapter-level failures are logged and
// skipped; the run only aborts on cancellation or when the output directory
// cannot be created. The transient link list is removed once every chapter
// has been visited, so an interrupted run leaves it behind along with the
// files already written.
func (c *Crawler) Run(ctx context.Context) error {
	c.banner()

	baseURL := c.scraper.BaseURL()
	index, err := c.scraper.Fetch(ctx, baseURL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Error("error fetching index page", "url", baseURL, "err", err)
		return nil
	}

	pageTitle := c.scraper.PageTitle(index)
	outputDir, err := storage.EnsureDir(filepath.Join(c.config.OutputRoot, storage.SanitizeFilename(pageTitle)))
	if err != nil {
		return err
	}

	links := c.scraper.Links(index)
	if len(links) == 0 {
		c.log.Warn("no links found to scrape")
		return nil
	}

	linksPath := filepath.Join(outputDir, c.config.LinksFile)
	if err := storage.WriteLines(linksPath, links); err != nil {
		c.log.Error("error saving links", "err", err)
	}

	c.log.Info("starting to scrape pages", "count", len(links))

	results := make([]pageResult, 0, len(links))
	for i, link := range links {
		if err := ctx.Err(); err != nil {
			return err
		}

		results = append(results, c.scrapePage(ctx, i+1, len(links), link, outputDir))

		if i < len(links)-1 {
			if err := c.pause(ctx); err != nil {
				return err
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := storage.Remove(linksPath); err != nil {
		c.log.Error("error removing links file", "err", err)
	}

	saved := 0
	for _, r := range results {
		if r.Status == statusSaved {
			saved++
		}
	}
	c.log.Info("scraping completed", "pages", len(links), "saved", saved)
	c.summary(results)

	return nil
}

// scrapePage fetches one chapter, converts its content and writes the
// Markdown file. A chapter whose content container is missing still yields
// a file, named from the placeholder title.
func (c *Crawler) scrapePage(ctx context.Context, index, total int, link, outputDir string) pageResult {
	c.log.Info("scraping page", "page", fmt.Sprintf("%d/%d", index, total), "url", link)

	res := pageResult{Index: index, URL: link, Status: statusFailed}

	doc, err := c.scraper.Fetch(ctx, link)
	if err != nil {
		c.log.Error("error fetching page", "url", link, "err", err)
		return res
	}

	title, body := c.scraper.Content(doc)
	res.Title = title

	text := c.converter.Convert(title, body)

	name := storage.ChapterFileName(index, title)
	if err := storage.WriteFile(filepath.Join(outputDir, name), text); err != nil {
		c.log.Error("error saving content", "file", name, "err", err)
		return res
	}

	c.log.Info("content saved", "file", name)
	res.File = name
	res.Status = statusSaved
	return res
}

// pause waits for a randomized delay drawn from [MinDelay, MaxDelay), or
// returns early with the context's error on cancellation.
func (c *Crawler) pause(ctx context.Context) error {
	delay := c.config.MinDelay
	if span := c.config.MaxDelay - c.config.MinDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
