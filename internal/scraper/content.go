package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// moduleSelector locates the primary content container on a chapter page.
const moduleSelector = "div.training-module"

// Content extracts a chapter's title and raw inner HTML from its content
// container. The title is the trimmed text of the first level-1 heading
// inside the container, or "Untitled" when there is none.
//
// A page without the container yields the placeholder ("No content", "") and
// a logged warning; a container whose markup cannot be serialized yields
// ("Error", "").
func (s *Scraper) Content(doc *goquery.Document) (title, html string) {
	container := doc.Find(moduleSelector).First()
	if container.Length() == 0 {
		s.log.Warn("no content found", "url", docURL(doc))
		return "No content", ""
	}

	title = "Untitled"
	if h1 := container.Find("h1").First(); h1.Length() > 0 {
		title = strings.TrimSpace(h1.Text())
	}

	html, err := container.Html()
	if err != nil {
		s.log.Error("error extracting content", "url", docURL(doc), "err", err)
		return "Error", ""
	}

	return title, html
}

// PageTitle returns the trimmed text of the document's <title> element, or
// "Untitled_Content" when the document has none.
func (s *Scraper) PageTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		s.log.Warn("unable to retrieve page title", "url", docURL(doc))
		return "Untitled_Content"
	}
	return title
}
