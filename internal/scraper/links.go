package scraper

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// tocSelector locates the table-of-contents container on the index page.
const tocSelector = "div#TOC"

// Links extracts the chapter links from the index page's table of contents,
// in document order. Relative hrefs are resolved against the scraper's base
// URL. Anchors without an href, with an empty href or with an href that does
// not parse are skipped. Duplicate hrefs stay duplicated.
//
// A missing table of contents yields no links and a logged warning.
func (s *Scraper) Links(doc *goquery.Document) []string {
	toc := doc.Find(tocSelector).First()
	if toc.Length() == 0 {
		s.log.Warn("no table of contents found", "url", docURL(doc))
		return nil
	}

	var links []string
	toc.Find("a").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			s.log.Warn("skipping unparsable href", "href", href)
			return
		}
		links = append(links, s.base.ResolveReference(ref).String())
	})

	return links
}
