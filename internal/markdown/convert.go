// Package markdown converts chapter HTML fragments into Markdown text.
//
// The converter walks the top-level elements of a fragment and renders a
// fixed set of block kinds: headings, paragraphs, images, preformatted
// blocks, tables, lists and container divs. Inline emphasis, links and code
// spans are handled one level deep inside paragraphs and note bodies;
// anything deeper degrades to plain text. Output is normalized so that it
// never carries runs of three or more newlines or adjacent duplicate lines.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseFragment is swapped out in tests to exercise the parse-failure path.
var parseFragment = html.ParseFragment

// Converter renders HTML fragments as Markdown.
type Converter struct {
	log *log.Logger
}

// New creates a converter that reports conversion problems to logger.
func New(logger *log.Logger) *Converter {
	return &Converter{log: logger}
}

// Convert renders the HTML fragment src as Markdown, prefixed with title as
// a level-1 heading. An empty src yields an empty result. If the fragment
// cannot be parsed, Convert logs the error and returns src unchanged, so a
// degraded chapter still reaches the output directory rather than failing
// the crawl.
func (c *Converter) Convert(title, src string) string {
	if src == "" {
		c.log.Warn("no content to convert")
		return ""
	}

	div := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := parseFragment(strings.NewReader(src), div)
	if err != nil {
		c.log.Error("error converting content to markdown", "err", err)
		return src
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			b.WriteString(c.processElement(n))
		}
	}

	return cleanMarkdown(b.String())
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1,
	atom.H2: 2,
	atom.H3: 3,
	atom.H4: 4,
	atom.H5: 5,
	atom.H6: 6,
}

// processElement renders a single block-level element. Kinds outside the
// handled set produce nothing.
func (c *Converter) processElement(n *html.Node) string {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return heading(n)
	case atom.P:
		return paragraph(n)
	case atom.Img:
		return imageLine(n) + "\n\n"
	case atom.Pre:
		return codeBlock(n)
	case atom.Table:
		return tableBlock(n)
	case atom.Ul:
		return listBlock(n, false)
	case atom.Ol:
		return listBlock(n, true)
	case atom.Div:
		return c.container(n)
	}
	return ""
}

func heading(n *html.Node) string {
	marks := strings.Repeat("#", headingLevels[n.DataAtom])
	return fmt.Sprintf("\n%s %s\n\n", marks, strings.TrimSpace(flattenText(n)))
}

// paragraph renders a paragraph's inline content. A paragraph holding an
// image emits the image line first, then its text; both render even when
// that repeats content.
func paragraph(n *html.Node) string {
	var b strings.Builder
	if img := firstDescendant(n, atom.Img); img != nil {
		b.WriteString(imageLine(img))
		b.WriteString("\n\n")
	}
	b.WriteString(inlineText(n))
	b.WriteString("\n\n")
	return b.String()
}

// imageLine renders an image element. The alt text defaults to "Image" only
// when the attribute is absent, so an explicit empty alt stays empty.
func imageLine(n *html.Node) string {
	alt := "Image"
	if v, ok := attr(n, "alt"); ok {
		alt = v
	}
	src, _ := attr(n, "src")
	return fmt.Sprintf("![%s](%s)", alt, src)
}

func codeBlock(n *html.Node) string {
	return fmt.Sprintf("```\n%s\n```\n\n", strings.TrimSpace(flattenText(n)))
}

// tableBlock renders a pipe table. Headers come from the header cells of the
// table's first head section, body rows from the rows of its first body
// section; a table missing either section simply omits that part.
func tableBlock(n *html.Node) string {
	var b strings.Builder

	var headers []string
	if thead := firstDescendant(n, atom.Thead); thead != nil {
		for _, th := range descendants(thead, atom.Th) {
			headers = append(headers, strings.TrimSpace(flattenText(th)))
		}
	}
	if len(headers) > 0 {
		b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
		seps := make([]string, len(headers))
		for i := range seps {
			seps[i] = "---"
		}
		b.WriteString("| " + strings.Join(seps, " | ") + " |\n")
	}

	if tbody := firstDescendant(n, atom.Tbody); tbody != nil {
		for _, tr := range descendants(tbody, atom.Tr) {
			var cells []string
			for _, td := range descendants(tr, atom.Td) {
				cells = append(cells, strings.TrimSpace(flattenText(td)))
			}
			b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		}
	}

	b.WriteString("\n")
	return b.String()
}

// listBlock renders the direct list items of a list element. Item text is
// flattened whole, so markup inside items loses its formatting.
func listBlock(n *html.Node, ordered bool) string {
	var b strings.Builder
	i := 0
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.DataAtom != atom.Li {
			continue
		}
		i++
		text := strings.TrimSpace(flattenText(child))
		if ordered {
			fmt.Fprintf(&b, "%d. %s\n", i, text)
		} else {
			fmt.Fprintf(&b, "- %s\n", text)
		}
	}
	b.WriteString("\n")
	return b.String()
}

// container renders a div. A div marked with the "card" class becomes a
// blockquote note built from its card-body, or nothing when the body is
// missing. Any other div has the block dispatch applied to its direct
// children, followed by any direct text of its own as a trailing paragraph.
func (c *Converter) container(n *html.Node) string {
	if hasClass(n, "card") {
		if body := firstDivWithClass(n, "card-body"); body != nil {
			return "> **Note:** " + inlineText(body) + "\n\n"
		}
		return ""
	}

	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			b.WriteString(c.processElement(child))
		}
	}
	if text := directText(n); text != "" {
		b.WriteString(text)
		b.WriteString("\n\n")
	}
	return b.String()
}
