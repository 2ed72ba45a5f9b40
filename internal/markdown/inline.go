package markdown

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inlineText renders the immediate children of an element. Text passes
// through raw; strong/b, em/i, code and anchors get their Markdown form with
// their content flattened; br becomes a newline. Any other element degrades
// to its flattened text, so nesting such as emphasis inside a link is lost.
func inlineText(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
			continue
		}
		if child.Type != html.ElementNode {
			continue
		}
		switch child.DataAtom {
		case atom.Strong, atom.B:
			b.WriteString("**" + flattenText(child) + "**")
		case atom.Em, atom.I:
			b.WriteString("*" + flattenText(child) + "*")
		case atom.Code:
			b.WriteString("`" + flattenText(child) + "`")
		case atom.A:
			href, _ := attr(child, "href")
			b.WriteString("[" + flattenText(child) + "](" + href + ")")
		case atom.Br:
			b.WriteString("\n")
		default:
			b.WriteString(flattenText(child))
		}
	}
	return b.String()
}

// flattenText concatenates every text node under n in document order,
// without separators.
func flattenText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// directText concatenates the raw data of n's own non-whitespace text
// children, ignoring text wrapped in child elements.
func directText(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode && strings.TrimSpace(child.Data) != "" {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}

// firstDescendant returns the first element with the given atom strictly
// below n, in document order.
func firstDescendant(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
		if found := firstDescendant(c, a); found != nil {
			return found
		}
	}
	return nil
}

// firstDivWithClass returns the first div below n carrying the given class
// token.
func firstDivWithClass(n *html.Node, class string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Div && hasClass(c, class) {
			return c
		}
		if found := firstDivWithClass(c, class); found != nil {
			return found
		}
	}
	return nil
}

// descendants collects every element with the given atom below n, in
// document order.
func descendants(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == a {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// hasClass reports whether the element's class attribute contains the given
// token.
func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, f := range strings.Fields(v) {
		if f == class {
			return true
		}
	}
	return false
}
