package markdown

import (
	"errors"
	"io"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"acadsave/internal/logger"
)

func newTestConverter() *Converter {
	return New(logger.Discard())
}

func TestConvertBlocks(t *testing.T) {
	cases := []struct {
		name string
		html string
		want string
	}{
		{
			name: "heading",
			html: "<h2>Sub</h2>",
			want: "# T\n\n## Sub\n\n",
		},
		{
			name: "heading deepest level",
			html: "<h6>Deep</h6>",
			want: "# T\n\n###### Deep\n\n",
		},
		{
			name: "heading trims text",
			html: "<h2>  Padded  </h2>",
			want: "# T\n\n## Padded\n\n",
		},
		{
			name: "paragraph with bold",
			html: "<p>Hello <b>world</b></p>",
			want: "# T\n\nHello **world**\n\n",
		},
		{
			name: "paragraph with code and emphasis",
			html: "<p>run <code>make all</code> <em>now</em></p>",
			want: "# T\n\nrun `make all` *now*\n\n",
		},
		{
			name: "paragraph with link",
			html: `<p>see <a href="https://docs.example/guide">the guide</a></p>`,
			want: "# T\n\nsee [the guide](https://docs.example/guide)\n\n",
		},
		{
			name: "paragraph with line break",
			html: "<p>line<br>break</p>",
			want: "# T\n\nline\nbreak\n\n",
		},
		{
			name: "link content is flattened",
			html: `<p><a href="u"><b>bold</b> link</a></p>`,
			want: "# T\n\n[bold link](u)\n\n",
		},
		{
			name: "comment is skipped",
			html: "<p>a<!-- hidden -->b</p>",
			want: "# T\n\nab\n\n",
		},
		{
			name: "image",
			html: `<img src="pic.png" alt="Diagram">`,
			want: "# T\n\n![Diagram](pic.png)\n\n",
		},
		{
			name: "image without alt",
			html: `<img src="p.png">`,
			want: "# T\n\n![Image](p.png)\n\n",
		},
		{
			name: "image with empty alt",
			html: `<img src="p.png" alt="">`,
			want: "# T\n\n![](p.png)\n\n",
		},
		{
			name: "paragraph with image and caption",
			html: `<p><img src="i.png" alt="A">caption</p>`,
			want: "# T\n\n![A](i.png)\n\ncaption\n\n",
		},
		{
			name: "paragraph with image only",
			html: `<p><img src="i.png" alt="A"></p>`,
			want: "# T\n\n![A](i.png)\n\n",
		},
		{
			name: "code block",
			html: "<pre>a = 1\nb = 2</pre>",
			want: "# T\n\n```\na = 1\nb = 2\n```\n\n",
		},
		{
			name: "code block trims edges",
			html: "<pre>  x  </pre>",
			want: "# T\n\n```\nx\n```\n\n",
		},
		{
			name: "table with header and body",
			html: "<table><thead><tr><th>A</th><th>B</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
			want: "# T\n\n| A | B |\n| --- | --- |\n| 1 | 2 |\n\n",
		},
		{
			name: "table without header",
			html: "<table><tbody><tr><td>1</td><td>2</td></tr></tbody></table>",
			want: "# T\n\n| 1 | 2 |\n\n",
		},
		{
			name: "empty table",
			html: "<table></table>",
			want: "# T\n\n",
		},
		{
			name: "unordered list",
			html: "<ul><li>one</li><li>two</li></ul>",
			want: "# T\n\n- one\n- two\n\n",
		},
		{
			name: "ordered list",
			html: "<ol><li>first</li><li>second</li></ol>",
			want: "# T\n\n1. first\n2. second\n\n",
		},
		{
			name: "list items lose inline formatting",
			html: "<ul><li>go <b>deep</b></li></ul>",
			want: "# T\n\n- go deep\n\n",
		},
		{
			name: "nested list text concatenates into parent item",
			html: "<ul><li>top<ul><li>sub</li></ul></li></ul>",
			want: "# T\n\n- topsub\n\n",
		},
		{
			name: "card note",
			html: `<div class="card warning"><div class="card-body">Watch <b>out</b></div></div>`,
			want: "# T\n\n> **Note:** Watch **out**\n\n",
		},
		{
			name: "card body found at any depth",
			html: `<div class="card"><div><div class="card-body">note</div></div></div>`,
			want: "# T\n\n> **Note:** note\n\n",
		},
		{
			name: "card without body renders nothing",
			html: `<div class="card"></div>`,
			want: "# T\n\n",
		},
		{
			name: "div children are dispatched",
			html: "<div><h2>Sub</h2><p>text</p></div>",
			want: "# T\n\n## Sub\n\ntext\n\n",
		},
		{
			name: "nested divs recurse",
			html: "<div><div><p>inner</p></div></div>",
			want: "# T\n\ninner\n\n",
		},
		{
			name: "div direct text trails its elements",
			html: "<div>loose words<p>para</p></div>",
			want: "# T\n\npara\n\nloose words\n\n",
		},
		{
			name: "unhandled kinds are dropped",
			html: "<blockquote>quoted</blockquote><p>kept</p>",
			want: "# T\n\nkept\n\n",
		},
	}

	c := newTestConverter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Convert("T", tc.html); got != tc.want {
				t.Errorf("Convert(%q):\ngot  %q\nwant %q", tc.html, got, tc.want)
			}
		})
	}
}

func TestConvertEmptyContent(t *testing.T) {
	c := newTestConverter()
	if got := c.Convert("T", ""); got != "" {
		t.Errorf("Convert with empty content = %q, want empty", got)
	}
}

func TestConvertTitleRepeatedByHeading(t *testing.T) {
	// The fragment's own h1 matches the prepended title line. The blank line
	// between them keeps duplicate suppression from collapsing the pair.
	c := newTestConverter()
	got := c.Convert("T", "<h1>T</h1><p>Hello <b>world</b></p>")
	want := "# T\n\n# T\n\nHello **world**\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConvertFullChapter(t *testing.T) {
	src := `<h2>Getting Started</h2>
<p>Welcome to the <strong>course</strong>.</p>
<ul><li>read</li><li>practice</li></ul>
<div class="card"><div class="card-body">Bring <em>notes</em>.</div></div>`

	want := "# Intro\n\n" +
		"## Getting Started\n\n" +
		"Welcome to the **course**.\n\n" +
		"- read\n- practice\n\n" +
		"> **Note:** Bring *notes*.\n\n"

	c := newTestConverter()
	if got := c.Convert("Intro", src); got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestConvertParseFailurePassthrough(t *testing.T) {
	orig := parseFragment
	parseFragment = func(io.Reader, *html.Node) ([]*html.Node, error) {
		return nil, errors.New("parse failure")
	}
	defer func() { parseFragment = orig }()

	c := newTestConverter()
	src := "<p>original markup</p>"
	if got := c.Convert("T", src); got != src {
		t.Errorf("got %q, want original input %q", got, src)
	}
}

func TestCleanMarkdownCollapsesNewlines(t *testing.T) {
	if got := cleanMarkdown("a\n\n\n\n\nb"); got != "a\n\nb" {
		t.Errorf("got %q, want %q", got, "a\n\nb")
	}
}

func TestCleanMarkdownDropsAdjacentDuplicates(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"x\nx", "x"},
		{"x\nx\nx", "x"},
		{"x \nx", "x "},
		{"x\ny\nx", "x\ny\nx"},
		{"x\n\nx", "x\n\nx"},
	}
	for _, c := range cases {
		if got := cleanMarkdown(c.in); got != c.want {
			t.Errorf("cleanMarkdown(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanMarkdownIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"a\n\n\n\nb",
		"x\nx\nx",
		"# T\n\n\n# T\n\ntext\n\n",
		"x \nx\ny\n\n\ny",
	}
	for _, in := range inputs {
		once := cleanMarkdown(in)
		if twice := cleanMarkdown(once); twice != once {
			t.Errorf("cleanMarkdown not idempotent for %q: %q -> %q", in, once, twice)
		}
		if strings.Contains(once, "\n\n\n") {
			t.Errorf("cleanMarkdown(%q) = %q still has a run of 3+ newlines", in, once)
		}
		lines := strings.Split(once, "\n")
		for i := 1; i < len(lines); i++ {
			a, b := strings.TrimSpace(lines[i-1]), strings.TrimSpace(lines[i])
			if a != "" && a == b {
				t.Errorf("cleanMarkdown(%q) kept adjacent duplicate line %q", in, a)
			}
		}
	}
}
