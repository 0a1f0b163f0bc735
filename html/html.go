// Package html renders portfolio blocks as a sanitised HTML fragment for page
// layouts.
package html

import (
	"bytes"
	"errors"
	"fmt"
	stdhtml "html"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"

	portfolio "github.com/Nemesis62542/nemesis-portfolio"
)

// ErrUnknownBlock is returned for a Block implementation this package does
// not know how to render.
var ErrUnknownBlock = errors.New("html: unknown block type")

// Option configures Render.
type Option func(*config)

type config struct {
	anchors  bool
	tabWidth int
}

// WithAnchors toggles heading id attributes. Enabled by default.
func WithAnchors(enabled bool) Option {
	return func(c *config) {
		c.anchors = enabled
	}
}

// WithTabWidth sets the tab width used inside highlighted code.
func WithTabWidth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.tabWidth = n
		}
	}
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowElements("figure", "figcaption", "pre", "code", "span", "del")
	p.AllowAttrs("value").Matching(bluemonday.Integer).OnElements("li")
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right").OnElements("th", "td")
	return p
}

func formatter(tabWidth int) *chtml.Formatter {
	return chtml.New(chtml.WithClasses(true), chtml.TabWidth(tabWidth))
}

// Render writes blocks as HTML. Headings carry slug anchors, code blocks are
// highlighted with CSS classes (see CSS) and the result passes through a
// user-generated-content sanitiser, so unsafe URLs never reach the page.
func Render(blocks []portfolio.Block, opts ...Option) (string, error) {
	cfg := config{anchors: true, tabWidth: 4}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	r := &renderer{cfg: cfg, ids: make(map[string]struct{})}
	for _, b := range blocks {
		if err := r.block(b); err != nil {
			return "", err
		}
	}
	return policy.Sanitize(r.buf.String()), nil
}

// CSS returns the stylesheet for the chroma style name; unknown names fall
// back to chroma's default style.
func CSS(style string) (string, error) {
	var buf bytes.Buffer
	if err := formatter(4).WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("write css: %w", err)
	}
	return buf.String(), nil
}

type renderer struct {
	cfg config
	buf bytes.Buffer
	ids map[string]struct{}
}

func (r *renderer) block(b portfolio.Block) error {
	switch b := b.(type) {
	case portfolio.Heading:
		tag := "h" + strconv.Itoa(b.Level)
		r.buf.WriteString("<" + tag)
		if r.cfg.anchors {
			r.buf.WriteString(` id="` + r.anchor(portfolio.PlainText(b.Spans)) + `"`)
		}
		r.buf.WriteString(">")
		r.spans(b.Spans)
		r.buf.WriteString("</" + tag + ">\n")
	case portfolio.Paragraph:
		r.buf.WriteString("<p>")
		r.spans(b.Spans)
		r.buf.WriteString("</p>\n")
	case portfolio.UnorderedList:
		r.buf.WriteString("<ul>\n")
		for _, item := range b.Items {
			r.buf.WriteString("<li>")
			r.spans(item)
			r.buf.WriteString("</li>\n")
		}
		r.buf.WriteString("</ul>\n")
	case portfolio.OrderedList:
		r.buf.WriteString("<ol>\n")
		for _, item := range b.Items {
			fmt.Fprintf(&r.buf, `<li value="%d">`, item.Ordinal)
			r.spans(item.Spans)
			r.buf.WriteString("</li>\n")
		}
		r.buf.WriteString("</ol>\n")
	case portfolio.Table:
		r.table(b)
	case portfolio.CodeBlock:
		return r.code(b)
	case portfolio.Blockquote:
		level := max(b.Level, 1)
		r.buf.WriteString(strings.Repeat("<blockquote>", level))
		r.buf.WriteString("<p>")
		r.spans(b.Spans)
		r.buf.WriteString("</p>")
		r.buf.WriteString(strings.Repeat("</blockquote>", level))
		r.buf.WriteString("\n")
	case portfolio.Rule:
		r.buf.WriteString("<hr>\n")
	default:
		return fmt.Errorf("%w: %T", ErrUnknownBlock, b)
	}
	return nil
}

// anchor returns a unique id for a heading; repeats get -1, -2 and so on.
func (r *renderer) anchor(text string) string {
	base := slug.Make(text)
	if base == "" {
		base = "section"
	}
	id := base
	for n := 1; ; n++ {
		if _, taken := r.ids[id]; !taken {
			break
		}
		id = base + "-" + strconv.Itoa(n)
	}
	r.ids[id] = struct{}{}
	return id
}

func (r *renderer) table(t portfolio.Table) {
	r.buf.WriteString("<table>\n")
	rows := t.Rows
	if t.Header && len(rows) > 0 {
		r.buf.WriteString("<thead>\n")
		r.row(rows[0], "th", t.Align)
		r.buf.WriteString("</thead>\n")
		rows = rows[1:]
	}
	if len(rows) > 0 {
		r.buf.WriteString("<tbody>\n")
		for _, row := range rows {
			r.row(row, "td", t.Align)
		}
		r.buf.WriteString("</tbody>\n")
	}
	r.buf.WriteString("</table>\n")
}

func (r *renderer) row(row portfolio.Row, tag string, align []portfolio.Alignment) {
	r.buf.WriteString("<tr>")
	for i, cell := range row {
		r.buf.WriteString("<" + tag)
		if i < len(align) && align[i] != portfolio.AlignLeft {
			r.buf.WriteString(` style="text-align: ` + align[i].String() + `"`)
		}
		r.buf.WriteString(">")
		r.spans(cell)
		r.buf.WriteString("</" + tag + ">")
	}
	r.buf.WriteString("</tr>\n")
}

func (r *renderer) code(c portfolio.CodeBlock) error {
	lexer := lexers.Get(c.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, c.Text)
	if err != nil {
		return fmt.Errorf("tokenise %q: %w", c.Language, err)
	}
	r.buf.WriteString(`<figure class="code">` + "\n")
	if c.Title != "" {
		r.buf.WriteString("<figcaption>" + stdhtml.EscapeString(c.Title) + "</figcaption>\n")
	}
	if err := formatter(r.cfg.tabWidth).Format(&r.buf, styles.Fallback, it); err != nil {
		return fmt.Errorf("highlight %q: %w", c.Language, err)
	}
	r.buf.WriteString("</figure>\n")
	return nil
}

func (r *renderer) spans(spans []portfolio.Span) {
	for _, s := range spans {
		switch s := s.(type) {
		case portfolio.Text:
			r.buf.WriteString(stdhtml.EscapeString(string(s)))
		case portfolio.Bold:
			r.wrap("strong", string(s))
		case portfolio.Italic:
			r.wrap("em", string(s))
		case portfolio.Strikethrough:
			r.wrap("del", string(s))
		case portfolio.InlineCode:
			r.wrap("code", string(s))
		case portfolio.Image:
			fmt.Fprintf(&r.buf, `<img src="%s" alt="%s">`, stdhtml.EscapeString(s.URL), stdhtml.EscapeString(s.Alt))
		case portfolio.Link:
			fmt.Fprintf(&r.buf, `<a href="%s">%s</a>`, stdhtml.EscapeString(s.URL), stdhtml.EscapeString(s.Label))
		}
	}
}

func (r *renderer) wrap(tag, text string) {
	r.buf.WriteString("<" + tag + ">" + stdhtml.EscapeString(text) + "</" + tag + ">")
}
