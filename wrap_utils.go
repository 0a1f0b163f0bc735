package portfolio

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/Nemesis62542/nemesis-portfolio/internal/palette"
)

func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return "…"
	}
	out := truncate.StringWithTail(text, uint(limit), "…")
	if strings.Contains(out, "\x1b[") {
		out += palette.Reset
	}
	return out
}

func fitURL(url string, limit int) string {
	if runewidth.StringWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if runewidth.StringWidth(trimmed) <= limit {
			return trimmed
		}
	}
	return truncateWithEllipsis(url, limit)
}

// paint wraps text in the given style prefixes and a trailing reset. With no
// prefixes the text is returned unchanged.
func paint(text string, prefixes ...string) string {
	var n int
	for _, p := range prefixes {
		n += len(p)
	}
	if n == 0 {
		return text
	}
	var b strings.Builder
	b.Grow(n + len(text) + len(palette.Reset))
	for _, p := range prefixes {
		b.WriteString(p)
	}
	b.WriteString(text)
	b.WriteString(palette.Reset)
	return b.String()
}

// fragment is a styled piece of a word with its printable width.
type fragment struct {
	text  string
	width int
}

// word is a run of fragments with no break opportunity inside.
type word []fragment

func (w word) width() int {
	var n int
	for _, f := range w {
		n += f.width
	}
	return n
}

type wordBuilder struct {
	words []word
	cur   word
}

// text splits s on whitespace and appends the pieces as fragments. Adjacent
// calls without whitespace in between continue the same word. wrap, when
// set, encloses each styled fragment (used for hyperlinks).
func (b *wordBuilder) text(s string, wrap func(string) string, prefixes ...string) {
	start := -1
	for i, c := range s {
		if c == ' ' || c == '\t' {
			if start >= 0 {
				b.fragment(s[start:i], wrap, prefixes)
				start = -1
			}
			b.breakWord()
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		b.fragment(s[start:], wrap, prefixes)
	}
}

func (b *wordBuilder) fragment(s string, wrap func(string) string, prefixes []string) {
	styled := paint(s, prefixes...)
	if wrap != nil {
		styled = wrap(styled)
	}
	b.cur = append(b.cur, fragment{text: styled, width: runewidth.StringWidth(s)})
}

func (b *wordBuilder) breakWord() {
	if len(b.cur) > 0 {
		b.words = append(b.words, b.cur)
		b.cur = nil
	}
}

func (b *wordBuilder) finish() []word {
	b.breakWord()
	return b.words
}

// layout fills lines greedily up to width. A word wider than the line gets a
// line of its own.
func layout(words []word, width int) []string {
	var lines []string
	var b strings.Builder
	lineWidth := 0
	for _, w := range words {
		ww := w.width()
		if lineWidth > 0 && lineWidth+1+ww > width {
			lines = append(lines, b.String())
			b.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			b.WriteByte(' ')
			lineWidth++
		}
		for _, f := range w {
			b.WriteString(f.text)
		}
		lineWidth += ww
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}

func joinWords(words []word) (string, int) {
	var b strings.Builder
	width := 0
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
			width++
		}
		for _, f := range w {
			b.WriteString(f.text)
		}
		width += w.width()
	}
	return b.String(), width
}
