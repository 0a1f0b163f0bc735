package portfolio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/indent"
)

const (
	defaultWidth = 80
	minWrapWidth = 10
	codeIndent   = 2
	quoteBar     = "│ "
	ruleRune     = "─"
)

// WriteANSI writes blocks to w as themed terminal text, wrapped to the
// configured width. Blocks are separated by one blank line.
func WriteANSI(w io.Writer, blocks []Block, opts ...RenderOption) error {
	if w == nil {
		return fmt.Errorf("write ansi: writer is nil")
	}
	cfg := renderConfig{theme: DefaultTheme(), width: defaultWidth}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	r := ansiRenderer{styles: cfg.theme.Styles(), width: cfg.width, osc8: cfg.osc8}
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, line := range r.block(blk) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write ansi: %w", err)
	}
	return nil
}

type ansiRenderer struct {
	styles Styles
	width  int
	osc8   bool
}

func (r *ansiRenderer) block(b Block) []string {
	switch v := b.(type) {
	case Heading:
		return r.heading(v)
	case Paragraph:
		return layout(r.words(v.Spans, r.styles.Text, r.osc8), r.width)
	case UnorderedList:
		var lines []string
		for _, item := range v.Items {
			lines = append(lines, r.listItem("- ", item)...)
		}
		return lines
	case OrderedList:
		var lines []string
		for _, item := range v.Items {
			lines = append(lines, r.listItem(strconv.Itoa(item.Ordinal)+". ", item.Spans)...)
		}
		return lines
	case Table:
		return r.table(v)
	case CodeBlock:
		return r.code(v)
	case Blockquote:
		return r.quote(v)
	case Rule:
		return []string{paint(strings.Repeat(ruleRune, r.width), r.styles.ThematicBreak.Prefix)}
	default:
		return nil
	}
}

func (r *ansiRenderer) heading(h Heading) []string {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > len(r.styles.Heading) {
		level = len(r.styles.Heading)
	}
	st := r.styles.Heading[level-1]
	marker := strings.Repeat("#", level) + " "
	lines := layout(r.words(h.Spans, st, r.osc8), r.wrapWidth(len(marker)))
	if len(lines) == 0 {
		return []string{paint(strings.TrimSpace(marker), st.Prefix)}
	}
	// Continuation lines hang under the heading text.
	for i, line := range lines {
		if i == 0 {
			lines[i] = paint(marker, st.Prefix) + line
			continue
		}
		lines[i] = strings.Repeat(" ", len(marker)) + line
	}
	return lines
}

func (r *ansiRenderer) listItem(marker string, spans []Span) []string {
	pad := len(marker)
	lines := layout(r.words(spans, r.styles.Text, r.osc8), r.wrapWidth(pad))
	if len(lines) == 0 {
		lines = []string{""}
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if i == 0 {
			out[i] = paint(marker, r.styles.ListMarker.Prefix) + line
			continue
		}
		out[i] = strings.Repeat(" ", pad) + line
	}
	return out
}

func (r *ansiRenderer) quote(q Blockquote) []string {
	level := q.Level
	if level < 1 {
		level = 1
	}
	bar := paint(strings.Repeat(quoteBar, level), r.styles.Quote.Prefix)
	lines := layout(r.words(q.Spans, r.styles.Quote, r.osc8), r.wrapWidth(ansi.PrintableRuneWidth(bar)))
	if len(lines) == 0 {
		lines = []string{""}
	}
	for i, line := range lines {
		lines[i] = bar + line
	}
	return lines
}

func (r *ansiRenderer) code(c CodeBlock) []string {
	var out []string
	caption := c.Language
	switch {
	case c.Language != "" && c.Title != "":
		caption = c.Language + ":" + c.Title
	case c.Title != "":
		caption = c.Title
	}
	if caption != "" {
		out = append(out, paint(caption, r.styles.CodeTitle.Prefix))
	}
	if c.Text == "" {
		return out
	}
	src := strings.Split(c.Text, "\n")
	for i, line := range src {
		if line != "" {
			src[i] = paint(line, r.styles.CodeBlock.Prefix)
		}
	}
	body := indent.String(strings.Join(src, "\n"), codeIndent)
	return append(out, strings.Split(body, "\n")...)
}

func (r *ansiRenderer) wrapWidth(prefix int) int {
	w := r.width - prefix
	if w < minWrapWidth {
		return minWrapWidth
	}
	return w
}

func (r *ansiRenderer) words(spans []Span, base Style, links bool) []word {
	var wb wordBuilder
	r.addSpans(&wb, spans, base, links)
	return wb.finish()
}

// addSpans appends the words of spans on top of the base style. With links
// set, link labels and image alt text become OSC 8 hyperlinks; otherwise the
// URL follows in parentheses.
func (r *ansiRenderer) addSpans(wb *wordBuilder, spans []Span, base Style, links bool) {
	st := r.styles
	for _, sp := range spans {
		switch v := sp.(type) {
		case Text:
			wb.text(string(v), nil, base.Prefix)
		case Bold:
			wb.text(string(v), nil, base.Prefix, st.Strong.Prefix)
		case Italic:
			wb.text(string(v), nil, base.Prefix, st.Emphasis.Prefix)
		case Strikethrough:
			wb.text(string(v), nil, base.Prefix, st.Strikethrough.Prefix)
		case InlineCode:
			wb.text(string(v), nil, base.Prefix, st.CodeInline.Prefix)
		case Link:
			r.addLink(wb, v.Label, v.URL, links, base.Prefix, st.LinkText.Prefix)
		case Image:
			alt := v.Alt
			if alt == "" {
				alt = "image"
			}
			r.addLink(wb, "["+alt+"]", v.URL, links, base.Prefix, st.ImageAlt.Prefix)
		}
	}
}

func (r *ansiRenderer) addLink(wb *wordBuilder, label, url string, links bool, prefixes ...string) {
	if links && url != "" {
		wb.text(label, func(s string) string { return hyperlink(url, s) }, prefixes...)
		return
	}
	wb.text(label, nil, prefixes...)
	if url == "" {
		return
	}
	wb.breakWord()
	wb.text("("+fitURL(url, r.wrapWidth(2))+")", nil, r.styles.LinkURL.Prefix)
}

type tableCell struct {
	text  string
	width int
}

func (r *ansiRenderer) table(t Table) []string {
	cols := t.Columns()
	if cols == 0 {
		return nil
	}
	cells := make([][]tableCell, len(t.Rows))
	widths := make([]int, cols)
	for i, row := range t.Rows {
		base := r.styles.Text
		if i == 0 && t.Header {
			base = r.styles.TableHeader
		}
		cells[i] = make([]tableCell, cols)
		for j := 0; j < cols && j < len(row); j++ {
			text, w := joinWords(r.words(row[j], base, false))
			cells[i][j] = tableCell{text: text, width: w}
			if w > widths[j] {
				widths[j] = w
			}
		}
	}
	fitColumns(widths, r.width-(3*cols+1))

	border := r.styles.TableBorder.Prefix
	lines := []string{r.tableBorder("┌", "┬", "┐", widths)}
	for i, row := range cells {
		var b strings.Builder
		b.WriteString(paint("│", border))
		for j, cell := range row {
			align := AlignLeft
			if j < len(t.Align) {
				align = t.Align[j]
			}
			b.WriteByte(' ')
			b.WriteString(alignCell(cell, widths[j], align))
			b.WriteByte(' ')
			b.WriteString(paint("│", border))
		}
		lines = append(lines, b.String())
		if i == 0 && t.Header && len(cells) > 1 {
			lines = append(lines, r.tableBorder("├", "┼", "┤", widths))
		}
	}
	return append(lines, r.tableBorder("└", "┴", "┘", widths))
}

func (r *ansiRenderer) tableBorder(left, mid, right string, widths []int) string {
	var b strings.Builder
	b.WriteString(left)
	for j, w := range widths {
		if j > 0 {
			b.WriteString(mid)
		}
		b.WriteString(strings.Repeat("─", w+2))
	}
	b.WriteString(right)
	return paint(b.String(), r.styles.TableBorder.Prefix)
}

// fitColumns narrows the widest columns until the sum fits avail. Columns
// never drop below one cell.
func fitColumns(widths []int, avail int) {
	total := 0
	for _, w := range widths {
		total += w
	}
	for total > avail {
		widest := 0
		for j, w := range widths {
			if w > widths[widest] {
				widest = j
			}
		}
		if widths[widest] <= 1 {
			return
		}
		widths[widest]--
		total--
	}
}

func alignCell(cell tableCell, width int, align Alignment) string {
	text, w := cell.text, cell.width
	if w > width {
		text = truncateWithEllipsis(text, width)
		w = ansi.PrintableRuneWidth(text)
	}
	pad := width - w
	if pad <= 0 {
		return text
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}
