package portfolio

// Block is one structural unit of rendered output. The set of block kinds is
// closed: Heading, Paragraph, UnorderedList, OrderedList, Table, CodeBlock,
// Blockquote and Rule.
type Block interface {
	block()
}

// Span is one inline fragment of a block. Spans never nest: the content of a
// styled span is literal text.
type Span interface {
	span()
}

// Heading is an ATX heading of level 1 to 6.
type Heading struct {
	Level int
	Spans []Span
}

// Paragraph is a single source line of running text.
type Paragraph struct {
	Spans []Span
}

// UnorderedList holds consecutive "- " or "* " items.
type UnorderedList struct {
	Items [][]Span
}

// OrderedItem is one numbered item. Ordinal is the numeral as written.
type OrderedItem struct {
	Ordinal int
	Spans   []Span
}

// OrderedList holds consecutive "N. " items.
type OrderedList struct {
	Items []OrderedItem
}

// Cell is the inline content of one table cell.
type Cell []Span

// Row is one table row. All rows of a Table have the same length.
type Row []Cell

// Alignment is the text alignment of a table column.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Table is a pipe table. When Header is set, Rows[0] is the header row.
// Align has one entry per column.
type Table struct {
	Rows   []Row
	Header bool
	Align  []Alignment
}

// Columns returns the number of columns in the table.
func (t Table) Columns() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// CodeBlock is a fenced code block. Language and Title are empty when the
// fence did not carry them.
type CodeBlock struct {
	Language string
	Title    string
	Text     string
}

// Blockquote is a quoted line. Level counts the leading '>' markers.
type Blockquote struct {
	Level int
	Spans []Span
}

// Rule is a horizontal rule.
type Rule struct{}

func (Heading) block()       {}
func (Paragraph) block()     {}
func (UnorderedList) block() {}
func (OrderedList) block()   {}
func (Table) block()         {}
func (CodeBlock) block()     {}
func (Blockquote) block()    {}
func (Rule) block()          {}

type (
	// Text is unstyled literal text.
	Text string
	// Bold is strong text written as **text**.
	Bold string
	// Italic is emphasised text written as *text*.
	Italic string
	// Strikethrough is text written as ~~text~~.
	Strikethrough string
	// InlineCode is text written between backticks.
	InlineCode string
)

// Image is an inline image written as ![alt](url).
type Image struct {
	Alt string
	URL string
}

// Link is an inline link written as [label](url).
type Link struct {
	Label string
	URL   string
}

func (Text) span()          {}
func (Bold) span()          {}
func (Italic) span()        {}
func (Strikethrough) span() {}
func (InlineCode) span()    {}
func (Image) span()         {}
func (Link) span()          {}

// PlainText returns the literal content of spans with styling dropped.
// Images contribute their alt text and links their label.
func PlainText(spans []Span) string {
	switch len(spans) {
	case 0:
		return ""
	case 1:
		return spanText(spans[0])
	}
	var n int
	for _, s := range spans {
		n += len(spanText(s))
	}
	buf := make([]byte, 0, n)
	for _, s := range spans {
		buf = append(buf, spanText(s)...)
	}
	return string(buf)
}

func spanText(s Span) string {
	switch v := s.(type) {
	case Text:
		return string(v)
	case Bold:
		return string(v)
	case Italic:
		return string(v)
	case Strikethrough:
		return string(v)
	case InlineCode:
		return string(v)
	case Image:
		return v.Alt
	case Link:
		return v.Label
	default:
		return ""
	}
}
