package portfolio

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const fenceMarker = "```"

var (
	orderedItemPattern = regexp.MustCompile(`^(\d+)\.\s(.*)$`)
	separatorPattern   = regexp.MustCompile(`^:?-+:?$`)
)

// Render converts source into its sequence of blocks. It never fails:
// constructs that do not parse fall back to paragraphs and plain text. An
// empty source yields no blocks.
func Render(source string) []Block {
	if source == "" {
		return nil
	}
	var s scanner
	for _, line := range strings.Split(source, "\n") {
		s.line(strings.TrimSuffix(line, "\r"))
	}
	s.finish()
	return s.out
}

// scanner holds the accumulators of a single Render pass. Unordered and
// ordered list items accumulate independently; a table and the lists are
// never open at the same time.
type scanner struct {
	out []Block

	unordered [][]Span
	ordered   []OrderedItem

	rows      []Row
	align     []Alignment
	alignSeen bool

	inFence    bool
	fence      CodeBlock
	fenceLines []string
}

func (s *scanner) emit(b Block) {
	s.out = append(s.out, b)
}

func (s *scanner) line(line string) {
	if strings.HasPrefix(line, fenceMarker) {
		s.fenceDelimiter(line)
		return
	}
	if s.inFence {
		s.fenceLines = append(s.fenceLines, line)
		return
	}

	trimmed := strings.TrimSpace(line)
	if cells, ok := tableCells(trimmed); ok {
		s.flushLists()
		s.tableRow(cells)
		return
	}
	if level, rest, ok := headingLine(line); ok {
		s.flush()
		s.emit(Heading{Level: level, Spans: ResolveInline(strings.TrimSpace(rest))})
		return
	}
	if trimmed == "---" || trimmed == "***" {
		s.flush()
		s.emit(Rule{})
		return
	}
	if strings.HasPrefix(line, ">") {
		s.flush()
		level := len(line) - len(strings.TrimLeft(line, ">"))
		rest := strings.TrimPrefix(line[level:], " ")
		s.emit(Blockquote{Level: level, Spans: ResolveInline(strings.TrimRight(rest, " \t"))})
		return
	}
	if m := orderedItemPattern.FindStringSubmatch(line); m != nil {
		s.flushTable()
		ordinal, err := strconv.Atoi(m[1])
		if err != nil {
			ordinal = math.MaxInt
		}
		s.ordered = append(s.ordered, OrderedItem{Ordinal: ordinal, Spans: ResolveInline(strings.TrimSpace(m[2]))})
		return
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
		s.flushTable()
		s.unordered = append(s.unordered, ResolveInline(strings.TrimSpace(line[2:])))
		return
	}
	s.flush()
	if trimmed == "" {
		return
	}
	s.emit(Paragraph{Spans: ResolveInline(trimmed)})
}

func (s *scanner) fenceDelimiter(line string) {
	if s.inFence {
		s.closeFence()
		return
	}
	s.flush()
	lang, title, _ := strings.Cut(strings.TrimSpace(line[len(fenceMarker):]), ":")
	s.inFence = true
	s.fence = CodeBlock{Language: strings.TrimSpace(lang), Title: strings.TrimSpace(title)}
	s.fenceLines = nil
}

// closeFence emits the open code block. One leading and one trailing blank
// line are dropped; everything else is kept verbatim.
func (s *scanner) closeFence() {
	lines := s.fenceLines
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	cb := s.fence
	cb.Text = strings.Join(lines, "\n")
	s.emit(cb)
	s.inFence = false
	s.fence = CodeBlock{}
	s.fenceLines = nil
}

func (s *scanner) tableRow(cells []string) {
	if isSeparatorRow(cells) {
		if !s.alignSeen {
			s.align = make([]Alignment, len(cells))
			for i, c := range cells {
				s.align[i] = cellAlignment(c)
			}
			s.alignSeen = true
		}
		return
	}
	row := make(Row, len(cells))
	for i, c := range cells {
		row[i] = ResolveInline(c)
	}
	s.rows = append(s.rows, row)
}

func (s *scanner) flush() {
	s.flushLists()
	s.flushTable()
}

func (s *scanner) flushLists() {
	if len(s.unordered) > 0 {
		s.emit(UnorderedList{Items: s.unordered})
		s.unordered = nil
	}
	if len(s.ordered) > 0 {
		s.emit(OrderedList{Items: s.ordered})
		s.ordered = nil
	}
}

// flushTable emits the buffered rows. Every row is cut or padded to the
// width of the first row, and the column alignment taken from the table's
// separator row is sized the same way.
func (s *scanner) flushTable() {
	if len(s.rows) > 0 {
		cols := len(s.rows[0])
		for i, row := range s.rows {
			switch {
			case len(row) > cols:
				s.rows[i] = row[:cols]
			case len(row) < cols:
				padded := make(Row, cols)
				copy(padded, row)
				s.rows[i] = padded
			}
		}
		align := make([]Alignment, cols)
		copy(align, s.align)
		s.emit(Table{Rows: s.rows, Header: true, Align: align})
	}
	s.rows = nil
	s.align = nil
	s.alignSeen = false
}

func (s *scanner) finish() {
	if s.inFence {
		s.closeFence()
	}
	s.flush()
}

func headingLine(line string) (int, string, bool) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n >= len(line) || line[n] != ' ' {
		return 0, "", false
	}
	return n, line[n+1:], true
}

// tableCells splits a "| a | b |" line into trimmed cells.
func tableCells(trimmed string) ([]string, bool) {
	if len(trimmed) < 2 || trimmed[0] != '|' || trimmed[len(trimmed)-1] != '|' {
		return nil, false
	}
	parts := strings.Split(trimmed, "|")
	parts = parts[1 : len(parts)-1]
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, true
}

func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !separatorPattern.MatchString(c) {
			return false
		}
	}
	return true
}

func cellAlignment(cell string) Alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right && len(cell) > 1:
		return AlignCenter
	case right && !left:
		return AlignRight
	default:
		return AlignLeft
	}
}
