package portfolio

import (
	"regexp"
	"strings"
)

var (
	boldPattern   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	strikePattern = regexp.MustCompile(`~~(.+?)~~`)
	codePattern   = regexp.MustCompile("`([^`]+)`")
	imagePattern  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
)

// inlinePass finds delimiter matches in a plain text fragment and builds the
// typed span for each one. Matches are reported as submatch index slices in
// the regexp package's layout.
type inlinePass struct {
	find  func(s string) [][]int
	build func(s string, m []int) Span
}

var inlinePasses = []inlinePass{
	{find: allMatches(boldPattern), build: func(s string, m []int) Span { return Bold(s[m[2]:m[3]]) }},
	{find: findItalic, build: func(s string, m []int) Span { return Italic(s[m[2]:m[3]]) }},
	{find: allMatches(strikePattern), build: func(s string, m []int) Span { return Strikethrough(s[m[2]:m[3]]) }},
	{find: allMatches(codePattern), build: func(s string, m []int) Span { return InlineCode(s[m[2]:m[3]]) }},
	{find: allMatches(imagePattern), build: func(s string, m []int) Span { return Image{Alt: s[m[2]:m[3]], URL: s[m[4]:m[5]]} }},
	{find: allMatches(linkPattern), build: func(s string, m []int) Span { return Link{Label: s[m[2]:m[3]], URL: s[m[4]:m[5]]} }},
}

// ResolveInline splits one line of text into styled spans. The passes run in
// a fixed order (bold, italic, strikethrough, code, image, link) and each
// pass only looks at Text spans left over by the previous ones, so styled
// content is never parsed again: "**[a](b)**" is a Bold span holding the
// literal link source.
func ResolveInline(text string) []Span {
	if text == "" {
		return nil
	}
	spans := []Span{Text(text)}
	for _, pass := range inlinePasses {
		spans = pass.apply(spans)
	}
	return spans
}

func (p inlinePass) apply(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		t, ok := sp.(Text)
		if !ok {
			out = append(out, sp)
			continue
		}
		s := string(t)
		matches := p.find(s)
		if len(matches) == 0 {
			out = append(out, sp)
			continue
		}
		last := 0
		for _, m := range matches {
			if m[0] > last {
				out = append(out, Text(s[last:m[0]]))
			}
			out = append(out, p.build(s, m))
			last = m[1]
		}
		if last < len(s) {
			out = append(out, Text(s[last:]))
		}
	}
	return out
}

func allMatches(re *regexp.Regexp) func(string) [][]int {
	return func(s string) [][]int {
		return re.FindAllStringSubmatchIndex(s, -1)
	}
}

// findItalic reports *text* pairs whose stars are not part of a longer run
// of stars. RE2 has no lookaround, so this is a scan.
func findItalic(s string) [][]int {
	var out [][]int
	for i := 0; i < len(s); i++ {
		if s[i] != '*' || starAt(s, i-1) || starAt(s, i+1) {
			continue
		}
		k := strings.IndexByte(s[i+1:], '*')
		if k < 0 {
			break
		}
		end := i + 1 + k
		if starAt(s, end+1) {
			continue
		}
		out = append(out, []int{i, end + 1, i + 1, end})
		i = end
	}
	return out
}

func starAt(s string, i int) bool {
	return i >= 0 && i < len(s) && s[i] == '*'
}
