package portfolio

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

func TestWrapWidthBounds(t *testing.T) {
	src := strings.Join([]string{
		"# Heading One",
		"",
		"Paragraph with a [link](https://example.com) and some emphasized *text* plus **bold** words.",
		"",
		"> Quote line one with more words to wrap",
		">> Quote line two with additional words to wrap",
		"",
		"- item one with a long line that should wrap cleanly at small widths",
		"12. ordered item with more words and wrapping",
		"",
		"| Column | Another column |",
		"|---|---|",
		"| some cell text | more cell text that is long |",
		"",
		"```go",
		"fmt.Println(\"hello there from a longer code line\")",
		"```",
		"---",
	}, "\n")
	blocks := Render(src)

	assertWidths := func(name string, minWidth int, opts ...RenderOption) {
		for width := minWidth; width <= 100; width += 5 {
			out := renderBlocks(t, blocks, append(opts, WithWidth(width))...)
			for i, line := range strings.Split(out, "\n") {
				plain := stripANSI(line)
				if strings.HasPrefix(strings.TrimLeft(plain, " \t"), "fmt.Println(") {
					continue
				}
				if ansi.PrintableRuneWidth(plain) > width {
					t.Fatalf("%s: line %d exceeds width %d: %q", name, i+1, width, plain)
				}
			}
		}
	}

	linkMinWidth := len("(https://example.com)")
	assertWidths("wrap", linkMinWidth)
	assertWidths("wrap-osc8", 20, WithOSC8(true))
}
