// Package portfolio renders the portfolio's Markdown subset into presentation
// blocks.
//
// Render is a single forward pass over the source lines. It recognises code
// fences, pipe tables, ATX headings, horizontal rules, blockquotes, ordered
// and unordered list items and paragraphs, and resolves the inline content of
// each line into flat spans (bold, italic, strikethrough, inline code, images
// and links). It is pure and total: input that does not parse degrades to
// paragraphs and plain text, never to an error.
//
// Inline styles do not nest. "**[docs](/docs)**" is a Bold span whose text is
// the literal link source.
//
// Example:
//
//	blocks := portfolio.Render("# Hello\n\nMarkdown in, **blocks** out.\n")
//	if err := portfolio.WriteANSI(os.Stdout, blocks, portfolio.WithWidth(80)); err != nil {
//		log.Fatal(err)
//	}
//
// The html subpackage turns the same blocks into an HTML fragment, and
// MarshalBlocks gives a JSON tree for golden tests and tooling.
package portfolio
