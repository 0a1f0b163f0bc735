// Package palette holds the ANSI colour palettes behind the built-in themes.
package palette

import (
	"fmt"
	"strconv"
)

// SGR attribute sequences.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Faint     = "\x1b[2m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
	Strike    = "\x1b[9m"
)

// Palette is a set of foreground colour prefixes, one per semantic role.
type Palette struct {
	Text          string
	H1            string
	H2            string
	H3            string
	H4            string
	H5            string
	H6            string
	Emphasis      string
	Strong        string
	Strikethrough string
	CodeInline    string
	CodeBlock     string
	CodeTitle     string
	Quote         string
	ListMarker    string
	LinkText      string
	LinkURL       string
	ImageAlt      string
	TableBorder   string
	TableHeader   string
	ThematicBreak string
}

// FG returns a 24-bit foreground colour sequence for a "#rrggbb" value.
// Malformed values yield an empty prefix.
func FG(hex string) string {
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}

func build(text, h1, h2, h3, h4, accent, code, quote, link, muted string) Palette {
	return Palette{
		Text:          FG(text),
		H1:            FG(h1),
		H2:            FG(h2),
		H3:            FG(h3),
		H4:            FG(h4),
		H5:            FG(h4),
		H6:            FG(h4),
		Emphasis:      FG(accent),
		Strong:        FG(h1),
		Strikethrough: FG(muted),
		CodeInline:    FG(code),
		CodeBlock:     FG(code),
		CodeTitle:     FG(muted),
		Quote:         FG(quote),
		ListMarker:    FG(accent),
		LinkText:      FG(link),
		LinkURL:       FG(muted),
		ImageAlt:      FG(accent),
		TableBorder:   FG(muted),
		TableHeader:   FG(h2),
		ThematicBreak: FG(muted),
	}
}

var (
	PaletteDefault         = build("#d0d0d0", "#ff5f87", "#5fafff", "#87d787", "#d7af5f", "#af87ff", "#ffaf5f", "#8a8a8a", "#5fd7ff", "#6c6c6c")
	PaletteGruvbox         = build("#ebdbb2", "#fb4934", "#fabd2f", "#b8bb26", "#83a598", "#d3869b", "#fe8019", "#a89984", "#8ec07c", "#928374")
	PaletteDracula         = build("#f8f8f2", "#ff79c6", "#bd93f9", "#50fa7b", "#f1fa8c", "#ffb86c", "#f1fa8c", "#6272a4", "#8be9fd", "#6272a4")
	PaletteNord            = build("#d8dee9", "#88c0d0", "#81a1c1", "#a3be8c", "#ebcb8b", "#b48ead", "#d08770", "#616e88", "#8fbcbb", "#4c566a")
	PaletteTokyoNight      = build("#c0caf5", "#f7768e", "#7aa2f7", "#9ece6a", "#e0af68", "#bb9af7", "#ff9e64", "#565f89", "#7dcfff", "#565f89")
	PaletteCatppuccinMocha = build("#cdd6f4", "#f38ba8", "#89b4fa", "#a6e3a1", "#f9e2af", "#cba6f7", "#fab387", "#9399b2", "#89dceb", "#6c7086")
	PaletteSolarizedDark   = build("#839496", "#cb4b16", "#268bd2", "#859900", "#b58900", "#6c71c4", "#2aa198", "#586e75", "#2aa198", "#586e75")
	PaletteSolarizedLight  = build("#657b83", "#cb4b16", "#268bd2", "#859900", "#b58900", "#6c71c4", "#2aa198", "#93a1a1", "#2aa198", "#93a1a1")
	PaletteGithubDark      = build("#c9d1d9", "#ff7b72", "#79c0ff", "#7ee787", "#ffa657", "#d2a8ff", "#a5d6ff", "#8b949e", "#58a6ff", "#6e7681")
	PaletteGithubLight     = build("#24292f", "#cf222e", "#0550ae", "#116329", "#953800", "#8250df", "#0a3069", "#57606a", "#0969da", "#6e7781")
	PaletteRosePine        = build("#e0def4", "#eb6f92", "#c4a7e7", "#9ccfd8", "#f6c177", "#ebbcba", "#f6c177", "#908caa", "#31748f", "#6e6a86")
	PaletteKanagawa        = build("#dcd7ba", "#e82424", "#7e9cd8", "#98bb6c", "#e6c384", "#957fb8", "#ffa066", "#727169", "#7fb4ca", "#54546d")
)
