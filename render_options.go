package portfolio

// RenderOption configures WriteANSI.
type RenderOption func(*renderConfig)

type renderConfig struct {
	theme Theme
	width int
	osc8  bool
}

// WithTheme selects the theme used for styling. A nil theme keeps the default.
func WithTheme(t Theme) RenderOption {
	return func(cfg *renderConfig) {
		if t != nil {
			cfg.theme = t
		}
	}
}

// WithWidth sets the wrap width in terminal cells. Values below one keep the
// default width.
func WithWidth(width int) RenderOption {
	return func(cfg *renderConfig) {
		if width > 0 {
			cfg.width = width
		}
	}
}

// WithOSC8 enables or disables OSC 8 hyperlinks.
func WithOSC8(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.osc8 = enabled
	}
}
