// Package logging builds the CLI's slog handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// errorColor is the ANSI 256 colour used for error attributes.
const errorColor = 9

// Handler returns a tint handler writing to out. Debug mode lowers the level
// to debug and adds source locations. Colour is used only when out is a
// terminal and neither NO_COLOR nor TERM=dumb ask otherwise.
func Handler(debug bool, out io.Writer) slog.Handler {
	opts := &tint.Options{
		Level:       slog.LevelInfo,
		TimeFormat:  time.Kitchen,
		NoColor:     !wantColor(out),
		ReplaceAttr: highlightErrors,
	}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	return tint.NewHandler(out, opts)
}

func highlightErrors(_ []string, attr slog.Attr) slog.Attr {
	if _, isErr := attr.Value.Any().(error); isErr || attr.Key == "err" {
		return tint.Attr(errorColor, attr)
	}
	return attr
}

func wantColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
