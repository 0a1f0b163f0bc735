package portfolio

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

const (
	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"
)

// ErrOSC8Mode reports an osc8 setting other than auto, on or off.
var ErrOSC8Mode = errors.New("osc8: expected auto|on|off")

// hyperlink wraps already styled text in an OSC 8 link to url.
func hyperlink(url, text string) string {
	return osc8Start + url + "\x1b\\" + text + osc8End
}

// ResolveOSC8 turns an osc8 flag or config value into a decision for
// WithOSC8. "auto" and the empty string ask DetectOSC8Support.
func ResolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, ErrOSC8Mode
	}
}

// DetectOSC8Support reports whether the terminal we appear to run in
// understands OSC 8 hyperlinks. OSC8=0 in the environment turns it off.
func DetectOSC8Support() bool {
	return detectOSC8(os.Getenv)
}

func detectOSC8(getenv func(string) string) bool {
	if getenv("OSC8") == "0" {
		return false
	}
	for _, key := range []string{"DOMTERM", "WT_SESSION", "KITTY_WINDOW_ID"} {
		if getenv(key) != "" {
			return true
		}
	}
	switch getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "vscode", "ghostty":
		return true
	}
	if term := strings.ToLower(getenv("TERM")); strings.Contains(term, "kitty") || strings.Contains(term, "ghostty") {
		return true
	}
	// VTE 0.50 (encoded 5000) added hyperlinks.
	if n, err := strconv.Atoi(getenv("VTE_VERSION")); err == nil && n >= 5000 {
		return true
	}
	return false
}
