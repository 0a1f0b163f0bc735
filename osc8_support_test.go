package portfolio

import (
	"errors"
	"testing"
)

func TestResolveOSC8(t *testing.T) {
	cases := map[string]bool{
		"on":  true,
		"ON ": true,
		"yes": true,
		"1":   true,
		"off": false,
		"0":   false,
		"no":  false,
	}
	for input, want := range cases {
		got, err := ResolveOSC8(input)
		if err != nil {
			t.Fatalf("ResolveOSC8(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ResolveOSC8(%q)=%v want %v", input, got, want)
		}
	}
	if _, err := ResolveOSC8("maybe"); !errors.Is(err, ErrOSC8Mode) {
		t.Fatalf("expected ErrOSC8Mode, got %v", err)
	}
}

func TestDetectOSC8(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{name: "bare", env: nil, want: false},
		{name: "windows terminal", env: map[string]string{"WT_SESSION": "x"}, want: true},
		{name: "kitty window", env: map[string]string{"KITTY_WINDOW_ID": "1"}, want: true},
		{name: "wezterm", env: map[string]string{"TERM_PROGRAM": "WezTerm"}, want: true},
		{name: "ghostty term", env: map[string]string{"TERM": "xterm-ghostty"}, want: true},
		{name: "new vte", env: map[string]string{"VTE_VERSION": "6003"}, want: true},
		{name: "old vte", env: map[string]string{"VTE_VERSION": "4205"}, want: false},
		{name: "forced off", env: map[string]string{"OSC8": "0", "TERM_PROGRAM": "iTerm.app"}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			getenv := func(key string) string { return tc.env[key] }
			if got := detectOSC8(getenv); got != tc.want {
				t.Fatalf("detectOSC8=%v want %v", got, tc.want)
			}
		})
	}
}
