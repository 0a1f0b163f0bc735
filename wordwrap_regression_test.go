package portfolio

import (
	"strings"
	"testing"
)

func TestWrappedBulletIndentation(t *testing.T) {
	src := strings.Join([]string{
		"- Inputs:",
		"- If a user-facing function or interface method takes more than 4 parameters total (including context.Context), move non-ctx inputs into a request struct (e.g. FooRequest).",
	}, "\n")

	out := renderPlain(t, src, 60)
	got := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	want := []string{
		"- Inputs:",
		"- If a user-facing function or interface method takes more",
		"  than 4 parameters total (including context.Context), move",
		"  non-ctx inputs into a request struct (e.g. FooRequest).",
	}

	if len(got) != len(want) {
		t.Fatalf("line count mismatch: got %d want %d\n%q", len(got), len(want), got)
	}
	for i, line := range want {
		if got[i] != line {
			t.Fatalf("line %d mismatch\nwant: %q\n got: %q", i+1, line, got[i])
		}
	}
}
