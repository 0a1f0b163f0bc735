package portfolio

import "testing"

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		src   string
		delim string
		raw   string
		body  string
	}{
		{
			name:  "yaml",
			src:   "---\ntitle: Post\ndate: 2026-02-09\n---\n\n# Hello\n",
			delim: "---",
			raw:   "title: Post\ndate: 2026-02-09\n",
			body:  "\n# Hello\n",
		},
		{
			name:  "toml",
			src:   "+++\ntitle = \"Post\"\n+++\nBody",
			delim: "+++",
			raw:   "title = \"Post\"\n",
			body:  "Body",
		},
		{
			name:  "json",
			src:   ";;;\n{\"title\": \"Post\"}\n;;;\n",
			delim: ";;;",
			raw:   "{\"title\": \"Post\"}\n",
			body:  "",
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fm, body, ok := SplitFrontMatter(tc.src)
			if !ok {
				t.Fatalf("expected front matter in %q", tc.src)
			}
			if fm.Delimiter != tc.delim || fm.Raw != tc.raw || body != tc.body {
				t.Fatalf("got (%q, %q, %q) want (%q, %q, %q)", fm.Delimiter, fm.Raw, body, tc.delim, tc.raw, tc.body)
			}
		})
	}
}

func TestSplitFrontMatterLeavesOtherInputAlone(t *testing.T) {
	t.Parallel()
	inputs := []string{
		"# Intro\n\n+++\ntitle = \"Keep me\"\n+++\n",
		"---\n\nA rule, then text\n---\n",
		"+++\ntitle = \"unclosed\"\n\nBody\n",
		"---",
	}
	for _, src := range inputs {
		fm, body, ok := SplitFrontMatter(src)
		if ok || body != src || fm != (FrontMatter{}) {
			t.Fatalf("unexpected split of %q: %#v %q %v", src, fm, body, ok)
		}
	}
}
