package portfolio

import (
	"reflect"
	"testing"
)

func TestResolveInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Span
	}{
		{name: "empty", in: "", want: nil},
		{name: "plain", in: "just text", want: []Span{Text("just text")}},
		{name: "bold lazy", in: "**a** b **c**", want: []Span{Bold("a"), Text(" b "), Bold("c")}},
		{name: "italic", in: "an *emph* word", want: []Span{Text("an "), Italic("emph"), Text(" word")}},
		{name: "italic skips star runs", in: "***x*** y", want: []Span{Bold("*x"), Text("* y")}},
		{name: "strike", in: "~~gone~~ here", want: []Span{Strikethrough("gone"), Text(" here")}},
		{name: "code", in: "run `go test` now", want: []Span{Text("run "), InlineCode("go test"), Text(" now")}},
		{name: "image before link", in: "![alt](a.png)", want: []Span{Image{Alt: "alt", URL: "a.png"}}},
		{name: "image without alt", in: "![](a.png)", want: []Span{Image{URL: "a.png"}}},
		{name: "link", in: "see [site](https://example.com).", want: []Span{
			Text("see "), Link{Label: "site", URL: "https://example.com"}, Text("."),
		}},
		{name: "no nesting in bold", in: "**[a](b)**", want: []Span{Bold("[a](b)")}},
		{name: "code keeps bold markers once bold ran first", in: "`**x**`", want: []Span{Text("`"), Bold("x"), Text("`")}},
		{name: "unterminated bold", in: "**open", want: []Span{Text("**open")}},
		{name: "unterminated link", in: "[label](", want: []Span{Text("[label](")}},
		{name: "lone star", in: "2 * 3", want: []Span{Text("2 * 3")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveInline(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ResolveInline(%q)\n got: %#v\nwant: %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestResolveInlinePassOrder(t *testing.T) {
	// Italic runs before strikethrough, so the tildes around "*x*" stay
	// literal; the link inside backticks is never looked at.
	spans := ResolveInline("~~*x*~~ and `[y](z)`")
	want := []Span{Text("~~"), Italic("x"), Text("~~ and "), InlineCode("[y](z)")}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("got %#v want %#v", spans, want)
	}
}
