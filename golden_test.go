package portfolio

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRenderGoldens(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.md"))
	if err != nil {
		t.Fatalf("glob testdata: %v", err)
	}
	if len(paths) == 0 {
		t.Fatalf("no markdown files found under testdata")
	}
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".md")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			goldenPath := strings.TrimSuffix(path, ".md") + ".golden.json"
			golden, err := os.ReadFile(goldenPath)
			if err != nil {
				t.Fatalf("missing golden %s (run \"go run ./cmd/gen-golden\" to regenerate): %v", goldenPath, err)
			}
			want, err := UnmarshalBlocks(golden)
			if err != nil {
				t.Fatalf("decode golden: %v", err)
			}
			got := Render(string(src))
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("golden mismatch for %s\n got: %#v\nwant: %#v", name, got, want)
			}
		})
	}
}

func TestMarshalBlocksRoundTrip(t *testing.T) {
	src := "# T\n\n| a | b |\n|:-:|--:|\n| 1 |\n- x\n- \n2. y\n```go:x.go\ncode\n```\n> q\n---\n[l](u) ![](p) `c` ~~s~~ *i* **b**"
	blocks := Render(src)
	data, err := MarshalBlocks(blocks)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := UnmarshalBlocks(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, blocks) {
		t.Fatalf("round trip mismatch\n got: %#v\nwant: %#v\njson: %s", back, blocks, data)
	}
}

func TestMarshalBlocksEmpty(t *testing.T) {
	data, err := MarshalBlocks(nil)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]\n" {
		t.Fatalf("expected empty array, got %q", data)
	}
}

func TestUnmarshalBlocksRejectsUnknownTypes(t *testing.T) {
	if _, err := UnmarshalBlocks([]byte(`[{"type":"marquee"}]`)); err == nil {
		t.Fatalf("expected error for unknown block type")
	}
	if _, err := UnmarshalBlocks([]byte(`[{"type":"paragraph","spans":[{"type":"blink"}]}]`)); err == nil {
		t.Fatalf("expected error for unknown span type")
	}
	if _, err := UnmarshalBlocks([]byte(`[{"type":"heading","level":9}]`)); err == nil {
		t.Fatalf("expected error for heading level out of range")
	}
}
