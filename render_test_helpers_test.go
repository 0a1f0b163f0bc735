package portfolio

import (
	"bytes"
	"os"
	"testing"
)

func renderBlocks(t testing.TB, blocks []Block, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	if err := WriteANSI(&out, blocks, opts...); err != nil {
		t.Fatalf("WriteANSI: %v", err)
	}
	return out.String()
}

func readFixture(t testing.TB, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}
