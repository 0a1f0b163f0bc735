package portfolio

import (
	"io"
	"strconv"
	"strings"
	"testing"
)

func benchmarkSource(b *testing.B) string {
	return strings.Repeat(readFixture(b, "project.md")+"\n\n", 50)
}

func BenchmarkRender(b *testing.B) {
	src := benchmarkSource(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Render(src)
	}
}

func BenchmarkWriteANSI(b *testing.B) {
	blocks := Render(benchmarkSource(b))
	for _, width := range []int{50, 60, 80} {
		b.Run("w"+strconv.Itoa(width), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = WriteANSI(io.Discard, blocks, WithWidth(width), WithTheme(DefaultTheme()))
			}
		})
	}
}

func BenchmarkMarshalBlocks(b *testing.B) {
	blocks := Render(benchmarkSource(b))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MarshalBlocks(blocks)
	}
}
