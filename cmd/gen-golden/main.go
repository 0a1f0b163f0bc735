package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	portfolio "github.com/Nemesis62542/nemesis-portfolio"
)

func main() {
	root := pflag.StringP("root", "r", "testdata", "Directory holding *.md fixtures")
	check := pflag.Bool("check", false, "Report stale goldens instead of writing them")
	pflag.Parse()

	var paths []string
	err := filepath.WalkDir(*root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		fatalf("walk %s: %v", *root, err)
	}
	if len(paths) == 0 {
		fatalf("no markdown files found under %s", *root)
	}
	stale := 0
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			fatalf("read %s: %v", path, err)
		}
		out, err := portfolio.MarshalBlocks(portfolio.Render(string(src)))
		if err != nil {
			fatalf("render %s: %v", path, err)
		}
		goldenPath := goldenJSONPath(path)
		if *check {
			current, err := os.ReadFile(goldenPath)
			if err != nil || !bytes.Equal(current, out) {
				fmt.Fprintf(os.Stdout, "stale %s\n", goldenPath)
				stale++
			}
			continue
		}
		if err := os.WriteFile(goldenPath, out, 0o644); err != nil {
			fatalf("write %s: %v", goldenPath, err)
		}
		fmt.Fprintf(os.Stdout, "wrote %s\n", goldenPath)
	}
	if stale > 0 {
		os.Exit(1)
	}
}

func goldenJSONPath(mdPath string) string {
	return strings.TrimSuffix(mdPath, ".md") + ".golden.json"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
