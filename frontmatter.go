package portfolio

import "strings"

// FrontMatter is a metadata block found at the top of a document.
type FrontMatter struct {
	// Delimiter is the fence line: "---", "+++" or ";;;".
	Delimiter string
	// Raw is the text between the fences, without them.
	Raw string
}

// SplitFrontMatter separates a leading front-matter block from the body. The
// block must open with a fence line, carry something that looks like
// metadata on its first line, and close with the same fence. Anything else
// is returned untouched as the body with ok unset.
func SplitFrontMatter(src string) (fm FrontMatter, body string, ok bool) {
	lines := strings.SplitAfter(src, "\n")
	if len(lines) < 3 {
		return FrontMatter{}, src, false
	}
	delim, isFence := frontMatterDelimiter(lines[0])
	if !isFence || !frontMatterMetadataLikely(lines[1]) {
		return FrontMatter{}, src, false
	}
	offset := len(lines[0])
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delim {
			raw := src[len(lines[0]):offset]
			return FrontMatter{Delimiter: delim, Raw: raw}, src[offset+len(lines[i]):], true
		}
		offset += len(lines[i])
	}
	return FrontMatter{}, src, false
}

func frontMatterDelimiter(line string) (string, bool) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))
	switch trimmed {
	case "---", "+++", ";;;":
		return trimmed, true
	default:
		return "", false
	}
}

func frontMatterMetadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.Contains(trimmed, ":") || strings.Contains(trimmed, "=")
}
