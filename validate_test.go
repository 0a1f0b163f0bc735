package portfolio

import "testing"

func TestValidateInputRejectsInvalidUTF8(t *testing.T) {
	data := []byte{0xff, 0xfe, 0xfd}
	if err := ValidateInput(data); err != ErrInvalidUTF8 {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestValidateInputRejectsBinary(t *testing.T) {
	data := append([]byte("hello"), 0x00)
	if err := ValidateInput(data); err != ErrBinaryInput {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}

func TestValidateInputAcceptsMarkdown(t *testing.T) {
	if err := ValidateInput([]byte("# 作品\n\n- Unity\n\tindented\r\n")); err != nil {
		t.Fatalf("expected markdown to validate, got %v", err)
	}
}

func TestSanitizeDropsControlSequences(t *testing.T) {
	got := Sanitize("safe\x1b[31m red\r\n\tnext\xff")
	if got != "safe[31m red\n\tnext" {
		t.Fatalf("unexpected sanitized text %q", got)
	}
	if clean := "already clean\n"; Sanitize(clean) != clean {
		t.Fatalf("clean text should pass through")
	}
}
