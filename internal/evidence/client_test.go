package evidence

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 150); got != "short" {
		t.Errorf("short input should pass through, got %q", got)
	}

	long := strings.Repeat("a", 200)
	got := truncate(long, 150)
	if len(got) != 153 {
		t.Errorf("expected 150 chars plus ellipsis, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated output should end in an ellipsis: %q", got)
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	// Multibyte runes straddling the cut must not produce invalid UTF-8
	long := strings.Repeat("é", 200)
	got := truncate(long, 150)

	if !utf8.ValidString(got) {
		t.Fatalf("truncated string is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 153 {
		t.Errorf("expected 150 runes plus ellipsis, got %d", n)
	}

	exact := strings.Repeat("é", 150)
	if got := truncate(exact, 150); got != exact {
		t.Errorf("input at the limit should pass through unchanged")
	}
}
