package normalize

import (
	"strings"
	"testing"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "just text", "just text"},
		{"simple tags", "<p>Hello <b>world</b></p>", "Hello world"},
		{"script dropped", "<p>visible</p><script>alert('x')</script>", "visible"},
		{"style dropped", "<style>.a{color:red}</style><span>kept</span>", "kept"},
		{"whitespace collapsed", "<p>a\n\n  b\t c</p>", "a b c"},
		{"entities decoded", "<p>Tom &amp; Jerry</p>", "Tom & Jerry"},
		{"nested structure", "<div><ul><li>one</li><li>two</li></ul></div>", "one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkup(tt.input); got != tt.want {
				t.Errorf("StripMarkup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"within budget", "short", 10, "short"},
		{"exact budget", "12345", 5, "12345"},
		{"word boundary", "the quick brown fox", 12, "the quick..."},
		{"no boundary hard cut", "abcdefghij", 5, "abcde..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateWithSuffix(t *testing.T) {
	got := TruncateWith("one two three four", 9, "…")
	if got != "one two…" {
		t.Errorf("TruncateWith = %q, want %q", got, "one two…")
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected suffix preserved, got %q", got)
	}
}
