package util

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"One sentence without terminator", []string{"One sentence without terminator"}},
		{"First. Second! Third?", []string{"First.", "Second!", "Third?"}},
		{"Ends with period.", []string{"Ends with period."}},
		{"Version 2.1 shipped today. It works.", []string{"Version 2.1 shipped today.", "It works."}},
		{"Line one.\nLine two.", []string{"Line one.", "Line two."}},
	}
	for _, tt := range tests {
		got := SplitSentences(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("SplitSentences(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitSentences(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate under budget = %q, want unchanged", got)
	}
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("Truncate ascii = %q, want %q", got, "hel")
	}

	// 5 two-byte runes, 10 bytes total. A 5-byte budget lands mid-rune
	// and must back up to the boundary.
	s := strings.Repeat("é", 5)
	got := Truncate(s, 5)
	if got != "éé" {
		t.Errorf("Truncate(%q, 5) = %q, want two runes", s, got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Truncate produced invalid UTF-8: %q", got)
	}
}
