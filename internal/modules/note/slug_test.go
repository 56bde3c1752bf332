package note

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"My Note", "my-note"},
		{"  Spaced   Out  ", "spaced-out"},
		{"Hello, World!", "hello-world"},
		{"already-slugged", "already-slugged"},
		{"MixedCASE Title", "mixedcase-title"},
		{"数字とカタカナ", "note"},
		{"", "note"},
		{"___", "note"},
	}
	for _, tc := range cases {
		if got := slugify(tc.title); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestNewSlugAppendsUniquenessToken(t *testing.T) {
	a := newSlug("My Note")
	b := newSlug("My Note")

	if a == b {
		t.Fatalf("two slugs for the same title are identical: %q", a)
	}
	for _, s := range []string{a, b} {
		if !strings.HasPrefix(s, "my-note-") {
			t.Errorf("slug %q missing title prefix", s)
		}
		token := strings.TrimPrefix(s, "my-note-")
		if len(token) != 8 {
			t.Errorf("slug %q token is %d chars, want 8", s, len(token))
		}
	}
}
