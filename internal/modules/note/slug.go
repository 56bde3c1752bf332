package note

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// slugify lowercases the title and collapses every non-alphanumeric run
// into a single dash.
func slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII, unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "note"
	}
	return slug
}

// newSlug derives a URL-safe slug from the title plus a uniqueness token,
// since titles are not unique.
func newSlug(title string) string {
	return slugify(title) + "-" + uniquenessToken()
}

func uniquenessToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
