// Package formatter turns backend text and timestamps into display strings.
// Every function that returns markup escapes its input first.
package formatter

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/a-h/templ"
)

const ellipsis = "..."

var (
	urlPattern   = regexp.MustCompile(`https?://[^\s]+`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// Escape makes s safe to embed in element content and quoted attributes.
func Escape(s string) string {
	return templ.EscapeString(s)
}

// Truncate cuts s to n runes and marks the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + ellipsis
}

// Date renders the absolute "Jan 2, 2006" form used for record metadata.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// TimeAgo renders the elapsed time between t and now in floor-divided
// brackets; anything a week or older falls back to "Jan 2".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	elapsed := now.Sub(t)
	mins := int64(elapsed / time.Minute)
	hours := int64(elapsed / time.Hour)
	days := int64(elapsed / (24 * time.Hour))

	switch {
	case mins < 1:
		return "just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("Jan 2")
	}
}

// CategoryClass normalises a free-form category into a CSS class suffix.
func CategoryClass(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return "other"
	}
	return spacePattern.ReplaceAllString(strings.ToLower(category), "-")
}

// Initial is the avatar letter for a display name.
func Initial(name string) string {
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return ""
}
