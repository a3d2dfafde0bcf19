package utils

import (
	"regexp"
	"strings"
)

// regexpMeta is every character the regexp engine treats specially.
const regexpMeta = `.*+?^${}()|[]\`

// EscapeRegexp escapes metacharacters so the result, compiled as a
// pattern, matches s literally.
func EscapeRegexp(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && strings.ContainsRune(regexpMeta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML replaces & < > " ' with named entities. No other characters
// are altered.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var (
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	jsProtocolRe  = regexp.MustCompile(`(?i)javascript:`)
	onHandlerRe   = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// SanitizeHTML strips script blocks (non-greedy, embedded tags included),
// remaining tags, javascript: URIs and inline on*= handlers, then trims.
// This is a denylist pass, not a parser-based sanitizer.
func SanitizeHTML(s string) string {
	if s == "" {
		return ""
	}
	s = scriptBlockRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = jsProtocolRe.ReplaceAllString(s, "")
	s = onHandlerRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// TrimOrEmpty normalizes user input without surprises on empty strings.
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}
