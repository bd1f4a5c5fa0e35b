package feed

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// StripMarkup removes HTML tags, decodes entity escapes and trims
// surrounding whitespace. Script and style bodies are dropped entirely.
func StripMarkup(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}

	z := html.NewTokenizer(strings.NewReader(s))

	var b strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())

		case html.StartTagToken:
			name, _ := z.TagName()
			if n := string(name); n == "script" || n == "style" {
				skip++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if n := string(name); (n == "script" || n == "style") && skip > 0 {
				skip--
			}

		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// ApplyAffixes joins a configured prefix and suffix around s with single
// spaces. Empty affixes leave s untouched.
func ApplyAffixes(s string, prefix string, suffix string) string {
	if prefix != "" {
		s = prefix + " " + s
	}
	if suffix != "" {
		s = s + " " + suffix
	}
	return s
}

// TruncateRunes caps s at max characters. Truncation is applied after affix
// composition, so a very long body can clip the suffix.
func TruncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
