package duckduckgo

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	escapePattern     = regexp.MustCompile(`\\([\\*_#\[\]()<>.!+-])`)

	// Unescaped asterisks in converter output are always emphasis markers:
	// literal asterisks from the source arrive backslash-escaped.
	emphasisPattern = regexp.MustCompile(`(^|[^\\])\*+`)
)

// cleanFragment flattens an HTML fragment (a result title or snippet) into
// plain text. The heavy lifting is done by the html-to-markdown converter,
// which handles nested tags and entity decoding; emphasis markers and escape
// backslashes left over from the markdown rendering are then stripped, since
// snippets are displayed as plain text. If conversion fails the tags are
// removed with a regex instead.
func cleanFragment(fragment string) string {
	text, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		text = decodeEntities(tagPattern.ReplaceAllString(fragment, ""))
	}

	text = emphasisPattern.ReplaceAllString(text, "$1")
	text = escapePattern.ReplaceAllString(text, "$1")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// decodeEntities replaces the handful of HTML entities that actually occur in
// Lite snippets. Used only on the regex fallback path.
func decodeEntities(s string) string {
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", "\"",
		"&#39;", "'",
		"&nbsp;", " ",
	)
	return replacer.Replace(s)
}
