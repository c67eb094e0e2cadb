// Package props holds the shared property-value and block-text cleaning
// primitives used by layout inference and rendering.
package props

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// bracketPrefix / bracketSuffix strip one layer of cross-reference
// wrapping: "[[X]]" becomes "X", "[[[[X]]]]" becomes "[[X]]". The
// non-recursive behavior is deliberate.
var (
	bracketPrefix = regexp.MustCompile(`^\[\[`)
	bracketSuffix = regexp.MustCompile(`\]\]$`)
)

// CleanValue normalizes a raw property value to display text: arrays
// collapse to their first element, one layer of [[ ]] wrapping is
// stripped, non-strings are stringified, and the result is trimmed.
// Empty arrays and nil clean to "".
func CleanValue(value any) string {
	raw := value
	if arr, ok := value.([]any); ok {
		if len(arr) == 0 {
			return ""
		}
		raw = arr[0]
	}

	s, ok := raw.(string)
	if !ok {
		if raw == nil {
			return ""
		}
		return fmt.Sprintf("%v", raw)
	}

	s = bracketPrefix.ReplaceAllString(s, "")
	s = bracketSuffix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// CleanAll parses a property value into a slice of cleaned strings.
// Single values degrade to a one-element slice; empty results are dropped.
func CleanAll(value any) []string {
	arr, ok := value.([]any)
	if !ok {
		if cleaned := CleanValue(value); cleaned != "" {
			return []string{cleaned}
		}
		return nil
	}

	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if cleaned := CleanValue(v); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

var (
	propertyLineRe  = regexp.MustCompile(`(?m)^[a-zA-Z-]+::.*$`)
	blockRefRe      = regexp.MustCompile(`\(\([a-f0-9-]+\)\)`)
	crossRefRe      = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	emphasisRe      = regexp.MustCompile("[*_~`]+")
	headingRe       = regexp.MustCompile(`(?m)^#+\s*`)
	imageRe         = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	linkRe          = regexp.MustCompile(`\[([^\]]+)\]\(.*?\)`)
	multiNewlineRe  = regexp.MustCompile(`\n{2,}`)
	markdownLinkURL = regexp.MustCompile(`\[.*?\]\((.*?)\)`)
)

// CleanBlock strips a block's markup down to plain snippet text:
// property-assignment lines, block references, cross-reference brackets,
// emphasis, headings, images, and link wrappers are all removed.
func CleanBlock(text string) string {
	text = propertyLineRe.ReplaceAllString(text, "")
	text = blockRefRe.ReplaceAllString(text, "")
	text = crossRefRe.ReplaceAllString(text, "$1")
	text = emphasisRe.ReplaceAllString(text, "")
	text = headingRe.ReplaceAllString(text, "")
	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = multiNewlineRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// ExtractURL pulls a URL out of a property value. Handles markdown link
// format [label](url) and plain http(s) URLs; anything else yields "".
func ExtractURL(value any) string {
	raw := CleanValue(value)
	if raw == "" {
		return ""
	}

	if m := markdownLinkURL.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return ""
}

// FormatURLLabel derives a display label from a URL: the path with
// surrounding slashes stripped, falling back to the hostname, falling
// back to the raw string when unparseable.
func FormatURLLabel(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		return path
	}
	return parsed.Hostname()
}
