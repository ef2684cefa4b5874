// Package normalize turns rich-text catalog fields into plain text and
// extracts semantic attributes (materials, weight, dimensions) from free
// text via pattern matching.
package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes all markup from a rich-text field and returns plain
// text. Script and style payloads are dropped entirely, whitespace runs are
// collapsed, and entities are decoded by the parser. Empty input yields "".
func StripMarkup(richText string) string {
	if richText == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(richText))
	if err != nil {
		// html.Parse recovers from arbitrary input; a hard failure means
		// there is nothing usable to extract.
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(b.String()), " ")
}

// Truncate shortens text to maxLength using the default "..." suffix.
func Truncate(text string, maxLength int) string {
	return TruncateWith(text, maxLength, "...")
}

// TruncateWith shortens text to at most maxLength characters, cutting at the
// last word boundary within the budget and appending suffix. Text already
// within budget is returned unchanged; text with no word boundary in budget
// is hard-cut.
func TruncateWith(text string, maxLength int, suffix string) string {
	if text == "" || len(text) <= maxLength {
		return text
	}

	cut := text[:maxLength]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + suffix
}
