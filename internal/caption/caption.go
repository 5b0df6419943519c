// Package caption assembles the final channel post caption. Compose is pure:
// the same inputs always yield the same string.
package caption

import (
	"fmt"
	"strings"
)

type Credits struct {
	Dir   string
	Dop   string
	Color string
	Prod  string
}

var (
	urlEscaper    = strings.NewReplacer(`"`, "%22", "<", "", ">", "")
	angleStripper = strings.NewReplacer("<", "", ">", "")
)

// LinkLine renders the bold hyperlink heading the post. Angle brackets are
// stripped from both parts and quotes percent-escaped in the URL so user
// input cannot break out of the HTML attribute.
func LinkLine(title, url string) string {
	if title == "" {
		title = url
	}
	return fmt.Sprintf(`<b><a href="%s">%s</a></b>`, urlEscaper.Replace(url), angleStripper.Replace(title))
}

// Hashtags renders the category followed by the tags as space-separated
// hashtags, with every literal hyphen replaced by an underscore.
func Hashtags(category string, tags []string) string {
	var parts []string
	if category != "" {
		parts = append(parts, hashtag(category))
	}
	for _, t := range tags {
		parts = append(parts, hashtag(t))
	}
	return strings.Join(parts, " ")
}

func hashtag(token string) string {
	return "#" + strings.ReplaceAll(strings.TrimSpace(token), "-", "_")
}

// Compose builds the caption in fixed order: link line, then one line per
// non-empty credit (dir, dop, color, prod), then the hashtag line. Present
// blocks are separated by a blank line; absent blocks leave no trace.
func Compose(title, url string, credits Credits, category string, tags []string) string {
	parts := []string{LinkLine(title, url)}

	var creditLines []string
	for _, field := range []struct{ name, value string }{
		{"dir", credits.Dir},
		{"dop", credits.Dop},
		{"color", credits.Color},
		{"prod", credits.Prod},
	} {
		if field.value != "" {
			creditLines = append(creditLines, field.name+": "+field.value)
		}
	}
	if len(creditLines) > 0 {
		parts = append(parts, strings.Join(creditLines, "\n"))
	}

	if category != "" || len(tags) > 0 {
		parts = append(parts, Hashtags(category, tags))
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}
