// Package formatter turns the itinerary text produced by the LLM into an HTML
// fragment. Only a small markdown subset is understood: level-3 headers, bold,
// italic and paragraph/line breaks. There is no nesting and no error recovery.
package formatter

import (
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	headerRe = regexp.MustCompile(`###\s+(.+)`)
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.+?)\*`)
)

// Format converts text to an HTML fragment. The input is escaped first, so the
// returned markup only ever contains the tags the substitutions introduce.
// Passes run in order and each one sees the output of the previous one.
func Format(text string) string {
	html := strings.ReplaceAll(text, "\r\n", "\n")
	html = templ.EscapeString(html)

	html = headerRe.ReplaceAllString(html, "<h3>$1</h3>")
	html = boldRe.ReplaceAllString(html, "<strong>$1</strong>")
	html = italicRe.ReplaceAllString(html, "<em>$1</em>")

	html = strings.ReplaceAll(html, "\n\n", "</p><p>")
	html = strings.ReplaceAll(html, "\n", "<br>")

	html = "<p>" + html + "</p>"

	html = strings.ReplaceAll(html, "<p></p>", "")
	html = strings.ReplaceAll(html, "<p><br></p>", "")

	return html
}
