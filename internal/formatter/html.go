// Package formatter provides text and XHTML helpers shared by the
// extractors and the book writers.
package formatter

import (
	"html"
	"strings"
)

// ParagraphsToXHTML renders plain chapter text as escaped XHTML paragraphs.
// Paragraphs are separated by blank lines; single newlines inside a
// paragraph become <br/>.
func ParagraphsToXHTML(text string) string {
	var result strings.Builder
	for _, p := range SplitIntoParagraphs(text) {
		lines := strings.Split(p, "\n")
		for i, line := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(line))
		}
		result.WriteString("<p>")
		result.WriteString(strings.Join(lines, "<br/>"))
		result.WriteString("</p>\n")
	}
	return result.String()
}

// ChapterXHTML renders a chapter heading followed by its paragraphs.
func ChapterXHTML(title, text string) string {
	return `<h1 class="chapter-title">` + html.EscapeString(title) + "</h1>\n" + ParagraphsToXHTML(text)
}
