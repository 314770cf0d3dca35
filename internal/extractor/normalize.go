package extractor

import (
	"regexp"
	"strings"
)

const nonBreakSpace = "\u00a0"

var (
	lineEndingRe = regexp.MustCompile(`\r\n?`)
	horizontalRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText canonicalises whitespace in extracted text. Line endings
// become "\n", non-breaking spaces become spaces, runs of spaces and tabs
// collapse to one space, three or more newlines collapse to a paragraph
// break, and the result is trimmed. NormalizeText(NormalizeText(s)) equals
// NormalizeText(s) for every s.
func NormalizeText(raw string) string {
	text := lineEndingRe.ReplaceAllString(raw, "\n")
	text = strings.ReplaceAll(text, nonBreakSpace, " ")
	text = horizontalRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
