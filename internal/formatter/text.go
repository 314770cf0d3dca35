package formatter

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var paragraphBreakRe = regexp.MustCompile(`\n\s*\n`)

// CleanTitle collapses whitespace runs in a title to single spaces and drops
// control characters.
func CleanTitle(title string) string {
	title = RemoveControlCharacters(title)
	return strings.Join(strings.Fields(title), " ")
}

// RemoveControlCharacters removes non-printable control characters
func RemoveControlCharacters(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r >= 32 {
			return r
		}
		return -1
	}, text)
}

// TruncateText truncates text to at most maxLen runes, cutting at a word
// boundary when one is close, and appends an ellipsis.
func TruncateText(text string, maxLen int) string {
	if maxLen <= 3 || utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	runes := []rune(text)
	truncated := string(runes[:maxLen-3])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}

// SplitIntoParagraphs splits text into paragraphs
func SplitIntoParagraphs(text string) []string {
	parts := paragraphBreakRe.Split(text, -1)

	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	return paragraphs
}

// WordCount returns word count for text
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// EstimateReadingTime estimates reading time in minutes (assuming 200 wpm)
func EstimateReadingTime(words int) int {
	minutes := words / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
