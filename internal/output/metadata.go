// Package output stores downloaded chapters on disk and assembles them into
// EPUB, PDF or plain text books.
package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid"

	"webnovel-scraper/internal/formatter"
)

// Book is a stored web novel ready for export.
type Book struct {
	Title       string
	Author      string
	Description string
	Lang        string
	Rights      string
	Publisher   string
	Identifier  string
	Chapters    []Chapter
	CreatedAt   time.Time
}

// Chapter is one stored chapter: its position, title and plain text body.
type Chapter struct {
	Title string
	Body  string
	Index int
}

// NewBook returns an empty book with a fresh identifier. Rights and
// publisher stay empty until the caller copies them from configuration.
func NewBook(title, author string) *Book {
	return &Book{
		Title:      title,
		Author:     author,
		Lang:       "en",
		CreatedAt:  time.Now(),
		Identifier: GenerateUUID(),
	}
}

// AddChapter inserts a chapter at its index, keeping Chapters ordered. A
// chapter already present at that index is replaced.
func (b *Book) AddChapter(index int, title, body string) {
	ch := Chapter{Title: title, Body: body, Index: index}
	i := sort.Search(len(b.Chapters), func(i int) bool {
		return b.Chapters[i].Index >= index
	})
	if i < len(b.Chapters) && b.Chapters[i].Index == index {
		b.Chapters[i] = ch
		return
	}
	b.Chapters = append(b.Chapters, Chapter{})
	copy(b.Chapters[i+1:], b.Chapters[i:])
	b.Chapters[i] = ch
}

// TotalWordCount sums the words of every chapter body.
func (b *Book) TotalWordCount() int {
	total := 0
	for _, ch := range b.Chapters {
		total += formatter.WordCount(ch.Body)
	}
	return total
}

// EstimatedReadingTime is in minutes.
func (b *Book) EstimatedReadingTime() int {
	return formatter.EstimateReadingTime(b.TotalWordCount())
}

// Colophon is the publisher and rights line printed by every export format,
// or "" when neither is set.
func (b *Book) Colophon() string {
	var parts []string
	if b.Publisher != "" {
		parts = append(parts, "Published by "+b.Publisher)
	}
	if b.Rights != "" {
		parts = append(parts, b.Rights)
	}
	return strings.Join(parts, ". ")
}

// GenerateUUID returns a urn:uuid identifier for a book.
func GenerateUUID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Sprintf("urn:uuid:generated-%d", time.Now().UnixNano())
	}
	return "urn:uuid:" + id.String()
}

// FormatFileSize renders a byte count using binary units.
func FormatFileSize(bytes int64) string {
	units := []string{"KB", "MB", "GB"}
	if bytes < 1024 {
		return fmt.Sprintf("%d bytes", bytes)
	}
	size := float64(bytes) / 1024
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, units[unit])
}

// FormatDuration renders minutes as "N minutes", "N hours" or both.
func FormatDuration(minutes int) string {
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d minutes", mins)
	case mins == 0:
		return fmt.Sprintf("%d hours", hours)
	default:
		return fmt.Sprintf("%d hours %d minutes", hours, mins)
	}
}
