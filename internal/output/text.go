package output

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// GenerateText writes book as a single UTF-8 text file at path.
func GenerateText(book *Book, path string) error {
	if len(book.Chapters) == 0 {
		return fmt.Errorf("no chapters to include in text file")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create text file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, book.Title)
	if book.Author != "" {
		fmt.Fprintf(w, "by %s\n", book.Author)
	}
	if colophon := book.Colophon(); colophon != "" {
		fmt.Fprintln(w, colophon)
	}

	for _, ch := range book.Chapters {
		fmt.Fprintf(w, "\n\n%s\n%s\n\n", ch.Title, strings.Repeat("=", len([]rune(ch.Title))))
		if ch.Body != "" {
			fmt.Fprintln(w, ch.Body)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write text file: %w", err)
	}
	return f.Close()
}
