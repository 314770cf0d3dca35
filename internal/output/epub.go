package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-shiori/go-epub"
	"github.com/rs/zerolog/log"

	"webnovel-scraper/internal/formatter"
)

// Supported export formats.
const (
	FormatEPUB = "epub"
	FormatPDF  = "pdf"
	FormatText = "txt"
)

// Export writes book into outputDir in the given format and returns the
// written file's path.
func Export(book *Book, format, outputDir string) (string, error) {
	if len(book.Chapters) == 0 {
		return "", fmt.Errorf("no chapters to export")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outputDir, SafeName(book.Title, MaxNameLength)+"."+format)

	var err error
	switch format {
	case FormatEPUB:
		err = GenerateEPUB(book, path)
	case FormatPDF:
		err = GeneratePDF(book, path)
	case FormatText:
		err = GenerateText(book, path)
	default:
		return "", fmt.Errorf("unknown output format: %s (valid: epub, pdf, txt)", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// GenerateEPUB writes book as an EPUB file at path, one section per chapter.
func GenerateEPUB(book *Book, path string) error {
	if len(book.Chapters) == 0 {
		return fmt.Errorf("no chapters to include in EPUB")
	}

	e, err := epub.NewEpub(book.Title)
	if err != nil {
		return fmt.Errorf("failed to create EPUB: %w", err)
	}

	if book.Author != "" {
		e.SetAuthor(book.Author)
	}
	description := book.Description
	if description == "" {
		description = fmt.Sprintf("Web novel - %d chapters", len(book.Chapters))
	}
	if colophon := book.Colophon(); colophon != "" {
		description += ". " + colophon
	}
	e.SetDescription(description)
	if book.Lang != "" {
		e.SetLang(book.Lang)
	}
	if book.Identifier != "" {
		e.SetIdentifier(book.Identifier)
	}

	for _, ch := range book.Chapters {
		filename := fmt.Sprintf("chapter%04d.xhtml", ch.Index)
		if _, err := e.AddSection(formatter.ChapterXHTML(ch.Title, ch.Body), ch.Title, filename, ""); err != nil {
			log.Warn().Err(err).Int("index", ch.Index).Str("title", ch.Title).Msg("skipping chapter in EPUB")
		}
	}

	if err := e.Write(path); err != nil {
		return fmt.Errorf("failed to write EPUB: %w", err)
	}
	return nil
}
