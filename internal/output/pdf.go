package output

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"webnovel-scraper/internal/formatter"
)

// GeneratePDF writes book as an A4 PDF at path: a title page, then each
// chapter on a new page with an outline bookmark.
//
// The core fonts only cover cp1252, so text is translated and characters
// outside that code page are lost.
func GeneratePDF(book *Book, path string) error {
	if len(book.Chapters) == 0 {
		return fmt.Errorf("no chapters to include in PDF")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(book.Title, true)
	if book.Author != "" {
		pdf.SetAuthor(book.Author, true)
	}
	pdf.SetCreator("webnovel-scraper", true)
	if book.Publisher != "" {
		pdf.SetKeywords(book.Publisher, true)
	}
	if book.Rights != "" {
		pdf.SetSubject(book.Rights, true)
	}
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		if pdf.PageNo() == 1 {
			return
		}
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.Ln(60)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.MultiCell(0, 12, tr(book.Title), "", "C", false)
	if book.Author != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 14)
		pdf.MultiCell(0, 8, tr(book.Author), "", "C", false)
	}
	if colophon := book.Colophon(); colophon != "" {
		pdf.Ln(20)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr(colophon), "", "C", false)
	}

	for _, ch := range book.Chapters {
		pdf.AddPage()
		pdf.Bookmark(ch.Title, 0, -1)

		pdf.SetFont("Helvetica", "B", 16)
		pdf.MultiCell(0, 9, tr(ch.Title), "", "L", false)
		pdf.Ln(4)

		pdf.SetFont("Times", "", 12)
		for _, p := range formatter.SplitIntoParagraphs(ch.Body) {
			// MultiCell keeps the single newlines left by <br>
			pdf.MultiCell(0, 6, tr(p), "", "J", false)
			pdf.Ln(3)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
