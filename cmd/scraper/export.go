package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"webnovel-scraper/internal/output"
)

func (a *app) exportCmd() *cobra.Command {
	var projectName, bookTitle, format, outputDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a downloaded book as EPUB, PDF or text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			archive, err := a.archive()
			if err != nil {
				return err
			}
			proj, err := archive.Open(projectName)
			if err != nil {
				return err
			}
			store := proj.Chapters()

			if bookTitle == "" {
				books, err := store.Books()
				if err != nil {
					return err
				}
				switch len(books) {
				case 0:
					return fmt.Errorf("project %q has no downloaded books", proj.Name)
				case 1:
					bookTitle = books[0]
				default:
					return fmt.Errorf("project %q holds several books, pick one with --book: %s", proj.Name, strings.Join(books, ", "))
				}
			}
			if format == "" {
				format = a.cfg.Output.Format
			}
			if outputDir == "" {
				outputDir = proj.Path
			}
			return a.exportBook(cmd.OutOrStdout(), store, bookTitle, format, outputDir)
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "project name")
	cmd.Flags().StringVarP(&bookTitle, "book", "b", "", "book title inside the project (default: the only book)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "epub, pdf or txt (default from config)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default: the project folder)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func (a *app) exportBook(out io.Writer, store *output.ChapterStore, bookTitle, format, outputDir string) error {
	book, err := store.LoadBook(bookTitle)
	if err != nil {
		return err
	}
	book.Author = a.cfg.Output.Author
	book.Lang = a.cfg.Output.EPUBMetadata.Lang
	book.Rights = a.cfg.Output.EPUBMetadata.Rights
	book.Publisher = a.cfg.Output.EPUBMetadata.Publisher

	fmt.Fprintf(out, "\n📦 Generating %s for %q (%d chapters)...\n", strings.ToUpper(format), book.Title, len(book.Chapters))
	fmt.Fprintf(out, "📖 ~%d words, about %s of reading\n", book.TotalWordCount(), output.FormatDuration(book.EstimatedReadingTime()))
	path, err := output.Export(book, format, outputDir)
	if err != nil {
		return fmt.Errorf("%s generation failed: %w", format, err)
	}

	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "✓ Generated: %s (%s)\n", path, output.FormatFileSize(info.Size()))
	} else {
		fmt.Fprintf(out, "✓ Generated: %s\n", path)
	}
	return nil
}
