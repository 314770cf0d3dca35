package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"webnovel-scraper/internal/formatter"
	"webnovel-scraper/internal/output"
	"webnovel-scraper/internal/scraper"
)

func (a *app) downloadCmd() *cobra.Command {
	var (
		projectName  string
		skipExisting bool
		stopOnError  bool
		export       bool
	)

	cmd := &cobra.Command{
		Use:   "download <book-url>",
		Short: "Download every chapter of a book into a project",
		Long: `Download every chapter of a book into <workdir>/<project>/Original/<book>/.

Ctrl-C stops after the chapter being fetched; a second Ctrl-C quits at once.
On unix, SIGUSR1 pauses and resumes the download between chapters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bookURL := args[0]
			out := cmd.OutOrStdout()

			profile, err := a.resolve(bookURL)
			if err != nil {
				return err
			}
			client, _, err := a.client()
			if err != nil {
				return err
			}
			archive, err := a.archive()
			if err != nil {
				return err
			}
			proj, err := archive.OpenOrCreate(projectName)
			if err != nil {
				return err
			}
			proj.SourceURL = bookURL
			if err := proj.Save(); err != nil {
				return err
			}

			printHeader(out)
			fmt.Fprintf(out, "📍 Book URL: %s\n", bookURL)
			fmt.Fprintf(out, "🌐 Site: %s\n", profile.Name())
			fmt.Fprintf(out, "📂 Project: %s\n", proj.Path)
			fmt.Fprintln(out, strings.Repeat("─", 60))

			control := &scraper.Control{}
			stop := watchSignals(control, out)
			defer stop()

			d := &scraper.Downloader{
				Client:       client,
				Store:        proj.Chapters(),
				Control:      control,
				StopOnError:  stopOnError || a.cfg.Scraping.StopOnError,
				SkipExisting: skipExisting,
				OnProgress:   progressPrinter(out),
			}

			fmt.Fprintln(out, "\n⏳ Starting download...")
			res, err := d.Download(cmd.Context(), profile, bookURL)
			if res != nil {
				printSummary(out, res)
			}
			if errors.Is(err, scraper.ErrCancelled) {
				fmt.Fprintln(out, "⏹ Download cancelled. Run again with --skip-existing to resume.")
				return nil
			}
			if err != nil {
				return err
			}

			if export {
				return a.exportBook(out, proj.Chapters(), res.Title, a.cfg.Output.Format, proj.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "project name (created when missing)")
	cmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "keep chapters already saved in the project")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "stop at the first chapter that fails")
	cmd.Flags().BoolVar(&export, "export", false, "export the book in the configured format when done")
	cmd.MarkFlagRequired("project")
	return cmd
}

func progressPrinter(out io.Writer) func(scraper.Progress) {
	return func(p scraper.Progress) {
		switch {
		case p.Skipped:
			fmt.Fprintf(out, "⏭  [%d/%d] %s (already saved)\n", p.Index, p.Total, p.Title)
		case p.Err != nil:
			fmt.Fprintf(out, "  ✗ [%d/%d] %s: %v\n", p.Index, p.Total, p.Title, p.Err)
		default:
			fmt.Fprintf(out, "✓ [%d/%d] %3d%% %s\n", p.Index, p.Total, p.Percent, p.Title)
		}
	}
}

func printHeader(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("═", 60))
	fmt.Fprintf(out, "📚 %s v%s\n", AppName, AppVersion)
	fmt.Fprintln(out, strings.Repeat("═", 60))
}

func printSummary(out io.Writer, res *scraper.Result) {
	words := res.Words()

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 50))
	fmt.Fprintf(out, "📚 Download Summary\n")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Book: %s\n", res.Title)
	fmt.Fprintf(out, "Chapters saved: %d of %d\n", len(res.Saved), res.Total)
	if len(res.Skipped) > 0 {
		fmt.Fprintf(out, "Chapters skipped: %d\n", len(res.Skipped))
	}
	fmt.Fprintf(out, "Total words: ~%d\n", words)
	fmt.Fprintf(out, "Estimated reading time: ~%s\n", output.FormatDuration(formatter.EstimateReadingTime(words)))
	for _, ch := range res.Empty {
		fmt.Fprintf(out, "⚠ Empty chapter %d (%s): check %s\n", ch.Index, ch.Title, ch.URL)
	}
	for _, f := range res.Failed {
		fmt.Fprintf(out, "✗ Failed chapter %d: %v\n", f.Index, f.Err)
	}
	fmt.Fprintln(out, strings.Repeat("=", 50))
}
