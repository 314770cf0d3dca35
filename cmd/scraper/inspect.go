package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"webnovel-scraper/internal/formatter"
	"webnovel-scraper/internal/sites"
)

func (a *app) resolve(rawURL string) (sites.Profile, error) {
	p, err := a.registry.Resolve(rawURL)
	if errors.Is(err, sites.ErrUnsupportedSite) {
		return p, fmt.Errorf("%w (supported: %s)", err, a.supportedSites())
	}
	return p, err
}

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <url>",
		Short: "Show which site profile handles a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%s)\n", p.Name(), strings.Join(p.Domains, ", "))
			return nil
		},
	}
}

func (a *app) chaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters <book-url>",
		Short: "List the chapters of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			client, _, err := a.client()
			if err != nil {
				return err
			}

			title, chapters, err := client.ParseBook(cmd.Context(), p, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📖 %s (%s)\n", title, p.Name())
			fmt.Fprintf(out, "Found %d chapters\n\n", len(chapters))
			for i, ch := range chapters {
				fmt.Fprintf(out, "%4d. %s\n      %s\n", i+1, ch.Title, ch.URL)
			}
			return nil
		},
	}
}

func (a *app) chapterCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "chapter <chapter-url>",
		Short: "Extract a single chapter and print it",
		Long:  "Extract a single chapter. Useful to check a site profile before a full download.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			client, _, err := a.client()
			if err != nil {
				return err
			}

			chapter, err := client.FetchChapter(cmd.Context(), p, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📝 Title: %s\n", chapter.Title)
			if chapter.Selector == "" {
				fmt.Fprintln(out, "⚠ No content container matched; body is empty")
				return nil
			}
			fmt.Fprintf(out, "🔍 Matched: %s\n", chapter.Selector)
			fmt.Fprintf(out, "📊 %d words, %d characters\n", formatter.WordCount(chapter.Body), len([]rune(chapter.Body)))
			fmt.Fprintln(out, strings.Repeat("─", 40))
			if full {
				fmt.Fprintln(out, chapter.Body)
			} else {
				fmt.Fprintln(out, formatter.TruncateText(chapter.Body, 500))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print the whole body instead of a preview")
	return cmd
}
