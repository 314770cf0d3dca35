// Package scraper drives a whole book download: it fetches pages politely,
// walks the chapter list and hands each chapter to a store, honouring
// pause and cancel requests between chapters.
package scraper

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"webnovel-scraper/internal/extractor"
	"webnovel-scraper/internal/formatter"
	"webnovel-scraper/internal/sites"
)

// ChapterStore persists downloaded chapters.
type ChapterStore interface {
	Exists(book string, index int) bool
	SaveChapter(book string, index int, title, body string) (string, error)
}

// Progress is reported once per chapter, whatever its outcome.
type Progress struct {
	Index   int
	Total   int
	Title   string
	URL     string
	Percent int
	Skipped bool
	Err     error
}

// ChapterOutcome describes one stored chapter.
type ChapterOutcome struct {
	Index int
	Title string
	URL   string
	Path  string
	Words int
}

// ChapterFailure records a chapter whose fetch failed.
type ChapterFailure struct {
	Index int
	URL   string
	Err   error
}

// Result summarises a download. It is returned even when the run stops
// early so callers can report partial progress.
type Result struct {
	Title   string
	Total   int
	Saved   []ChapterOutcome
	Skipped []int
	// Empty lists saved chapters with no body text; they need a manual look.
	Empty  []ChapterOutcome
	Failed []ChapterFailure
}

// Words returns the word count over all saved chapters.
func (r *Result) Words() int {
	total := 0
	for _, ch := range r.Saved {
		total += ch.Words
	}
	return total
}

// Downloader orchestrates one book at a time.
type Downloader struct {
	Client  *sites.Client
	Store   ChapterStore
	Control *Control
	// StopOnError ends the run at the first failed chapter instead of
	// recording it and moving on.
	StopOnError bool
	// SkipExisting leaves chapters already in Store untouched.
	SkipExisting bool
	OnProgress   func(Progress)
}

// Download parses the book at bookURL and stores every chapter in order.
// Pause and cancel are checked before each chapter; a cancelled run
// returns the partial result with ErrCancelled.
func (d *Downloader) Download(ctx context.Context, p sites.Profile, bookURL string) (*Result, error) {
	control := d.Control
	if control == nil {
		control = &Control{}
	}

	title, chapters, err := d.Client.ParseBook(ctx, p, bookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse book: %w", err)
	}

	res := &Result{Title: title, Total: len(chapters)}
	log.Info().Str("site", p.Name()).Str("book", title).Int("chapters", len(chapters)).Msg("download started")

	for i, ch := range chapters {
		index := i + 1
		if err := control.Wait(ctx); err != nil {
			log.Info().Int("index", index).Err(err).Msg("download stopped")
			return res, err
		}

		event := Progress{Index: index, Total: res.Total, Title: ch.Title, URL: ch.URL, Percent: index * 100 / res.Total}

		if d.SkipExisting && d.Store.Exists(title, index) {
			res.Skipped = append(res.Skipped, index)
			event.Skipped = true
			d.report(event)
			continue
		}

		extracted, err := d.Client.FetchChapter(ctx, p, ch.URL)
		if err != nil {
			log.Warn().Err(err).Int("index", index).Str("url", ch.URL).Msg("chapter failed")
			res.Failed = append(res.Failed, ChapterFailure{Index: index, URL: ch.URL, Err: err})
			event.Err = err
			d.report(event)
			if d.StopOnError {
				return res, fmt.Errorf("chapter %d: %w", index, err)
			}
			continue
		}

		chapterTitle := extracted.Title
		if chapterTitle == extractor.DefaultChapterTitle && ch.Title != "" {
			chapterTitle = ch.Title
		}

		path, err := d.Store.SaveChapter(title, index, chapterTitle, extracted.Body)
		if err != nil {
			return res, fmt.Errorf("failed to save chapter %d: %w", index, err)
		}

		outcome := ChapterOutcome{
			Index: index,
			Title: chapterTitle,
			URL:   ch.URL,
			Path:  path,
			Words: formatter.WordCount(extracted.Body),
		}
		res.Saved = append(res.Saved, outcome)
		if extracted.Body == "" {
			res.Empty = append(res.Empty, outcome)
		}

		event.Title = chapterTitle
		d.report(event)
	}

	log.Info().
		Str("book", title).
		Int("saved", len(res.Saved)).
		Int("skipped", len(res.Skipped)).
		Int("failed", len(res.Failed)).
		Msg("download finished")
	return res, nil
}

func (d *Downloader) report(p Progress) {
	if d.OnProgress != nil {
		d.OnProgress(p)
	}
}
