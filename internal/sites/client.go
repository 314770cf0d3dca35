package sites

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"webnovel-scraper/internal/extractor"
	"webnovel-scraper/internal/navigator"
)

// Fetcher retrieves a page body. Implementations report non-2xx statuses and
// transport failures as errors; Client never retries.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client runs profiles against live pages. It keeps no per-call state, so
// one Client may serve concurrent extractions.
type Client struct {
	fetcher Fetcher
}

// NewClient creates a client that fetches pages through f.
func NewClient(f Fetcher) *Client {
	return &Client{fetcher: f}
}

// ParseBook fetches a book's table of contents and returns its title and
// ordered, deduplicated chapter list. Fetch errors are returned unchanged;
// a page without usable chapter links yields ErrNoChaptersFound.
func (c *Client) ParseBook(ctx context.Context, p Profile, bookURL string) (string, []navigator.Chapter, error) {
	doc, err := c.document(ctx, bookURL)
	if err != nil {
		return "", nil, err
	}

	title := extractor.ExtractTitle(doc, p.BookTitleSelectors, p.DefaultBookTitle)
	chapters := navigator.ExtractChapterLinks(doc, bookURL, p.LinkTiers, p.BasePath)
	if len(chapters) == 0 {
		return title, nil, fmt.Errorf("%w on %s page %s", ErrNoChaptersFound, p.Name(), bookURL)
	}

	log.Debug().
		Str("site", p.Name()).
		Str("title", title).
		Int("chapters", len(chapters)).
		Msg("book parsed")
	return title, chapters, nil
}

// FetchChapter fetches one chapter page and extracts its title and body.
// A missing title defaults to extractor.DefaultChapterTitle and a missing
// body container yields an empty body; neither is an error.
func (c *Client) FetchChapter(ctx context.Context, p Profile, chapterURL string) (extractor.ExtractedBody, error) {
	doc, err := c.document(ctx, chapterURL)
	if err != nil {
		return extractor.ExtractedBody{}, err
	}

	result := extractor.Extract(doc, p.ChapterTitleSelectors, p.BodyChain)
	if result.Selector == "" {
		log.Debug().Str("site", p.Name()).Str("url", chapterURL).Msg("no body container matched")
	}
	return result, nil
}

func (c *Client) document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	start := time.Now()
	body, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("url", pageURL).Int("bytes", len(body)).Dur("took", time.Since(start)).Msg("page fetched")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}
	return doc, nil
}
