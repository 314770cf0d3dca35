package navigator

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"webnovel-scraper/internal/formatter"
)

// Chapter identifies one installment of a book: its link text and absolute
// URL.
type Chapter struct {
	Title string
	URL   string
}

// FilterKind selects how anchors matched by a tier's selector are screened.
type FilterKind int

const (
	// FilterNone accepts every anchor with a usable href and text.
	FilterNone FilterKind = iota
	// FilterBasePath accepts anchors whose resolved URL lies under the
	// book's chapter directory, as given by a BasePathRule.
	FilterBasePath
	// FilterURLContains accepts anchors whose resolved URL contains Pattern.
	FilterURLContains
	// FilterHrefContains accepts anchors whose raw href contains Pattern.
	FilterHrefContains
)

// LinkFilter screens anchors within one tier.
type LinkFilter struct {
	Kind    FilterKind
	Pattern string
}

// LinkTier is one level of a link selector chain.
type LinkTier struct {
	Selector string
	Filter   LinkFilter
}

// BasePathRule scopes chapter links to scheme://host/<Segment>/<id>/<slug>
// followed by ChapterDir. It exists for sites whose class names churn but
// whose URL layout is stable.
type BasePathRule struct {
	Segment    string
	ChapterDir string
}

// Prefix returns the URL prefix every chapter of the book at pageURL shares.
func (r BasePathRule) Prefix(pageURL string) string {
	base := BookBasePath(pageURL, r.Segment)
	if base == "" {
		return ""
	}
	return base + r.ChapterDir
}

func (f LinkFilter) accept(href, absURL, basePrefix string) bool {
	switch f.Kind {
	case FilterNone:
		return true
	case FilterBasePath:
		return basePrefix != "" && strings.HasPrefix(absURL, basePrefix)
	case FilterURLContains:
		return strings.Contains(absURL, f.Pattern)
	case FilterHrefContains:
		return strings.Contains(href, f.Pattern)
	default:
		return false
	}
}

// ExtractChapterLinks walks tiers in order and returns the deduplicated
// chapters of the first tier that yields at least one usable anchor. Later
// tiers are never merged in. rule is required only by FilterBasePath tiers.
// A nil result means no tier matched anything.
func ExtractChapterLinks(doc *goquery.Document, pageURL string, tiers []LinkTier, rule *BasePathRule) []Chapter {
	var basePrefix string
	if rule != nil {
		basePrefix = rule.Prefix(pageURL)
	}

	for i, tier := range tiers {
		var found []Chapter
		doc.Find(tier.Selector).Each(func(_ int, a *goquery.Selection) {
			href, exists := a.Attr("href")
			if !exists {
				return
			}
			absURL := ResolveRelativeURL(pageURL, href)
			if absURL == "" {
				return
			}
			if !tier.Filter.accept(href, absURL, basePrefix) {
				return
			}
			title := formatter.CleanTitle(a.Text())
			if title == "" {
				return
			}
			found = append(found, Chapter{Title: title, URL: absURL})
		})

		if len(found) > 0 {
			chapters := Dedupe(found)
			log.Debug().
				Int("tier", i).
				Str("selector", tier.Selector).
				Int("anchors", len(found)).
				Int("chapters", len(chapters)).
				Msg("chapter tier matched")
			return chapters
		}
	}
	return nil
}

// Dedupe drops chapters whose URL was already seen, keeping the first
// occurrence and the original order.
func Dedupe(chapters []Chapter) []Chapter {
	seen := make(map[string]bool, len(chapters))
	unique := make([]Chapter, 0, len(chapters))
	for _, ch := range chapters {
		if seen[ch.URL] {
			continue
		}
		seen[ch.URL] = true
		unique = append(unique, ch)
	}
	return unique
}
