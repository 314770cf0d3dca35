package extractor

import (
	"github.com/PuerkitoBio/goquery"

	"webnovel-scraper/internal/formatter"
)

// ExtractTitle returns the first non-empty match text, trying selectors in
// priority order. fallback is returned when nothing matches.
func ExtractTitle(doc *goquery.Document, selectors []string, fallback string) string {
	for _, sel := range selectors {
		var title string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			title = formatter.CleanTitle(s.Text())
			return title == ""
		})
		if title != "" {
			return title
		}
	}
	return fallback
}

// ExtractBody finds the chapter container through chain and returns its
// normalised text plus the selector that matched. When nothing in the chain
// matches both values are empty; that is not an error.
func ExtractBody(doc *goquery.Document, chain []BodySpec) (string, string) {
	for _, spec := range chain {
		node := doc.Find(spec.Selector).First()
		if node.Length() == 0 {
			continue
		}
		return ContainerText(node, spec.Exclude), spec.Selector
	}
	return "", ""
}

// ContainerText strips excluded descendants from a copy of sel, turns line
// breaks into newlines and returns the normalised text.
func ContainerText(sel *goquery.Selection, exclude string) string {
	content := sel.Clone()
	if exclude != "" {
		content.Find(exclude).Remove()
	}
	replaceLineBreaks(content)

	var raw string
	for _, n := range content.Nodes {
		raw += nodeText(n)
	}
	return NormalizeText(raw)
}

// Extract reads a chapter page: title through titleSelectors (defaulting to
// DefaultChapterTitle) and body through chain.
func Extract(doc *goquery.Document, titleSelectors []string, chain []BodySpec) ExtractedBody {
	body, selector := ExtractBody(doc, chain)
	return ExtractedBody{
		Title:    ExtractTitle(doc, titleSelectors, DefaultChapterTitle),
		Body:     body,
		Selector: selector,
	}
}
