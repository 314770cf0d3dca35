// Package extractor turns parsed chapter pages into clean plain text.
//
// Body containers are located through ordered selector chains: the first
// selector that matches anything wins and later selectors are never
// consulted, even when the winning container turns out to be empty.
package extractor

// DefaultExclude lists the nodes stripped from a body container before its
// text is serialised: scripts, styles, inline ads, frames and page chrome.
const DefaultExclude = "script, style, ins, iframe, nav, header, footer"

// DefaultChapterTitle is used when no title selector matches.
const DefaultChapterTitle = "Chapter"

// BodySpec is one entry of a body selector chain.
type BodySpec struct {
	Selector string
	// Exclude is a selector group removed from the matched container.
	// Empty means nothing is removed.
	Exclude string
}

// ExtractedBody is the result of reading one chapter page.
// Title is never empty; Body may be.
type ExtractedBody struct {
	Title string
	Body  string
	// Selector is the body selector that matched, empty when none did.
	Selector string
}

// BodyChain builds a chain where every spec shares the same exclusion set.
func BodyChain(exclude string, selectors ...string) []BodySpec {
	chain := make([]BodySpec, len(selectors))
	for i, sel := range selectors {
		chain[i] = BodySpec{Selector: sel, Exclude: exclude}
	}
	return chain
}
