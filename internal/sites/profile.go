// Package sites holds the per-site extraction profiles and the registry
// that picks one for a URL.
package sites

import (
	"fmt"
	"slices"

	"webnovel-scraper/internal/extractor"
	"webnovel-scraper/internal/navigator"
)

// Site is the closed set of supported fiction hosts.
type Site int

const (
	RoyalRoad Site = iota + 1
	MVLEmpyr
	Novatls
	Ellotl
)

func (s Site) String() string {
	switch s {
	case RoyalRoad:
		return "RoyalRoad"
	case MVLEmpyr:
		return "MVLEmpyr"
	case Novatls:
		return "Novatls"
	case Ellotl:
		return "Ellotl"
	default:
		return fmt.Sprintf("Site(%d)", int(s))
	}
}

// Profile is the declarative extraction recipe for one site. A Registry keeps
// its own deep copies, so editing a resolved Profile never reaches it.
type Profile struct {
	Site Site
	// Domains are matched as substrings of the lower-cased request host.
	Domains []string

	BookTitleSelectors []string
	DefaultBookTitle   string
	LinkTiers          []navigator.LinkTier
	// BasePath is set only for sites whose chapter links are recognised by
	// URL layout rather than markup.
	BasePath *navigator.BasePathRule

	ChapterTitleSelectors []string
	BodyChain             []extractor.BodySpec
}

// Name returns the human-readable site name.
func (p Profile) Name() string {
	return p.Site.String()
}

// clone returns a copy of p that shares no slices or pointers with it.
func (p Profile) clone() Profile {
	c := p
	c.Domains = slices.Clone(p.Domains)
	c.BookTitleSelectors = slices.Clone(p.BookTitleSelectors)
	c.LinkTiers = slices.Clone(p.LinkTiers)
	c.ChapterTitleSelectors = slices.Clone(p.ChapterTitleSelectors)
	c.BodyChain = slices.Clone(p.BodyChain)
	if p.BasePath != nil {
		rule := *p.BasePath
		c.BasePath = &rule
	}
	return c
}

// Builtin returns fresh copies of the supported profiles in their fixed
// registration order.
func Builtin() []Profile {
	return []Profile{
		royalRoadProfile(),
		mvlEmpyrProfile(),
		novatlsProfile(),
		ellotlProfile(),
	}
}

func royalRoadProfile() Profile {
	return Profile{
		Site:               RoyalRoad,
		Domains:            []string{"royalroad.com", "www.royalroad.com"},
		BookTitleSelectors: []string{"h1.fiction-title", "h1"},
		DefaultBookTitle:   "RoyalRoad_Fiction",
		LinkTiers: []navigator.LinkTier{
			{
				Selector: "a[href]",
				Filter:   navigator.LinkFilter{Kind: navigator.FilterBasePath},
			},
			{
				Selector: "table#chapters a, .chapter-list a, a.chapter-title",
				Filter:   navigator.LinkFilter{Kind: navigator.FilterURLContains, Pattern: "/chapter/"},
			},
		},
		BasePath:              &navigator.BasePathRule{Segment: "fiction", ChapterDir: "/chapter/"},
		ChapterTitleSelectors: []string{"h1.chapter-title", "h1", ".chapter-title"},
		BodyChain: extractor.BodyChain(extractor.DefaultExclude,
			"div.chapter-content", "div.chapter-inner", "div.fic-section", "article", "div#chapter-content"),
	}
}

func mvlEmpyrProfile() Profile {
	return Profile{
		Site:               MVLEmpyr,
		Domains:            []string{"mvlempyr.com", "www.mvlempyr.com"},
		BookTitleSelectors: []string{"h1.entry-title", "h1[class*=novel]", "h1"},
		DefaultBookTitle:   "MVLEmpyr_Novel",
		LinkTiers: []navigator.LinkTier{
			{Selector: ".chapter-list a, .epl-list a, .wp-block-list a, .su-posts a"},
			{
				Selector: "a[href]",
				Filter:   navigator.LinkFilter{Kind: navigator.FilterHrefContains, Pattern: "/chapter"},
			},
		},
		ChapterTitleSelectors: []string{"h1.entry-title", "h1[class*=chapter]", "h1"},
		BodyChain: extractor.BodyChain(extractor.DefaultExclude,
			"article", "div.entry-content", "div#chapter-content", "div.text-left"),
	}
}

func novatlsProfile() Profile {
	return Profile{
		Site:               Novatls,
		Domains:            []string{"novatls.com", "www.novatls.com"},
		BookTitleSelectors: []string{"h1.entry-title", "h1"},
		DefaultBookTitle:   "Novatls_Series",
		LinkTiers: []navigator.LinkTier{
			{Selector: ".epl-list a, .chapter-list a, .wp-block-list a"},
			{Selector: "a[href*='/chapter']"},
		},
		ChapterTitleSelectors: []string{"h1.entry-title", "h1"},
		BodyChain: extractor.BodyChain(extractor.DefaultExclude,
			"article", "div.entry-content", "div#chapter-content"),
	}
}

func ellotlProfile() Profile {
	return Profile{
		Site:               Ellotl,
		Domains:            []string{"ellotl.com", "www.ellotl.com"},
		BookTitleSelectors: []string{"h1.entry-title", "h1"},
		DefaultBookTitle:   "Ellotl_Series",
		LinkTiers: []navigator.LinkTier{
			{Selector: ".chapter-list a, .epl-list a, .wp-block-list a"},
		},
		ChapterTitleSelectors: []string{"h1.entry-title", "h1"},
		BodyChain: extractor.BodyChain(extractor.DefaultExclude,
			"article", "div.entry-content", "div#chapter-content"),
	}
}
