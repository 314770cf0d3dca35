package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Article: true, atom.Section: true,
	atom.Main: true, atom.Blockquote: true, atom.Pre: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Li: true,
	atom.Table: true, atom.Tr: true,
}

// replaceLineBreaks swaps every <br> below sel for a literal "\n" text node.
// It must run before serialisation, otherwise the break is lost.
func replaceLineBreaks(sel *goquery.Selection) {
	sel.Find("br").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			if n.Parent == nil {
				continue
			}
			n.Parent.InsertBefore(&html.Node{Type: html.TextNode, Data: "\n"}, n)
			n.Parent.RemoveChild(n)
		}
	})
}

// nodeText serialises a subtree to text. Text nodes are kept verbatim except
// for indentation-only nodes, which collapse to a single newline; block
// elements are surrounded by newlines so paragraphs stay apart.
func nodeText(n *html.Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" && strings.ContainsAny(n.Data, "\r\n") {
			b.WriteString("\n")
			return
		}
		b.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		b.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteString("\n")
	}
}
