package editor

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements end with a line break in the plain-text projection.
var blockElements = map[atom.Atom]bool{
	atom.P:          true,
	atom.Div:        true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Li:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
}

// ProjectText returns the plain text of editor HTML, trimmed of surrounding whitespace.
//
// Every block element contributes a trailing newline, so an empty paragraph between two
// paragraphs yields the "\n\n" chunk separator. A <br> that is the only child of a block is
// the editor's empty-line placeholder and adds nothing of its own.
func ProjectText(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		// html.Parse only fails on reader errors; a strings.Reader has none
		return strings.TrimSpace(src)
	}

	var b strings.Builder
	project(&b, doc)
	return strings.TrimSpace(b.String())
}

func project(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Head:
			return
		case atom.Br:
			if !placeholderBreak(n) {
				b.WriteByte('\n')
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		project(b, c)
	}

	if n.Type == html.ElementNode && blockElements[n.DataAtom] {
		b.WriteByte('\n')
	}
}

func placeholderBreak(n *html.Node) bool {
	p := n.Parent
	if p == nil || !blockElements[p.DataAtom] {
		return false
	}
	return p.FirstChild == n && p.LastChild == n
}
