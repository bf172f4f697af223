// Package htmltext flattens HTML-formatted call summaries into the plain
// text the extractors expect. List items become "- " bullet lines so the
// bullet strategy still sees them.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LooksLikeHTML reports whether s appears to contain markup.
func LooksLikeHTML(s string) bool {
	i := strings.IndexByte(s, '<')
	return i >= 0 && strings.IndexByte(s[i:], '>') > 0
}

// ToText converts an HTML document or fragment to text. Input that fails
// to parse is returned unchanged.
func ToText(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			return
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Head:
				return
			case atom.Br:
				buf.WriteByte('\n')
				return
			case atom.Li:
				buf.WriteString("\n- ")
			default:
				if isBlock(n.DataAtom) {
					buf.WriteByte('\n')
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && (isBlock(n.DataAtom) || n.DataAtom == atom.Li) {
			buf.WriteByte('\n')
		}
	}
	walk(doc)

	return tidy(buf.String())
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Ul, atom.Ol, atom.Table, atom.Tr,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Section, atom.Article, atom.Header, atom.Footer, atom.Blockquote, atom.Pre:
		return true
	}
	return false
}

// tidy collapses whitespace inside lines and drops blank lines.
func tidy(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || line == "-" {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
