// Package goquery converts EDGAR filing HTML to plain text using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tenk"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Converter implements tenk.Converter at compile time.
var _ tenk.Converter = (*Converter)(nil)

// removeSelector matches content that is never rendered: scripts, styles,
// and the hidden inline XBRL header that carries tagging metadata.
const removeSelector = `head, script, style, noscript, template, ix\:header, ` +
	`[style*="display:none"], [style*="display: none"]`

// blockElements start and end a line of text.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Body: true, atom.Br: true, atom.Caption: true, atom.Center: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.Form: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Tbody: true, atom.Thead: true,
	atom.Tfoot: true, atom.Tr: true, atom.Ul: true,
}

// cellElements are separated by a space so a table row reads as one line.
var cellElements = map[atom.Atom]bool{
	atom.Td: true,
	atom.Th: true,
}

// Converter renders filing HTML as plain text. Block elements become lines
// and table rows become single lines, so "Item 1A." and "Risk Factors" in
// adjacent cells end up on the same line.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert transforms HTML content into plain text.
func (c *Converter) Convert(htmlContent string) (string, error) {
	if strings.TrimSpace(htmlContent) == "" {
		return "", tenk.Errorf(tenk.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", tenk.Errorf(tenk.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(removeSelector).Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		writeText(&sb, n)
	}

	return normalizeLines(sb.String()), nil
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	}

	block := blockElements[n.DataAtom]
	if block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if block {
		sb.WriteByte('\n')
	} else if cellElements[n.DataAtom] {
		sb.WriteByte(' ')
	}
}

// normalizeLines collapses runs of whitespace within each line, including
// no-break spaces, and keeps at most one blank line between paragraphs.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
