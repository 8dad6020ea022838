// Package htmltomarkdown renders filing HTML as Markdown.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tenk"
)

// Ensure Converter implements tenk.Converter at compile time.
var _ tenk.Converter = (*Converter)(nil)

// hiddenSelector matches filing content that is never rendered, including
// the inline XBRL header block.
const hiddenSelector = `script, style, noscript, template, ix\:header, ` +
	`[style*="display:none"], [style*="display: none"]`

// Converter wraps html-to-markdown to convert filing HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert strips hidden elements and transforms the remaining HTML into
// Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", tenk.Errorf(tenk.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find(hiddenSelector).Remove()

	visible, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	result, err := c.conv.ConvertString(visible)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}
