// Package goldmark renders Markdown summaries as HTML.
package goldmark

import (
	"bytes"
	"fmt"

	"github.com/fwojciec/tenk"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Ensure Renderer implements tenk.Renderer at compile time.
var _ tenk.Renderer = (*Renderer)(nil)

// Renderer implements tenk.Renderer. Raw HTML in the input is not passed
// through, since summaries come from a model.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GitHub-flavored Markdown enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Render converts markdown to an HTML fragment.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
