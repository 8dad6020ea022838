package mock

import "github.com/fwojciec/tenk"

var _ tenk.Converter = (*Converter)(nil)

// Converter is a mock implementation of tenk.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ tenk.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of tenk.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}
