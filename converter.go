package tenk

// Converter turns a filing's HTML into text the section extractor can read.
type Converter interface {
	// Convert transforms HTML content into text. Item headings must remain
	// visible as text at the start of a line.
	// Returns EINVALID for empty input.
	Convert(html string) (string, error)
}

// Renderer renders Markdown, such as a generated summary, as HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}
