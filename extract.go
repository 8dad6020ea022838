package tenk

import (
	"strings"
	"unicode"
)

// Extraction is the text of one section located in a filing document.
// Text is always document[Start:End].
type Extraction struct {
	Section SectionID `json:"section"`
	Start   int       `json:"start"`
	End     int       `json:"end"`
	Text    string    `json:"text"`
}

// Extract locates a section in the plain text of a 10-K filing.
//
// Every line-anchored "Item <n>. <Title>" heading for the section is a
// candidate. A candidate's body runs to the first heading of any later item,
// or to the end of the document. A candidate whose body contains a heading
// of the same or an earlier item ran on from a table of contents into the
// filing itself and is dropped. Of the rest, the longest body wins; on a tie
// the later candidate wins.
//
// Returns EINVALID for an unsupported section and ENOTFOUND when the
// document has no usable heading for it.
func Extract(document string, id SectionID) (*Extraction, error) {
	a, ok := anchorsByID[id]
	if !ok {
		return nil, Errorf(EINVALID, "unsupported section %q", string(id))
	}

	if strings.TrimSpace(document) == "" {
		return nil, Errorf(ENOTFOUND, "section %q not found: empty document", string(id))
	}

	var best *Extraction
	for _, loc := range a.start.FindAllStringIndex(document, -1) {
		bodyStart, bodyEnd := a.headingEnd(document, loc[1]), len(document)
		if a.end != nil {
			if m := a.end.FindStringIndex(document[bodyStart:]); m != nil {
				bodyEnd = bodyStart + m[0]
			}
		}
		if a.wraps(document[bodyStart:bodyEnd]) {
			continue
		}

		ext := trimmedSpan(document, id, bodyStart, bodyEnd)
		if ext == nil {
			continue
		}
		if best == nil || len(ext.Text) >= len(best.Text) {
			best = ext
		}
	}

	if best == nil {
		return nil, Errorf(ENOTFOUND, "section %q not found", string(id))
	}
	return best, nil
}

// wraps reports whether body contains a heading for this section or an
// earlier one.
func (a *sectionAnchors) wraps(body string) bool {
	if a.start.MatchString(body) {
		return true
	}
	return a.earlier != nil && a.earlier.MatchString(body)
}

// ExtractAll extracts every supported section present in document,
// in filing order.
func ExtractAll(document string) []*Extraction {
	var out []*Extraction
	for _, s := range sections {
		ext, err := Extract(document, s.ID)
		if err != nil {
			continue
		}
		out = append(out, ext)
	}
	return out
}

// trimmedSpan returns the whitespace-trimmed span of document[start:end],
// or nil if nothing remains.
func trimmedSpan(document string, id SectionID, start, end int) *Extraction {
	body := document[start:end]
	left := strings.TrimLeftFunc(body, unicode.IsSpace)
	text := strings.TrimRightFunc(left, unicode.IsSpace)
	if text == "" {
		return nil
	}
	s := start + len(body) - len(left)
	return &Extraction{
		Section: id,
		Start:   s,
		End:     s + len(text),
		Text:    text,
	}
}
