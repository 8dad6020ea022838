package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements tenk.Converter at compile time.
var _ tenk.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Item 1A. Risk Factors</h2><p>Our business is subject to risk.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "## Item 1A. Risk Factors")
		assert.Contains(t, md, "Our business is subject to risk.")
	})

	t.Run("converts bold headings", func(t *testing.T) {
		t.Parallel()

		html := `<p><strong>Item 7. Management's Discussion and Analysis</strong></p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "**Item 7. Management's Discussion and Analysis**")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Segment</th><th>Revenue</th></tr></thead>
<tbody><tr><td>Americas</td><td>167,045</td></tr><tr><td>Europe</td><td>101,328</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Table cells may have padding for alignment, so check for content
		assert.Contains(t, md, "Segment")
		assert.Contains(t, md, "Americas")
		assert.Contains(t, md, "167,045")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("drops inline XBRL header and hidden blocks", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div style="display:none"><ix:header><ix:hidden>dei:EntityCentralIndexKey 0000320193</ix:hidden></ix:header></div>
<script>var x = 1;</script>
<p>Apple Inc. designs smartphones.</p>
</body></html>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "Apple Inc. designs smartphones.")
		assert.NotContains(t, md, "EntityCentralIndexKey")
		assert.NotContains(t, md, "var x")
	})

	t.Run("output is extractable", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Item 1A. Risk Factors</h2>
<p>Competition is intense.</p>
<h2>Item 1B. Unresolved Staff Comments</h2>
<p>None.</p>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)
		require.NoError(t, err)

		ext, err := tenk.Extract(md, tenk.SectionRiskFactors)

		require.NoError(t, err)
		assert.Equal(t, "Competition is intense.", ext.Text)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("  ")

		require.Error(t, err)
		assert.Equal(t, tenk.EINVALID, tenk.ErrorCode(err))
	})
}
