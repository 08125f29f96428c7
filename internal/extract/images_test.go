package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://www.bogotaauctions.com"

func selectionFromHtml(t *testing.T, html string) *goquery.Selection {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	return doc.Selection
}

func TestImages(t *testing.T) {
	t.Run("prefers lazy load attribute", func(t *testing.T) {
		sel := selectionFromHtml(t, `<div>
			<img data-src="/img/real.jpg" src="/img/placeholder.gif">
		</div>`)

		assert.Equal(t, []string{base + "/img/real.jpg"}, Images(sel, base))
	})

	t.Run("keeps document order without dedup", func(t *testing.T) {
		sel := selectionFromHtml(t, `<div>
			<img src="/img/a.jpg">
			<img src="//cdn.example.com/b.jpg">
			<img src="/img/a.jpg">
		</div>`)

		assert.Equal(t, []string{
			base + "/img/a.jpg",
			"https://cdn.example.com/b.jpg",
			base + "/img/a.jpg",
		}, Images(sel, base))
	})

	t.Run("skips images without source", func(t *testing.T) {
		sel := selectionFromHtml(t, `<div><img alt="sin imagen"><img src="  "></div>`)

		assert.Empty(t, Images(sel, base))
	})

	t.Run("blank lazy attribute falls back to src", func(t *testing.T) {
		sel := selectionFromHtml(t, `<div><img data-src=" " src="/img/c.jpg"></div>`)

		assert.Equal(t, []string{base + "/img/c.jpg"}, Images(sel, base))
	})
}
