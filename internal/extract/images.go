package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Images collects <img> sources in document order, preferring the
// lazy-load attribute over src. No deduplication: order matters to the
// catalog display.
func Images(sel *goquery.Selection, baseUrl string) []string {
	var urls []string

	sel.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("data-src")
		if !ok || strings.TrimSpace(src) == "" {
			src, _ = img.Attr("src")
		}

		src = strings.TrimSpace(src)
		if src == "" {
			return
		}

		urls = append(urls, ResolveUrl(src, baseUrl))
	})

	return urls
}

// ResolveUrl makes protocol-relative and root-relative references
// absolute against the adapter's base URL.
func ResolveUrl(href, baseUrl string) string {
	switch {
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return strings.TrimRight(baseUrl, "/") + href
	}

	return href
}
