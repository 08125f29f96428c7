package extract

import (
	"regexp"
	"strings"
)

var externalIdPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/subasta/(\d+)`),
	regexp.MustCompile(`/(\d+)`),
	regexp.MustCompile(`id=(\d+)`),
	regexp.MustCompile(`subasta-(\w+)`),
}

// ExternalIdFromUrl pulls the site-native identifier out of a detail page
// URL: numeric path segment, query parameter, or slug-with-id. Empty when
// no pattern matches.
func ExternalIdFromUrl(url string) string {
	for _, pattern := range externalIdPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}

	return ""
}

// Slug returns the trailing path segment of a link.
func Slug(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	href = strings.TrimRight(href, "/")

	if i := strings.LastIndex(href, "/"); i >= 0 {
		return href[i+1:]
	}

	return href
}
