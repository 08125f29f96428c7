package util

import "strings"

var nbspReplacer = strings.NewReplacer(
	" ", " ",
	"&nbsp;", " ",
	"&#160;", " ",
)

// CleanText collapses whitespace runs into single spaces and strips
// non-breaking space entities. Used on scraped titles and descriptions.
func CleanText(input string) string {
	result := nbspReplacer.Replace(input)
	result = strings.Join(strings.Fields(result), " ")

	return result
}

// NormalizeStr strips all whitespace and lowercases, for comparisons.
func NormalizeStr(input string) string {
	result := nbspReplacer.Replace(input)
	result = strings.Join(strings.Fields(result), "")
	result = strings.ToLower(result)

	return result
}
