package extract

import (
	"regexp"
	"strings"
)

// Extraction heuristics are ordered rule tables evaluated first-match-wins.
// New site quirks get new rows, not new control flow. All of this is
// best-effort attribution, not authoritative.

var artistPatterns = []*regexp.Regexp{
	regexp.MustCompile(`por\s+([A-ZÁÉÍÓÚÑ][a-záéíóúñü]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñü]+)*)`),
	regexp.MustCompile(`de\s+([A-ZÁÉÍÓÚÑ][a-záéíóúñü]+(?:\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñü]+)*)`),
	regexp.MustCompile(`([A-ZÁÉÍÓÚÑ][a-záéíóúñü]+,\s+[A-ZÁÉÍÓÚÑ][a-záéíóúñü]+)`),
	regexp.MustCompile(`([A-ZÁÉÍÓÚÑ][A-ZÁÉÍÓÚÑ\s]+)\s*\(`),
}

// Generic catalog words that the capitalized-name patterns pick up.
var artistDenylist = map[string]struct{}{
	"obra":   {},
	"pieza":  {},
	"sin":    {},
	"título": {},
}

// ArtistFromText pulls an artist name out of title/description text.
// Empty when no pattern yields a plausible name.
func ArtistFromText(text string) string {
	for _, pattern := range artistPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		name := strings.TrimSpace(m[1])
		if len([]rune(name)) <= 3 {
			continue
		}
		if _, skip := artistDenylist[strings.ToLower(name)]; skip {
			continue
		}

		return name
	}

	return ""
}

var categoryRules = []struct{ keyword, label string }{
	{"pintura", "Pintura"},
	{"grabado", "Grabado"},
	{"escultura", "Escultura"},
	{"fotografía", "Fotografía"},
	{"dibujo", "Dibujo"},
	{"cerámica", "Cerámica"},
}

// CategoryFromText spots category keywords in the lot's full text.
func CategoryFromText(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.label
		}
	}

	return ""
}

var mediumRules = []struct{ keyword, label string }{
	{"óleo", "Óleo"},
	{"acuarela", "Acuarela"},
	{"gouache", "Gouache"},
	{"tinta", "Tinta"},
	{"lápiz", "Lápiz"},
	{"carboncillo", "Carboncillo"},
	{"mixta", "Mixta"},
	{"collage", "Collage"},
}

// MediumFromText spots the technique in the lot's full text.
func MediumFromText(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range mediumRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.label
		}
	}

	return ""
}

var dimensionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+\s*x\s*\d+(?:\s*x\s*\d+)?)\s*cm`),
	regexp.MustCompile(`(\d+\s*×\s*\d+(?:\s*×\s*\d+)?)\s*cm`),
	regexp.MustCompile(`(?i)dimensiones?:\s*([^,\n]+)`),
}

// DimensionsFromText extracts a dimensions string like "120 x 80".
func DimensionsFromText(text string) string {
	for _, pattern := range dimensionPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	return ""
}
