package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var currencySymbolReplacer = strings.NewReplacer("$", "", "€", "", "£", "")

// ParsePrice parses a single price out of text like "$ 1.250.000".
// Thousands separators are stripped; when several decimal points remain,
// only the rightmost one is kept. Returns false on non-numeric residue.
func ParsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	clean := currencySymbolReplacer.Replace(text)
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	if n := strings.Count(clean, "."); n > 1 {
		clean = strings.Replace(clean, ".", "", n-1)
	}

	value, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// PriceInfo is the outcome of scanning a lot's price text.
type PriceInfo struct {
	Min   *float64
	Max   *float64
	Final *float64
	Sold  bool
}

var (
	priceRangeRegex  = regexp.MustCompile(`(\d+)\s*[-–]\s*(\d+)`)
	priceSingleRegex = regexp.MustCompile(`\d+`)
	priceTextCleaner = strings.NewReplacer("$", "", ".", "", ",", "")
)

// ParsePriceRange recognizes "N - M" estimate ranges (ASCII hyphen or
// en-dash) before falling back to a single price with min == max.
// Sold markers ("vendido", "sold") set Sold and Final.
func ParsePriceRange(text string) PriceInfo {
	var info PriceInfo

	if text == "" {
		return info
	}

	clean := priceTextCleaner.Replace(text)

	if m := priceRangeRegex.FindStringSubmatch(clean); m != nil {
		minPrice, _ := strconv.ParseFloat(m[1], 64)
		maxPrice, _ := strconv.ParseFloat(m[2], 64)
		info.Min = &minPrice
		info.Max = &maxPrice
	} else if m := priceSingleRegex.FindString(clean); m != "" {
		price, _ := strconv.ParseFloat(m, 64)
		info.Min = &price
		info.Max = &price
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "vendido") || strings.Contains(lower, "sold") {
		info.Sold = true
		info.Final = info.Max
	}

	return info
}
