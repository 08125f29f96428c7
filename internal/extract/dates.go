package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var dateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
	"01/02/2006",
	"January 2, 2006",
	"2 January 2006",
}

// ParseDate tries the preferred layout first, then the fixed fallback
// list, then a free-form parse. Nil means "date unknown", never an error:
// callers must not substitute today or the epoch.
func ParseDate(text string, preferred string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	layouts := dateLayouts
	if preferred != "" {
		layouts = append([]string{preferred}, dateLayouts...)
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return &t
		}
	}

	if t, err := dateparse.ParseAny(text); err == nil {
		return &t
	}

	return nil
}

var spanishMonths = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4,
	"mayo": 5, "junio": 6, "julio": 7, "agosto": 8,
	"septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
}

type textDatePattern struct {
	regex *regexp.Regexp
	build func(groups []string) *time.Time
}

// Scanned in order: Spanish long form, slash dates, ISO dates.
var textDatePatterns = []textDatePattern{
	{
		regex: regexp.MustCompile(`(\d{1,2})\s+de\s+([a-záéíóúñ]+|\d{1,2})\s+de\s+(\d{4})\s+(\d{1,2}):(\d{2})`),
		build: func(g []string) *time.Time {
			month, ok := spanishMonths[g[2]]
			if !ok {
				n, err := strconv.Atoi(g[2])
				if err != nil {
					return nil
				}
				month = n
			}
			return makeDate(atoi(g[3]), month, atoi(g[1]), atoi(g[4]), atoi(g[5]))
		},
	},
	{
		regex: regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})\s+(\d{1,2}):(\d{2})`),
		build: func(g []string) *time.Time {
			return makeDate(atoi(g[3]), atoi(g[2]), atoi(g[1]), atoi(g[4]), atoi(g[5]))
		},
	},
	{
		regex: regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})\s+(\d{1,2}):(\d{2})`),
		build: func(g []string) *time.Time {
			return makeDate(atoi(g[1]), atoi(g[2]), atoi(g[3]), atoi(g[4]), atoi(g[5]))
		},
	},
}

// DatesFromText scans free text for datetimes. The first match becomes the
// start date and the next distinct match the end date, in document order.
// Known-weak heuristic: an unrelated earlier date mention wins; no
// chronological sorting is applied on purpose.
func DatesFromText(text string) (start, end *time.Time) {
	lower := strings.ToLower(text)

	for _, pattern := range textDatePatterns {
		for _, m := range pattern.regex.FindAllStringSubmatch(lower, -1) {
			t := pattern.build(m)
			if t == nil {
				continue
			}

			if start == nil {
				start = t
				continue
			}
			if end == nil && !start.Equal(*t) {
				end = t
			}
			if end != nil {
				return start, end
			}
		}
	}

	return start, end
}

// makeDate validates through the layout parser, rejecting impossible
// component combinations like month 13.
func makeDate(year, month, day, hour, minute int) *time.Time {
	return ParseDate(fmt.Sprintf("%04d-%02d-%02d %02d:%02d", year, month, day, hour, minute), "")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
