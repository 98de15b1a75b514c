package blog

import (
	"fmt"
	"strings"
	"time"
)

// dateFormats is the ordered list of accepted publish-date layouts. The
// first layout that parses wins.
var dateFormats = []string{
	"2-1-2006",
	"2/1/2006",
	"2 January 2006",
	"2 Jan 2006",
	"2 January, 2006",
	"2 Jan, 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a publish date in any supported layout.
func ParseDate(s string) (time.Time, error) {
	s = normalizeMonths(strings.TrimSpace(s))
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// normalizeMonths folds the non-standard "Sept" abbreviation to the standard
// three-letter form. Only standalone tokens are touched, so "September"
// passes through intact.
func normalizeMonths(s string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		bare := strings.TrimSuffix(f, ",")
		if bare == "Sept" {
			fields[i] = "Sep" + f[len(bare):]
		}
	}
	return strings.Join(fields, " ")
}
