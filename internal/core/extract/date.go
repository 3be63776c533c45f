package extract

import "time"

// Day-month-year layouts are tried before ISO year-month-day; the first
// successful parse wins. Single-digit day/month values are accepted.
var dateLayouts = []string{
	"2.1.2006",
	"2/1/2006",
	"2-1-2006",
	"2006-1-2",
	"2006/1/2",
}

// NormalizeDate reformats a date string to YYYY-MM-DD. Input that matches
// none of the known layouts is returned unchanged; flagging unparseable
// dates is the validator's job, not the normalizer's.
func NormalizeDate(raw string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return raw
}
