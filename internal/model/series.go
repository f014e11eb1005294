package model

import "time"

// DateLayout is the canonical day-granularity date format used everywhere:
// the local cache, the worksheet's date column, and the sync cursor.
// ISO dates compare lexicographically in chronological order.
const DateLayout = "2006-01-02"

// DataPoint is one day of the RHODL Ratio series.
type DataPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD, UTC
	Value float64 `json:"value"`
}

// Series is an ordered sequence of points, ascending by date, unique dates.
type Series []DataPoint

// Latest returns the date of the last point, or "" for an empty series.
func (s Series) Latest() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1].Date
}

// ParseDate parses a canonical YYYY-MM-DD date.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}
