// Package series holds pure functions over the RHODL series: normalization,
// cutoff filtering, and high-water-mark slicing. No I/O, no failure modes.
package series

import (
	"sort"

	"rhodlsync/internal/model"
)

// DefaultCutoff is the earliest date kept by the filter unless configured
// otherwise. RHODL values before 2012 predate meaningful on-chain volume.
const DefaultCutoff = "2012-01-01"

// Normalize sorts a series ascending by date and drops duplicate dates,
// keeping the last occurrence. The input is not modified.
func Normalize(s model.Series) model.Series {
	out := make(model.Series, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })

	dedup := out[:0]
	for i, p := range out {
		if i+1 < len(out) && out[i+1].Date == p.Date {
			continue
		}
		dedup = append(dedup, p)
	}
	return dedup
}

// FromCutoff drops every point whose date is strictly earlier than cutoff.
// Ordering is preserved; idempotent.
func FromCutoff(s model.Series, cutoff string) model.Series {
	i := sort.Search(len(s), func(i int) bool { return s[i].Date >= cutoff })
	return s[i:]
}

// NewerThan returns the suffix of points strictly newer than date.
// An empty date returns the whole series.
func NewerThan(s model.Series, date string) model.Series {
	i := sort.Search(len(s), func(i int) bool { return s[i].Date > date })
	return s[i:]
}
