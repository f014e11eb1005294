package collector

import (
	"fmt"

	"rhodlsync/internal/model"
)

// Fetcher defines the interface for fetching the RHODL Ratio series.
type Fetcher interface {
	FetchSeries() (model.Series, error)
	Name() string
}

// FetchError reports a failed outbound request: network failure, a non-2xx
// response, an undecodable body, or an API-level error code.
type FetchError struct {
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch: %s: %v", e.Reason, e.Err)
	}
	return "fetch: " + e.Reason
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a structurally valid payload containing a record that
// is missing its timestamp or ratio field.
type ParseError struct {
	Index  int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: record %d: %s", e.Index, e.Reason)
}
