package collector

import "rhodlsync/internal/model"

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series model.Series
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries() (model.Series, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series, nil
}
