package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"rhodlsync/internal/model"
	"rhodlsync/internal/series"
)

// DefaultBaseURL is the CoinGlass v4 API root.
const DefaultBaseURL = "https://open-api-v4.coinglass.com"

const rhodlPath = "/api/index/bitcoin-rhodl-ratio"

// CoinGlassFetcher implements Fetcher against the CoinGlass v4 REST API.
type CoinGlassFetcher struct {
	BaseURL    string
	APIKey     string
	MaxRetries int
	Client     *http.Client
}

// NewCoinGlassFetcher creates a fetcher with optional proxy support.
// maxRetries is the total number of request attempts; values below 1 mean 1.
func NewCoinGlassFetcher(baseURL, apiKey string, maxRetries int, proxyURL string) *CoinGlassFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGlassFetcher{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		MaxRetries: maxRetries,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGlassFetcher) Name() string { return "coinglass" }

// cgEnvelope is the CoinGlass response wrapper. "0" is the success code.
type cgEnvelope struct {
	Code string          `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// cgPoint uses pointers so absent fields are distinguishable from zero values.
type cgPoint struct {
	Timestamp  *int64   `json:"timestamp"` // epoch milliseconds
	RhodlRatio *float64 `json:"rhodl_ratio"`
	Price      *float64 `json:"price"`
}

// FetchSeries performs one GET against the RHODL endpoint and normalizes the
// payload into an ascending, date-deduplicated series. Transient transport
// failures are retried up to MaxRetries attempts with linear backoff; a
// malformed record is terminal.
func (f *CoinGlassFetcher) FetchSeries() (model.Series, error) {
	var lastErr error
	for attempt := 1; attempt <= f.MaxRetries; attempt++ {
		data, err := f.fetchOnce()
		if err == nil {
			return normalize(data)
		}
		lastErr = err
		if attempt < f.MaxRetries {
			backoff := time.Duration(attempt) * 1500 * time.Millisecond
			log.Printf("[WARN] coinglass fetch failed (attempt %d/%d): %v, retrying in %v",
				attempt, f.MaxRetries, err, backoff)
			time.Sleep(backoff)
		}
	}
	return nil, lastErr
}

func (f *CoinGlassFetcher) fetchOnce() ([]cgPoint, error) {
	req, err := http.NewRequest("GET", f.BaseURL+rhodlPath, nil)
	if err != nil {
		return nil, &FetchError{Reason: "build request", Err: err}
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("CG-API-KEY", f.APIKey)
	req.Header.Set("User-Agent", "rhodlsync/1.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, &FetchError{Reason: "request", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Reason: "read body", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Reason: fmt.Sprintf("status %d, body: %s", resp.StatusCode, truncate(body, 200))}
	}

	var env cgEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &FetchError{Reason: "decode response", Err: err}
	}
	if env.Code != "" && env.Code != "0" {
		return nil, &FetchError{Reason: fmt.Sprintf("api code %s: %s", env.Code, env.Msg)}
	}
	if len(env.Data) == 0 {
		return nil, &FetchError{Reason: "unexpected response shape: missing data field"}
	}

	var points []cgPoint
	if err := json.Unmarshal(env.Data, &points); err != nil {
		return nil, &FetchError{Reason: "decode data", Err: err}
	}
	return points, nil
}

// normalize maps provider records to DataPoints (epoch-ms timestamp to a UTC
// calendar date), then sorts ascending and dedups by date keeping the last
// occurrence.
func normalize(points []cgPoint) (model.Series, error) {
	out := make(model.Series, 0, len(points))
	for i, p := range points {
		if p.Timestamp == nil {
			return nil, &ParseError{Index: i, Reason: "missing timestamp field"}
		}
		if p.RhodlRatio == nil {
			return nil, &ParseError{Index: i, Reason: "missing rhodl_ratio field"}
		}
		date := time.UnixMilli(*p.Timestamp).UTC().Format(model.DateLayout)
		out = append(out, model.DataPoint{Date: date, Value: *p.RhodlRatio})
	}
	return series.Normalize(out), nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
