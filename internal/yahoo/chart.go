package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"time"
)

// ChartBar is one dated observation from the chart API. Price and volume
// fields are pointers because Yahoo pads its arrays with nulls for
// timestamps it has no trade data for.
type ChartBar struct {
	Timestamp time.Time
	Open      *float64
	High      *float64
	Low       *float64
	Close     *float64
	Volume    *int64
}

// chartResponse mirrors the /v8/finance/chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// GetChart retrieves daily bars for symbol over a named range (e.g. "1mo").
// Bars come back in Yahoo's order, which is chronological ascending. A
// symbol the provider knows but has no bars for yields an empty slice.
func (c *Client) GetChart(ctx context.Context, symbol, barRange string, opts ...ClientOption) ([]ChartBar, error) {
	var override = c.override(opts)

	query := maps.Clone(override.query)
	query.Add("range", barRange)
	query.Add("interval", "1d")

	url := fmt.Sprintf("%s/v8/finance/chart/%s?%s", override.baseURL, symbol, query.Encode())
	body, err := override.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp chartResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding chart response: %w", err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart api error: %s: %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return []ChartBar{}, nil
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return []ChartBar{}, nil
	}
	quote := result.Indicators.Quote[0]

	bars := make([]ChartBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bar := ChartBar{Timestamp: time.Unix(ts, 0).UTC()}
		bar.Open = at(quote.Open, i)
		bar.High = at(quote.High, i)
		bar.Low = at(quote.Low, i)
		bar.Close = at(quote.Close, i)
		bar.Volume = at(quote.Volume, i)
		bars = append(bars, bar)
	}
	return bars, nil
}

// at indexes a padded indicator array; short arrays read as absent.
func at[T any](xs []*T, i int) *T {
	if i >= len(xs) {
		return nil
	}
	return xs[i]
}

// apiError is the error object Yahoo embeds in otherwise-200 responses.
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// override clones the client with per-call options applied.
func (c *Client) override(opts []ClientOption) *Client {
	var override = &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      c.query,
	}
	for _, opt := range opts {
		opt(override)
	}
	return override
}

// get performs a GET and maps non-200 statuses to errors. The caller owns
// the returned body.
func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}

	switch res.StatusCode {
	case http.StatusOK:
		return res.Body, nil

	case http.StatusNotFound:
		res.Body.Close()
		return nil, fmt.Errorf("not found: %s", url)

	case http.StatusTooManyRequests:
		res.Body.Close()
		return nil, fmt.Errorf("rate limited")

	default:
		res.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", res.StatusCode)
	}
}
