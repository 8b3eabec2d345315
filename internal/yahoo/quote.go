package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
)

// QuoteSnapshot is the subset of the quote API payload the adapter cares
// about. Every field is optional upstream.
type QuoteSnapshot struct {
	Symbol             *string
	RegularMarketPrice *float64
	PreviousClose      *float64
	Currency           *string
	ShortName          *string
	MarketState        *string
}

// GetQuote retrieves the point-in-time quote snapshot for symbol. A symbol
// the provider does not know yields a zero-valued snapshot, not an error.
func (c *Client) GetQuote(ctx context.Context, symbol string, opts ...ClientOption) (QuoteSnapshot, error) {
	var override = c.override(opts)

	query := maps.Clone(override.query)
	query.Add("symbols", symbol)

	url := fmt.Sprintf("%s/v7/finance/quote?%s", override.baseURL, query.Encode())
	body, err := override.get(ctx, url)
	if err != nil {
		return QuoteSnapshot{}, err
	}
	defer body.Close()

	// The payload is loosely typed; pull fields out one by one and treat
	// anything missing as absent, never as zero.
	var resp struct {
		QuoteResponse struct {
			Result []map[string]any `json:"result"`
			Error  *apiError        `json:"error"`
		} `json:"quoteResponse"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return QuoteSnapshot{}, fmt.Errorf("decoding quote response: %w", err)
	}
	if resp.QuoteResponse.Error != nil {
		return QuoteSnapshot{}, fmt.Errorf("quote api error: %s: %s", resp.QuoteResponse.Error.Code, resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return QuoteSnapshot{}, nil
	}

	raw := resp.QuoteResponse.Result[0]
	var snap QuoteSnapshot
	if snap.Symbol, err = parseNullableValue[string](raw, "symbol"); err != nil {
		return QuoteSnapshot{}, fmt.Errorf("decoding symbol: %w", err)
	}
	if snap.RegularMarketPrice, err = parseNullableValue[float64](raw, "regularMarketPrice"); err != nil {
		return QuoteSnapshot{}, fmt.Errorf("decoding regularMarketPrice: %w", err)
	}
	if snap.PreviousClose, err = parseNullableValue[float64](raw, "regularMarketPreviousClose"); err != nil {
		return QuoteSnapshot{}, fmt.Errorf("decoding regularMarketPreviousClose: %w", err)
	}
	if snap.Currency, err = parseNullableValue[string](raw, "currency"); err != nil {
		return QuoteSnapshot{}, fmt.Errorf("decoding currency: %w", err)
	}
	if snap.ShortName, err = parseNullableValue[string](raw, "shortName"); err != nil {
		return QuoteSnapshot{}, fmt.Errorf("decoding shortName: %w", err)
	}
	if snap.MarketState, err = parseNullableValue[string](raw, "marketState"); err != nil {
		return QuoteSnapshot{}, fmt.Errorf("decoding marketState: %w", err)
	}
	return snap, nil
}

// parseNullableValue is a helper function to parse a nullable value.
func parseNullableValue[T any](data map[string]any, key string) (*T, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, nil
	}
	if v, ok := v.(T); ok {
		return &v, nil
	}
	return nil, fmt.Errorf("unexpected type: %T", v)
}
