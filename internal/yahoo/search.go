package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
)

// SearchQuote is one candidate from the search API. Only Symbol is
// guaranteed; everything else is best-effort.
type SearchQuote struct {
	Symbol    string
	ShortName string
	Exchange  string
	QuoteType string
	Score     *float64
}

// Search retrieves fuzzy symbol matches for free text, in the provider's
// rank order. Candidates without a usable symbol field are skipped rather
// than failing the whole call.
func (c *Client) Search(ctx context.Context, q string, opts ...ClientOption) ([]SearchQuote, error) {
	var override = c.override(opts)

	query := maps.Clone(override.query)
	query.Add("q", q)

	url := fmt.Sprintf("%s/v1/finance/search?%s", override.baseURL, query.Encode())
	body, err := override.get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var resp struct {
		Quotes []map[string]any `json:"quotes"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	out := make([]SearchQuote, 0, len(resp.Quotes))
	for _, raw := range resp.Quotes {
		sym, err := parseNullableValue[string](raw, "symbol")
		if err != nil || sym == nil || *sym == "" {
			// Candidate without a symbol identifier is useless; skip it.
			continue
		}
		sq := SearchQuote{Symbol: *sym}
		if v, err := parseNullableValue[string](raw, "shortname"); err == nil && v != nil {
			sq.ShortName = *v
		}
		if v, err := parseNullableValue[string](raw, "exchange"); err == nil && v != nil {
			sq.Exchange = *v
		}
		if v, err := parseNullableValue[string](raw, "quoteType"); err == nil && v != nil {
			sq.QuoteType = *v
		}
		if v, err := parseNullableValue[float64](raw, "score"); err == nil && v != nil {
			sq.Score = v
		}
		out = append(out, sq)
	}
	return out, nil
}
