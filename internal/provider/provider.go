package provider

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks any upstream failure (network error, timeout,
// malformed response). Callers check it with errors.Is; the facade converts
// it into the operation's documented fallback value.
var ErrUnavailable = errors.New("market data provider unavailable")

// Bar is a single dated price observation.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Snapshot is a point-in-time descriptive blob about a symbol.
// Fields are pointers: a missing upstream key is nil, never zero.
type Snapshot struct {
	RegularMarketPrice *float64
	PreviousClose      *float64
	Currency           *string
	ShortName          *string
	MarketState        *string
}

// Match is one candidate from a fuzzy symbol search, in provider rank order.
type Match struct {
	Symbol    string
	ShortName string
	Exchange  string
	QuoteType string
	Score     *float64
}

// Period is a named historical window understood by the upstream provider.
type Period string

const (
	Period1D  Period = "1d"
	Period5D  Period = "5d"
	Period1Mo Period = "1mo"
	Period3Mo Period = "3mo"
	Period6Mo Period = "6mo"
	Period1Y  Period = "1y"
	Period2Y  Period = "2y"
	Period5Y  Period = "5y"
	Period10Y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

// Periods lists every window the upstream provider recognizes.
func Periods() []Period {
	return []Period{
		Period1D, Period5D, Period1Mo, Period3Mo, Period6Mo,
		Period1Y, Period2Y, Period5Y, Period10Y, PeriodYTD, PeriodMax,
	}
}

// Source is the single integration point with the external market-data
// provider. Implementations are stateless pass-throughs: no retries, no
// caching. An empty result is empty, not an error; genuine upstream
// failures wrap ErrUnavailable.
//
//go:generate mockgen -package=facade_test -destination=../facade/mock_source_test.go -source=provider.go Source
type Source interface {
	// RecentBars returns a short trailing window of bars for symbol.
	// Empty when the market is closed, the symbol is delisted, or the
	// provider has nothing recent.
	RecentBars(ctx context.Context, symbol string, window Period) ([]Bar, error)

	// Snapshot returns the provider's descriptive snapshot for symbol.
	// Absent fields are nil in the result.
	Snapshot(ctx context.Context, symbol string) (Snapshot, error)

	// History returns bars over the named period, chronological ascending.
	History(ctx context.Context, symbol string, period Period) ([]Bar, error)

	// Search returns fuzzy matches for free text, ranked by the provider.
	// Malformed candidates are skipped, not surfaced.
	Search(ctx context.Context, query string) ([]Match, error)
}
