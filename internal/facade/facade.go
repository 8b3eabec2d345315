package facade

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"stockmcp/internal/provider"
)

// PriceUnavailable is the documented sentinel for "no price could be
// determined". It is part of the host-facing contract; internally it is
// only ever compared against, never fed into arithmetic.
const PriceUnavailable = -1.0

// DefaultSearchLimit caps list_stock_symbols results when the caller
// passes no usable limit.
const DefaultSearchLimit = 10

// DefaultPeriod substitutes for an empty or unrecognized history period.
const DefaultPeriod = provider.Period1Mo

// Facade turns the noisy provider source into a small set of total
// operations: every one of them returns a value for any input, converting
// upstream failures into the documented fallback instead of propagating.
type Facade struct {
	src           provider.Source
	log           *zap.Logger
	defaultPeriod provider.Period
	searchLimit   int
}

// Option is a configuration option for the Facade.
type Option func(*Facade)

// WithDefaultPeriod overrides the period substituted for unrecognized input.
func WithDefaultPeriod(p provider.Period) Option {
	return func(f *Facade) {
		f.defaultPeriod = p
	}
}

// WithSearchLimit overrides the default symbol search limit.
func WithSearchLimit(n int) Option {
	return func(f *Facade) {
		if n > 0 {
			f.searchLimit = n
		}
	}
}

// New creates a Facade over src. A nil logger is replaced with a no-op one
// so logging never becomes a reason for an operation to fail.
func New(src provider.Source, log *zap.Logger, options ...Option) *Facade {
	if log == nil {
		log = zap.NewNop()
	}
	f := &Facade{
		src:           src,
		log:           log,
		defaultPeriod: DefaultPeriod,
		searchLimit:   DefaultSearchLimit,
	}
	for _, option := range options {
		option(f)
	}
	return f
}

// GetStockPrice returns the most recent price for symbol: the last close
// from a one-day bar window, else the snapshot's regular market price, else
// PriceUnavailable. It never returns an error to the caller.
func (f *Facade) GetStockPrice(ctx context.Context, symbol string) float64 {
	bars, err := f.src.RecentBars(ctx, symbol, provider.Period1D)
	if err != nil {
		f.log.Warn("recent bars unavailable, falling back to snapshot",
			zap.String("op", "get_stock_price"),
			zap.String("symbol", symbol),
			zap.Error(err))
	}
	if len(bars) > 0 {
		if price := bars[len(bars)-1].Close; usablePrice(price) {
			return price
		}
	}

	snap, err := f.src.Snapshot(ctx, symbol)
	if err != nil {
		f.log.Warn("price unavailable",
			zap.String("op", "get_stock_price"),
			zap.String("symbol", symbol),
			zap.Error(err))
		return PriceUnavailable
	}
	if snap.RegularMarketPrice != nil && usablePrice(*snap.RegularMarketPrice) {
		return *snap.RegularMarketPrice
	}

	f.log.Warn("price unavailable",
		zap.String("op", "get_stock_price"),
		zap.String("symbol", symbol),
		zap.String("reason", "no recent close and no regular market price in snapshot"))
	return PriceUnavailable
}

// StockResource renders the current price of symbol as a one-line message,
// or an error-wording message when the price cannot be determined.
func (f *Facade) StockResource(ctx context.Context, symbol string) string {
	price := f.GetStockPrice(ctx, symbol)
	if price == PriceUnavailable {
		f.log.Error("could not retrieve price",
			zap.String("op", "stock_resource"),
			zap.String("symbol", symbol))
		return fmt.Sprintf("Error: Could not retrieve price for symbol '%s'.", symbol)
	}
	return fmt.Sprintf("The current price of '%s' is $%.2f.", symbol, price)
}

// CompareStocks compares the current prices of two symbols and renders a
// one-paragraph summary. A symbol whose price resolves to the sentinel is
// reported as unavailable instead of being compared as -1.
func (f *Facade) CompareStocks(ctx context.Context, symbol1, symbol2 string) string {
	price1 := f.GetStockPrice(ctx, symbol1)
	price2 := f.GetStockPrice(ctx, symbol2)

	ok1 := price1 != PriceUnavailable
	ok2 := price2 != PriceUnavailable
	switch {
	case !ok1 && !ok2:
		return fmt.Sprintf("Comparison unavailable: could not retrieve data for '%s' or '%s'.", symbol1, symbol2)
	case !ok1:
		return fmt.Sprintf("Comparison unavailable for '%s': could not retrieve its price.", symbol1)
	case !ok2:
		return fmt.Sprintf("Comparison unavailable for '%s': could not retrieve its price.", symbol2)
	}

	diff := math.Abs(price1 - price2)
	switch {
	case price1 > price2:
		return fmt.Sprintf("%s ($%.2f) is higher than %s ($%.2f) by $%.2f.", symbol1, price1, symbol2, price2, diff)
	case price1 < price2:
		return fmt.Sprintf("%s ($%.2f) is lower than %s ($%.2f) by $%.2f.", symbol1, price1, symbol2, price2, diff)
	default:
		return fmt.Sprintf("Both %s and %s have the same price ($%.2f).", symbol1, symbol2, price1)
	}
}

// ListStockSymbols returns up to limit symbols matching query, in the
// provider's rank order with duplicates removed before truncation. A failed
// or empty search yields an empty slice, never nil and never an error.
func (f *Facade) ListStockSymbols(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		f.log.Warn("non-positive limit, using default",
			zap.String("op", "list_stock_symbols"),
			zap.String("query", query),
			zap.Int("limit", limit))
		limit = f.searchLimit
	}

	matches, err := f.src.Search(ctx, query)
	if err != nil {
		f.log.Warn("symbol search unavailable",
			zap.String("op", "list_stock_symbols"),
			zap.String("query", query),
			zap.Error(err))
		return []string{}
	}

	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.Symbol == "" {
			continue
		}
		if _, dup := seen[m.Symbol]; dup {
			continue
		}
		seen[m.Symbol] = struct{}{}
		out = append(out, m.Symbol)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// usablePrice filters the values that may not leak out as a real quote.
func usablePrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}
