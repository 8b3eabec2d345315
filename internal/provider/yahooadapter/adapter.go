package yahooadapter

import (
	"context"
	"fmt"

	"stockmcp/internal/provider"
	"stockmcp/internal/yahoo"
)

type Config struct {
	Name string // display name, default: Yahoo
}

// Adapter exposes the Yahoo Finance client as a provider.Source. It is a
// stateless pass-through: every upstream failure comes back wrapping
// provider.ErrUnavailable, and "no data" is an empty result, not an error.
type Adapter struct {
	cfg    Config
	client *yahoo.Client
}

func New(cfg Config, client *yahoo.Client) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	return &Adapter{cfg: cfg, client: client}
}

func (a *Adapter) Name() string { return a.cfg.Name }

func (a *Adapter) RecentBars(ctx context.Context, symbol string, window provider.Period) ([]provider.Bar, error) {
	raw, err := a.client.GetChart(ctx, symbol, string(window))
	if err != nil {
		return nil, unavailable("chart", err)
	}
	return toBars(raw), nil
}

func (a *Adapter) Snapshot(ctx context.Context, symbol string) (provider.Snapshot, error) {
	q, err := a.client.GetQuote(ctx, symbol)
	if err != nil {
		return provider.Snapshot{}, unavailable("quote", err)
	}
	return provider.Snapshot{
		RegularMarketPrice: q.RegularMarketPrice,
		PreviousClose:      q.PreviousClose,
		Currency:           q.Currency,
		ShortName:          q.ShortName,
		MarketState:        q.MarketState,
	}, nil
}

func (a *Adapter) History(ctx context.Context, symbol string, period provider.Period) ([]provider.Bar, error) {
	raw, err := a.client.GetChart(ctx, symbol, string(period))
	if err != nil {
		return nil, unavailable("chart", err)
	}
	return toBars(raw), nil
}

func (a *Adapter) Search(ctx context.Context, query string) ([]provider.Match, error) {
	raw, err := a.client.Search(ctx, query)
	if err != nil {
		return nil, unavailable("search", err)
	}
	out := make([]provider.Match, 0, len(raw))
	for _, sq := range raw {
		out = append(out, provider.Match{
			Symbol:    sq.Symbol,
			ShortName: sq.ShortName,
			Exchange:  sq.Exchange,
			QuoteType: sq.QuoteType,
			Score:     sq.Score,
		})
	}
	return out, nil
}

// toBars drops rows the provider padded with a null close; what remains
// keeps Yahoo's chronological ascending order.
func toBars(raw []yahoo.ChartBar) []provider.Bar {
	bars := make([]provider.Bar, 0, len(raw))
	for _, cb := range raw {
		if cb.Close == nil {
			continue
		}
		bar := provider.Bar{Date: cb.Timestamp, Close: *cb.Close}
		if cb.Open != nil {
			bar.Open = *cb.Open
		}
		if cb.High != nil {
			bar.High = *cb.High
		}
		if cb.Low != nil {
			bar.Low = *cb.Low
		}
		if cb.Volume != nil {
			bar.Volume = *cb.Volume
		}
		bars = append(bars, bar)
	}
	return bars
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: yahoo %s: %v", provider.ErrUnavailable, op, err)
}
