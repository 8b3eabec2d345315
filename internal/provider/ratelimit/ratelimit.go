package ratelimit

import (
	"context"
	"sync"
	"time"

	"stockmcp/internal/provider"
)

// Limited wraps a Source and gates every upstream call using a token bucket.
// All four operations draw from the same bucket since they hit the same
// upstream host.
type Limited struct {
	S  provider.Source
	TB *TokenBucket
}

func (l *Limited) gate(ctx context.Context) error {
	if l.TB == nil {
		return nil
	}
	return l.TB.wait(ctx)
}

func (l *Limited) RecentBars(ctx context.Context, symbol string, window provider.Period) ([]provider.Bar, error) {
	if err := l.gate(ctx); err != nil {
		return nil, err
	}
	return l.S.RecentBars(ctx, symbol, window)
}

func (l *Limited) Snapshot(ctx context.Context, symbol string) (provider.Snapshot, error) {
	if err := l.gate(ctx); err != nil {
		return provider.Snapshot{}, err
	}
	return l.S.Snapshot(ctx, symbol)
}

func (l *Limited) History(ctx context.Context, symbol string, period provider.Period) ([]provider.Bar, error) {
	if err := l.gate(ctx); err != nil {
		return nil, err
	}
	return l.S.History(ctx, symbol, period)
}

func (l *Limited) Search(ctx context.Context, query string) ([]provider.Match, error) {
	if err := l.gate(ctx); err != nil {
		return nil, err
	}
	return l.S.Search(ctx, query)
}

// MinInterval wraps a Source and enforces a minimum time between upstream
// calls. Concurrent calls wait until the interval has elapsed since the last
// call, or return early if the context is canceled.
type MinInterval struct {
	S        provider.Source
	Interval time.Duration
	mu       sync.Mutex
	last     time.Time
}

func (m *MinInterval) gate(ctx context.Context) error {
	if m.Interval <= 0 {
		return nil
	}
	// simple gate: ensure at least Interval since last
	m.mu.Lock()
	wait := time.Until(m.last.Add(m.Interval))
	m.mu.Unlock()
	if wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

func (m *MinInterval) mark() {
	if m.Interval <= 0 {
		return
	}
	m.mu.Lock()
	m.last = time.Now()
	m.mu.Unlock()
}

func (m *MinInterval) RecentBars(ctx context.Context, symbol string, window provider.Period) ([]provider.Bar, error) {
	if err := m.gate(ctx); err != nil {
		return nil, err
	}
	defer m.mark()
	return m.S.RecentBars(ctx, symbol, window)
}

func (m *MinInterval) Snapshot(ctx context.Context, symbol string) (provider.Snapshot, error) {
	if err := m.gate(ctx); err != nil {
		return provider.Snapshot{}, err
	}
	defer m.mark()
	return m.S.Snapshot(ctx, symbol)
}

func (m *MinInterval) History(ctx context.Context, symbol string, period provider.Period) ([]provider.Bar, error) {
	if err := m.gate(ctx); err != nil {
		return nil, err
	}
	defer m.mark()
	return m.S.History(ctx, symbol, period)
}

func (m *MinInterval) Search(ctx context.Context, query string) ([]provider.Match, error) {
	if err := m.gate(ctx); err != nil {
		return nil, err
	}
	defer m.mark()
	return m.S.Search(ctx, query)
}
