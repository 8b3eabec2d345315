package facade

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"stockmcp/internal/provider"
)

// historyHeader is the fixed CSV column header for history output.
const historyHeader = "date,open,high,low,close,volume"

// GetStockHistory returns the bar series for symbol over period as
// comma-separated text with a header row, one row per observation in
// chronological order. An empty or unrecognized period falls back to the
// default; an empty series or a provider failure yields an explanatory
// message, never an error.
func (f *Facade) GetStockHistory(ctx context.Context, symbol, period string) string {
	p, ok := NormalizePeriod(period)
	if !ok {
		if strings.TrimSpace(period) != "" {
			f.log.Warn("unrecognized period, using default",
				zap.String("op", "get_stock_history"),
				zap.String("symbol", symbol),
				zap.String("period", period))
		}
		p = f.defaultPeriod
	}

	bars, err := f.src.History(ctx, symbol, p)
	if err != nil {
		f.log.Warn("history unavailable",
			zap.String("op", "get_stock_history"),
			zap.String("symbol", symbol),
			zap.String("period", string(p)),
			zap.Error(err))
		return noHistoryMessage(symbol, p)
	}
	if len(bars) == 0 {
		return noHistoryMessage(symbol, p)
	}
	return formatBarsCSV(bars)
}

func noHistoryMessage(symbol string, period provider.Period) string {
	return fmt.Sprintf("No historical data found for symbol '%s' with period '%s'.", symbol, period)
}

func formatBarsCSV(bars []provider.Bar) string {
	var b strings.Builder
	b.WriteString(historyHeader)
	b.WriteByte('\n')
	for _, bar := range bars {
		b.WriteString(bar.Date.Format("2006-01-02"))
		b.WriteByte(',')
		b.WriteString(formatPrice(bar.Open))
		b.WriteByte(',')
		b.WriteString(formatPrice(bar.High))
		b.WriteByte(',')
		b.WriteString(formatPrice(bar.Low))
		b.WriteByte(',')
		b.WriteString(formatPrice(bar.Close))
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(bar.Volume, 10))
		b.WriteByte('\n')
	}
	return b.String()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
