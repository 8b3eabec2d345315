package facade

import (
	"strings"

	"stockmcp/internal/provider"
)

// periodAliases maps lower-cased, space/hyphen-stripped spellings to the
// provider's window names.
var periodAliases = map[string]provider.Period{
	"1d":         provider.Period1D,
	"1day":       provider.Period1D,
	"1days":      provider.Period1D,
	"5d":         provider.Period5D,
	"5day":       provider.Period5D,
	"5days":      provider.Period5D,
	"1mo":        provider.Period1Mo,
	"1month":     provider.Period1Mo,
	"1months":    provider.Period1Mo,
	"3mo":        provider.Period3Mo,
	"3month":     provider.Period3Mo,
	"3months":    provider.Period3Mo,
	"6mo":        provider.Period6Mo,
	"6month":     provider.Period6Mo,
	"6months":    provider.Period6Mo,
	"1y":         provider.Period1Y,
	"1yr":        provider.Period1Y,
	"1year":      provider.Period1Y,
	"1years":     provider.Period1Y,
	"2y":         provider.Period2Y,
	"2yr":        provider.Period2Y,
	"2year":      provider.Period2Y,
	"2years":     provider.Period2Y,
	"5y":         provider.Period5Y,
	"5yr":        provider.Period5Y,
	"5year":      provider.Period5Y,
	"5years":     provider.Period5Y,
	"10y":        provider.Period10Y,
	"10yr":       provider.Period10Y,
	"10year":     provider.Period10Y,
	"10years":    provider.Period10Y,
	"ytd":        provider.PeriodYTD,
	"yeartodate": provider.PeriodYTD,
	"max":        provider.PeriodMax,
	"all":        provider.PeriodMax,
}

// NormalizePeriod resolves free-form period input ("1mo", "1 month", "YTD")
// to a recognized window. ok is false for empty or unrecognized input; the
// caller substitutes its default rather than failing.
func NormalizePeriod(s string) (provider.Period, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "-", "")
	if key == "" {
		return "", false
	}
	p, ok := periodAliases[key]
	return p, ok
}
