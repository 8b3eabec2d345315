package facade

import (
	"fmt"
	"strings"
)

// ToolDescriptor is a static description of one exposed operation. It
// depends on nothing at runtime, so list_tools can never fail.
type ToolDescriptor struct {
	Name      string
	Signature string
	Purpose   string
}

// Descriptors returns the static catalog of exposed operations.
func Descriptors() []ToolDescriptor {
	return []ToolDescriptor{
		{
			Name:      "get_stock_price",
			Signature: "(symbol: string) -> number",
			Purpose:   "Fetches the current stock price for the given symbol, or -1.0 when no price can be determined.",
		},
		{
			Name:      "stock_resource",
			Signature: "(symbol: string) -> string",
			Purpose:   "Retrieves the current stock price for a given symbol as a formatted message.",
		},
		{
			Name:      "get_stock_history",
			Signature: "(symbol: string, period: string = \"1mo\") -> string",
			Purpose:   "Fetches historical stock data for a given symbol and period in CSV format.",
		},
		{
			Name:      "compare_stocks",
			Signature: "(symbol1: string, symbol2: string) -> string",
			Purpose:   "Compares the current stock prices of two given stock symbols.",
		},
		{
			Name:      "list_stock_symbols",
			Signature: "(query: string, limit: number = 10) -> string[]",
			Purpose:   "Searches for ticker symbols matching a free-text query.",
		},
		{
			Name:      "list_tools",
			Signature: "() -> string",
			Purpose:   "Lists all available tools in this server (this tool).",
		},
	}
}

// ListTools renders the static tool catalog as human-readable text. It
// performs no provider call and cannot fail.
func (f *Facade) ListTools() string {
	var b strings.Builder
	b.WriteString("Available tools in Stock Price Server:\n")
	for i, d := range Descriptors() {
		fmt.Fprintf(&b, "\n%d. %s%s\n   %s\n", i+1, d.Name, d.Signature, d.Purpose)
	}
	return b.String()
}
