package main

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"stockmcp/internal/facade"
)

// registerTools wires the facade operations up as MCP tools. Argument
// presence is the only validation done here; everything beyond that is the
// facade's fallback policy.
func registerTools(s *server.MCPServer, f *facade.Facade) {
	s.AddTool(mcp.NewTool("get_stock_price",
		mcp.WithDescription("Fetches the current stock price for the given symbol. Returns -1.0 when no price can be determined."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Ticker symbol, e.g. AAPL")),
	), priceHandler(f))

	s.AddTool(mcp.NewTool("get_stock_history",
		mcp.WithDescription("Fetches historical stock data for a given symbol and period in CSV format."),
		mcp.WithString("symbol", mcp.Required(), mcp.Description("Ticker symbol, e.g. AAPL")),
		mcp.WithString("period", mcp.Description("Named period: 1d, 5d, 1mo, 3mo, 6mo, 1y, 2y, 5y, 10y, ytd or max"), mcp.DefaultString("1mo")),
	), historyHandler(f))

	s.AddTool(mcp.NewTool("compare_stocks",
		mcp.WithDescription("Compares the current stock prices of two given stock symbols."),
		mcp.WithString("symbol1", mcp.Required(), mcp.Description("First ticker symbol")),
		mcp.WithString("symbol2", mcp.Required(), mcp.Description("Second ticker symbol")),
	), compareHandler(f))

	s.AddTool(mcp.NewTool("list_stock_symbols",
		mcp.WithDescription("Searches for ticker symbols matching a free-text query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Free-text search, e.g. a company name")),
		mcp.WithNumber("limit", mcp.DefaultNumber(facade.DefaultSearchLimit), mcp.Description("Maximum number of symbols to return")),
	), searchHandler(f))

	s.AddTool(mcp.NewTool("list_tools",
		mcp.WithDescription("Lists all available tools in this server."),
	), listToolsHandler(f))
}

// registerResources exposes the formatted per-symbol quote as a resource.
func registerResources(s *server.MCPServer, f *facade.Facade) {
	tmpl := mcp.NewResourceTemplate("stock://{symbol}", "Current stock price",
		mcp.WithTemplateDescription("Formatted current price for a ticker symbol"),
		mcp.WithTemplateMIMEType("text/plain"),
	)
	s.AddResourceTemplate(tmpl, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		symbol := strings.TrimPrefix(req.Params.URI, "stock://")
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     f.StockResource(ctx, symbol),
			},
		}, nil
	})
}

func priceHandler(f *facade.Facade) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := req.RequireString("symbol")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		price := f.GetStockPrice(ctx, symbol)
		return mcp.NewToolResultText(strconv.FormatFloat(price, 'f', -1, 64)), nil
	}
}

func historyHandler(f *facade.Facade) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := req.RequireString("symbol")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		period := req.GetString("period", "")
		return mcp.NewToolResultText(f.GetStockHistory(ctx, symbol, period)), nil
	}
}

func compareHandler(f *facade.Facade) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol1, err := req.RequireString("symbol1")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		symbol2, err := req.RequireString("symbol2")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(f.CompareStocks(ctx, symbol1, symbol2)), nil
	}
}

func searchHandler(f *facade.Facade) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := req.GetInt("limit", facade.DefaultSearchLimit)
		symbols := f.ListStockSymbols(ctx, query, limit)
		b, err := json.Marshal(symbols)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}

func listToolsHandler(f *facade.Facade) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(f.ListTools()), nil
	}
}
