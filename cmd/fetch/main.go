package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"stockmcp/internal/config"
	"stockmcp/internal/facade"
	"stockmcp/internal/httpx"
	"stockmcp/internal/provider/yahooadapter"
	"stockmcp/internal/yahoo"
)

// fetch invokes a single facade operation from the command line, for poking
// at the upstream provider without an MCP host attached.
func main() {
	var op string
	var symbol string
	var symbol2 string
	var period string
	var query string
	var limit int
	var timeout int
	var configPath string

	flag.StringVar(&op, "op", "price", "operation: price, quote, history, compare, search, tools")
	flag.StringVar(&symbol, "symbol", getenv("SYMBOL", "AAPL"), "ticker symbol")
	flag.StringVar(&symbol2, "symbol2", getenv("SYMBOL2", "MSFT"), "second ticker symbol (compare)")
	flag.StringVar(&period, "period", getenv("PERIOD", "1mo"), "history period")
	flag.StringVar(&query, "query", getenv("QUERY", "apple"), "symbol search query")
	flag.IntVar(&limit, "limit", getenvInt("LIMIT", 10), "symbol search limit")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if timeout != 0 {
		cfg.Server.RequestTimeoutSec = timeout
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	httpClient.UserAgent = cfg.Yahoo.UserAgent
	client := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithHTTPClient(httpClient),
	)
	f := facade.New(yahooadapter.New(yahooadapter.Config{Name: "Yahoo"}, client), logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
	defer cancel()

	switch op {
	case "price":
		fmt.Printf("%g\n", f.GetStockPrice(ctx, symbol))
	case "quote":
		fmt.Println(f.StockResource(ctx, symbol))
	case "history":
		fmt.Println(f.GetStockHistory(ctx, symbol, period))
	case "compare":
		fmt.Println(f.CompareStocks(ctx, symbol, symbol2))
	case "search":
		symbols := f.ListStockSymbols(ctx, query, limit)
		b, _ := json.MarshalIndent(symbols, "", "  ")
		fmt.Println(string(b))
	case "tools":
		fmt.Println(f.ListTools())
	default:
		log.Fatalf("unknown op %q", op)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		_, _ = fmt.Sscanf(v, "%d", &x)
		if x != 0 {
			return x
		}
	}
	return def
}
