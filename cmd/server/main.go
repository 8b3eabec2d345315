package main

import (
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"stockmcp/internal/config"
	"stockmcp/internal/facade"
	"stockmcp/internal/httpx"
	"stockmcp/internal/provider"
	"stockmcp/internal/provider/cache"
	"stockmcp/internal/provider/ratelimit"
	"stockmcp/internal/provider/yahooadapter"
	"stockmcp/internal/yahoo"
)

func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		// No logger yet; this is the one place plain stderr is fine.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// stdout carries the MCP transport, so the logger must stay on stderr.
	logger, err := zap.NewProduction()
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	f := facade.New(newSource(cfg), logger, facadeOptions(cfg)...)

	s := server.NewMCPServer(cfg.Server.Name, cfg.Server.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	registerTools(s, f)
	registerResources(s, f)

	logger.Info("serving on stdio",
		zap.String("server", cfg.Server.Name),
		zap.String("version", cfg.Server.Version))
	if err := server.ServeStdio(s); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

// newSource builds the provider chain: yahoo client -> adapter, optionally
// wrapped with a rate limiter and a snapshot/search cache per config.
func newSource(cfg config.Config) provider.Source {
	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	httpClient.UserAgent = cfg.Yahoo.UserAgent

	client := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Yahoo.BaseURL),
		yahoo.WithHTTPClient(httpClient),
	)

	var src provider.Source = yahooadapter.New(yahooadapter.Config{Name: "Yahoo"}, client)
	// Prefer token bucket with burst if RPM is set, otherwise use min-interval
	if cfg.Yahoo.MaxRequestsPerMinute > 0 {
		rate := float64(cfg.Yahoo.MaxRequestsPerMinute) / 60.0
		burst := cfg.Yahoo.Burst
		if burst <= 0 {
			burst = 1
		}
		src = &ratelimit.Limited{S: src, TB: ratelimit.NewTokenBucket(rate, burst)}
	} else if cfg.Yahoo.MinRequestIntervalSec > 0 {
		src = &ratelimit.MinInterval{S: src, Interval: time.Duration(cfg.Yahoo.MinRequestIntervalSec) * time.Second}
	}
	if cfg.Yahoo.CacheTTLSeconds > 0 {
		src = &cache.Source{S: src, TTL: time.Duration(cfg.Yahoo.CacheTTLSeconds) * time.Second, MaxItems: cfg.Yahoo.CacheMaxItems}
	}
	return src
}

func facadeOptions(cfg config.Config) []facade.Option {
	var opts []facade.Option
	if p, ok := facade.NormalizePeriod(cfg.Tools.DefaultPeriod); ok {
		opts = append(opts, facade.WithDefaultPeriod(p))
	}
	if cfg.Tools.DefaultSearchLimit > 0 {
		opts = append(opts, facade.WithSearchLimit(cfg.Tools.DefaultSearchLimit))
	}
	return opts
}
