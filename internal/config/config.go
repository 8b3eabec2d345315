package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Server struct {
	Name              string `json:"name"`
	Version           string `json:"version"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
}

type Yahoo struct {
	BaseURL               string `json:"base_url"`
	UserAgent             string `json:"user_agent"`
	MaxRequestsPerMinute  int    `json:"max_requests_per_minute"`
	MinRequestIntervalSec int    `json:"min_request_interval_sec"`
	Burst                 int    `json:"burst"`
	CacheTTLSeconds       int    `json:"cache_ttl_sec"`
	CacheMaxItems         int    `json:"cache_max_items"`
}

type Tools struct {
	DefaultPeriod      string `json:"default_period"`
	DefaultSearchLimit int    `json:"default_search_limit"`
}

type Config struct {
	Server Server `json:"server"`
	Yahoo  Yahoo  `json:"yahoo"`
	Tools  Tools  `json:"tools"`
}

func Default() Config {
	return Config{
		Server: Server{
			Name:              "Stock Price Server",
			Version:           "1.0.0",
			RequestTimeoutSec: 10,
		},
		Yahoo: Yahoo{
			BaseURL:   "https://query1.finance.yahoo.com",
			UserAgent: "stockmcp/1.0",
			// Off by default: the facade is a plain pass-through unless
			// the operator opts into limiting or caching.
			MaxRequestsPerMinute: 0,
			Burst:                1,
			CacheTTLSeconds:      0,
			CacheMaxItems:        1000,
		},
		Tools: Tools{
			DefaultPeriod:      "1mo",
			DefaultSearchLimit: 10,
		},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_NAME"); v != "" {
		cfg.Server.Name = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Server.RequestTimeoutSec = x
		}
	}
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Yahoo.BaseURL = v
	}
	if v := os.Getenv("YAHOO_USER_AGENT"); v != "" {
		cfg.Yahoo.UserAgent = v
	}
	if v := os.Getenv("YAHOO_MAX_RPM"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Yahoo.MaxRequestsPerMinute = x
		}
	}
	if v := os.Getenv("YAHOO_MIN_INTERVAL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Yahoo.MinRequestIntervalSec = x
		}
	}
	if v := os.Getenv("YAHOO_BURST"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Yahoo.Burst = x
		}
	}
	if v := os.Getenv("YAHOO_CACHE_TTL_SEC"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x >= 0 {
			cfg.Yahoo.CacheTTLSeconds = x
		}
	}
	if v := os.Getenv("YAHOO_CACHE_MAX_ITEMS"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Yahoo.CacheMaxItems = x
		}
	}
	if v := os.Getenv("DEFAULT_PERIOD"); v != "" {
		cfg.Tools.DefaultPeriod = strings.TrimSpace(v)
	}
	if v := os.Getenv("DEFAULT_SEARCH_LIMIT"); v != "" {
		var x int
		fmt.Sscanf(v, "%d", &x)
		if x > 0 {
			cfg.Tools.DefaultSearchLimit = x
		}
	}
}
