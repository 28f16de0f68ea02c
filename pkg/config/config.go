// Package config reads the client and devcatalog settings from an optional
// .env file, the environment and command line flags, in that order of
// increasing precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/matst80/slask-storefront/pkg/common"
)

const (
	DefaultCatalogURL   = "http://localhost:5500"
	DefaultListenAddr   = ":5500"
	DefaultFetchTimeout = 15 * time.Second
	DefaultSuggestDelay = 300 * time.Millisecond
	DefaultSuggestTTL   = time.Minute
	DefaultCacheTTL     = 5 * time.Minute
)

type Client struct {
	CatalogURL      string
	FetchTimeout    time.Duration
	SuggestDelay    time.Duration
	SuggestCacheTTL time.Duration
	LogFile         string
	LogLevel        string
	Production      bool
	MetricsAddr     string
}

type DevServer struct {
	ListenAddr    string
	CatalogFile   string
	RedisURL      string
	RedisPassword string
	WrappedTotal  bool
	CacheTTL      time.Duration
	LogFile       string
	LogLevel      string
	Production    bool
	Timeouts      common.TimeoutConfig
}

// LoadEnv reads .env style files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func LoadClient(args []string) (*Client, error) {
	cfg := &Client{
		CatalogURL:      envString("CATALOG_URL", DefaultCatalogURL),
		FetchTimeout:    envSeconds("FETCH_TIMEOUT", DefaultFetchTimeout),
		SuggestDelay:    envMillis("SUGGEST_DELAY_MS", DefaultSuggestDelay),
		SuggestCacheTTL: envSeconds("SUGGEST_CACHE_TTL", DefaultSuggestTTL),
		LogFile:         envString("LOG_FILE", "storefront.log"),
		LogLevel:        envString("LOG_LEVEL", "info"),
		Production:      isProduction(),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
	}
	fl := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fl.StringVar(&cfg.CatalogURL, "catalog", cfg.CatalogURL, "catalog api base address")
	fl.DurationVar(&cfg.FetchTimeout, "timeout", cfg.FetchTimeout, "product fetch timeout")
	fl.DurationVar(&cfg.SuggestDelay, "suggest-delay", cfg.SuggestDelay, "autocomplete debounce delay")
	fl.DurationVar(&cfg.SuggestCacheTTL, "suggest-ttl", cfg.SuggestCacheTTL, "autocomplete cache ttl, 0 disables")
	fl.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file")
	fl.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fl.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "serve prometheus metrics on this address")
	if err := fl.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Client) Validate() error {
	u, err := url.Parse(c.CatalogURL)
	if err != nil {
		return fmt.Errorf("catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("catalog url %q: scheme must be http or https", c.CatalogURL)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.SuggestDelay < 0 || c.SuggestCacheTTL < 0 {
		return errors.New("suggestion delay and cache ttl must not be negative")
	}
	return nil
}

func LoadDevServer(args []string) (*DevServer, error) {
	cfg := &DevServer{
		ListenAddr:    envString("LISTEN_ADDR", DefaultListenAddr),
		CatalogFile:   envString("CATALOG_FILE", "data/catalog.json"),
		RedisURL:      os.Getenv("REDIS_URL"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		WrappedTotal:  envBool("WRAPPED_TOTAL", false),
		CacheTTL:      envSeconds("CACHE_TTL", DefaultCacheTTL),
		LogFile:       os.Getenv("LOG_FILE"),
		LogLevel:      envString("LOG_LEVEL", "info"),
		Production:    isProduction(),
		Timeouts: common.LoadTimeoutConfig(common.TimeoutConfig{
			ReadHeader: 5 * time.Second,
			Read:       15 * time.Second,
			Write:      15 * time.Second,
			Idle:       60 * time.Second,
			Shutdown:   15 * time.Second,
			Hook:       5 * time.Second,
		}),
	}
	fl := flag.NewFlagSet("devcatalog", flag.ContinueOnError)
	fl.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "listen address")
	fl.StringVar(&cfg.CatalogFile, "catalog", cfg.CatalogFile, "product file, .json or .csv")
	fl.BoolVar(&cfg.WrappedTotal, "wrapped-total", cfg.WrappedTotal, "answer pagination.total as {value: n}")
	fl.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	if err := fl.Parse(args); err != nil {
		return nil, err
	}
	if cfg.CatalogFile == "" {
		return nil, errors.New("no catalog file provided")
	}
	return cfg, nil
}

func isProduction() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "production")
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// envSeconds reads whole seconds; 0 is kept so a cache can be disabled.
func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}

func envMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return def
}
