package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/config"
	"github.com/matst80/slask-storefront/pkg/devserver"
	"github.com/matst80/slask-storefront/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.LoadDevServer(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := logging.New(logging.Options{
		File:       cfg.LogFile,
		Level:      cfg.LogLevel,
		Console:    true,
		Production: cfg.Production,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	catalog, err := devserver.LoadFile(cfg.CatalogFile)
	if err != nil {
		log.Fatal("failed to load catalog", zap.Error(err))
	}
	log.Info("catalog loaded", zap.String("file", cfg.CatalogFile), zap.Int("products", catalog.Len()))

	opts := []devserver.Option{
		devserver.WithLogger(logging.Component(log, "devcatalog")),
		devserver.WithWrappedTotal(cfg.WrappedTotal),
	}
	if cfg.RedisURL != "" {
		cache := devserver.NewRedisCache(cfg.RedisURL, cfg.RedisPassword, 0)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cache.Ping(ctx); err != nil {
			log.Warn("redis unavailable, serving without cache", zap.String("addr", cfg.RedisURL), zap.Error(err))
			_ = cache.Close(ctx)
		} else {
			opts = append(opts, devserver.WithCache(cache, cfg.CacheTTL))
			log.Info("response cache enabled", zap.String("addr", cfg.RedisURL), zap.Duration("ttl", cfg.CacheTTL))
		}
		cancel()
	}

	srv := devserver.NewServer(catalog, opts...)
	server := common.NewServerWithTimeouts(&http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Handler(),
	}, cfg.Timeouts)

	common.RunServerWithShutdown(server, log, "devcatalog", cfg.Timeouts.Shutdown, cfg.Timeouts.Hook, srv.Close)
}
