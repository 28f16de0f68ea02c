package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matst80/slask-storefront/pkg/browse"
	"github.com/matst80/slask-storefront/pkg/catalog"
	"github.com/matst80/slask-storefront/pkg/config"
	"github.com/matst80/slask-storefront/pkg/logging"
	"github.com/matst80/slask-storefront/pkg/suggest"
	"github.com/matst80/slask-storefront/pkg/tui"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.LoadClient(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	// the terminal belongs to the ui so logs only go to the file
	log, err := logging.New(logging.Options{
		File:       cfg.LogFile,
		Level:      cfg.LogLevel,
		Production: cfg.Production,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	client, err := catalog.New(cfg.CatalogURL, catalog.WithLogger(logging.Component(log, "catalog")))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	bridge := tui.NewBridge()
	ctrl := browse.NewController(client,
		browse.WithLogger(logging.Component(log, "browse")),
		browse.WithTimeout(cfg.FetchTimeout),
		browse.WithNotifier(bridge.Notify),
		browse.WithChangeListener(bridge.Changed),
	)
	debouncer := suggest.NewDebouncer(client,
		suggest.WithLogger(logging.Component(log, "suggest")),
		suggest.WithDelay(cfg.SuggestDelay),
		suggest.WithCache(cfg.SuggestCacheTTL),
		suggest.OnResults(bridge.Suggestions),
		suggest.OnClear(bridge.ClearSuggestions),
	)
	defer debouncer.Cancel()

	log.Info("starting storefront", zap.String("catalog", cfg.CatalogURL))
	p := tea.NewProgram(tui.New(ctrl, debouncer, log), tea.WithAltScreen())
	bridge.Attach(p)
	if _, err := p.Run(); err != nil {
		log.Error("ui stopped", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ctrl.Wait()
}
