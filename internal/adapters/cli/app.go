package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Zackmartin238/HyFlipper/internal/adapters/api"
	"github.com/Zackmartin238/HyFlipper/internal/adapters/cache"
	"github.com/Zackmartin238/HyFlipper/internal/adapters/metrics"
	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/application/mediator"
	"github.com/Zackmartin238/HyFlipper/internal/application/runner"
	"github.com/Zackmartin238/HyFlipper/internal/application/setup"
	"github.com/Zackmartin238/HyFlipper/internal/domain/market"
	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
	"github.com/Zackmartin238/HyFlipper/internal/infrastructure/config"
)

// app wires the provider client, cache, mediator and runner for one CLI invocation
type app struct {
	cfg           *config.Config
	logger        *logging.WriterLogger
	client        *api.ProviderClient
	cache         *cache.CachedProvider // nil when caching is disabled
	runner        *runner.Runner
	metricsServer *metrics.Server
}

// newApp builds the full stack from configuration
func newApp(cfg *config.Config) (*app, error) {
	level := cfg.Logging.Level
	if verbose {
		level = logging.LevelDebug
	}

	var logOut io.Writer = os.Stderr
	if cfg.Logging.Output == "stdout" {
		logOut = os.Stdout
	}
	logger := logging.NewWriterLogger(logOut, level, cfg.Logging.Format, nil)

	a := &app{cfg: cfg, logger: logger}

	// Metrics (optional)
	var handlerMetrics *metrics.HandlerMetricsCollector
	if cfg.Metrics.Enabled {
		collector, err := metrics.Setup()
		if err != nil {
			return nil, err
		}
		handlerMetrics = collector

		server, err := metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		if err != nil {
			return nil, err
		}
		server.Start()
		a.metricsServer = server
		logger.Log(logging.LevelInfo, "Metrics endpoint listening", map[string]interface{}{
			"addr": server.Addr(),
			"path": cfg.Metrics.Path,
		})
	}

	// Provider client
	a.client = api.NewProviderClientWithConfig(
		api.Endpoints{
			Auctions:  cfg.Providers.AuctionsURL,
			Items:     cfg.Providers.ItemsURL,
			KatProfit: cfg.Providers.KatProfitURL,
			LowSupply: cfg.Providers.LowSupplyURL,
		},
		api.ClientOptions{
			Timeout:         cfg.Providers.Timeout,
			RateLimit:       cfg.Providers.RateLimit.Requests,
			Burst:           cfg.Providers.RateLimit.Burst,
			BreakerFailures: cfg.Providers.CircuitBreaker.MaxFailures,
			BreakerCooldown: cfg.Providers.CircuitBreaker.Cooldown,
			UserAgent:       cfg.Providers.UserAgent,
		},
	)

	// Result cache (optional)
	var provider market.MarketDataProvider = a.client
	if cfg.Cache.Enabled {
		cached, err := cache.NewCachedProvider(a.client, cfg.Cache.MaxEntries, cfg.Cache.TTL, nil)
		if err != nil {
			return nil, err
		}
		a.cache = cached
		provider = cached
	}

	// Mediator with all query handlers
	registry := setup.NewHandlerRegistry(provider, nil, cfg.Providers.MaxPages)
	m, err := registry.CreateConfiguredMediator(
		mediator.LoggingMiddleware(),
		metrics.PrometheusMiddleware(handlerMetrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	a.runner = runner.NewRunner(m, runner.Options{
		CancelSuperseded: cfg.Query.CancelSuperseded,
		LoggerFactory: func(runID string) logging.ContainerLogger {
			return logger.WithScope(runID)
		},
	})

	return a, nil
}

// run submits one query and blocks until its outcome arrives
func (a *app) run(ctx context.Context, qcfg query.Config) (*runner.Outcome, error) {
	if qcfg.Limit == 0 {
		qcfg.Limit = a.cfg.Query.DefaultLimit
	}

	if a.cfg.Query.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Query.Timeout)
		defer cancel()
	}

	_, outcomes, err := a.runner.Submit(ctx, qcfg)
	if err != nil {
		return nil, err
	}

	// The worker always delivers exactly one outcome, even when ctx ends
	outcome, ok := <-outcomes
	if !ok || outcome == nil {
		return nil, fmt.Errorf("query worker exited without an outcome")
	}

	return outcome, nil
}

// close stops the metrics endpoint, if any
func (a *app) close() {
	if a.metricsServer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.metricsServer.Shutdown(ctx)
}

// loadApp loads configuration and builds the app
func loadApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newApp(cfg)
}

// runAndRender runs one query and prints its outcome
func runAndRender(ctx context.Context, out io.Writer, qcfg query.Config, showLore bool) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	outcome, err := a.run(ctx, qcfg)
	if err != nil {
		return err
	}

	if err := renderOutcome(out, outcome, renderOptions{JSON: jsonOutput, ShowLore: showLore}); err != nil {
		return err
	}

	if !outcome.IsReady() {
		return errQueryUnavailable
	}
	return nil
}
