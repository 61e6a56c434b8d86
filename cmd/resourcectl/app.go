package main

import (
	"context"
	"time"

	"github.com/kbukum/resourcekit/catalog"
	"github.com/kbukum/resourcekit/config"
	"github.com/kbukum/resourcekit/logger"
	"github.com/kbukum/resourcekit/observability"
	"github.com/kbukum/resourcekit/provider"
	"github.com/kbukum/resourcekit/resource"
	"github.com/kbukum/resourcekit/version"
)

const shutdownTimeout = 5 * time.Second

// app is a loaded catalog plus the observability pipeline behind it.
type app struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	log      *logger.Logger
	shutdown func(context.Context) error
}

func newApp(ctx context.Context, o options) (*app, error) {
	var loadOpts []config.LoaderOption
	if o.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		loadOpts = append(loadOpts, config.WithEnvFile(o.envFile))
	}
	cfg, err := config.Load(applicationName, loadOpts...)
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.Logging)
	logger.RegisterDefaults("config", "catalog", "provider", "httpresource", "funcresource", "mcpbind")
	log := logger.Get("resourcectl")

	shutdown, err := observability.Setup(ctx, cfg.Observability, cfg.Name, version.Get().Short(), cfg.Environment)
	if err != nil {
		return nil, err
	}
	metrics, err := observability.NewMetrics(observability.Meter(cfg.Name))
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	cat := catalog.New(
		catalog.WithService(cfg.Name),
		catalog.WithLogger(logger.Get("catalog")),
		catalog.WithMiddleware(
			provider.WithTracing[resource.Request, string](cfg.Name),
			provider.WithMetrics[resource.Request, string](metrics),
			provider.WithLogging[resource.Request, string](logger.Get("provider")),
		),
	)
	if err := cat.Load(cfg.Providers); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	if len(cfg.Providers) == 0 {
		log.Warn("no providers configured")
	}

	return &app{cfg: cfg, catalog: cat, log: log, shutdown: shutdown}, nil
}

func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.catalog.Close(ctx); err != nil {
		a.log.WithError(err).Warn("closing providers")
	}
	if err := a.shutdown(ctx); err != nil {
		a.log.WithError(err).Warn("shutting down observability")
	}
}
