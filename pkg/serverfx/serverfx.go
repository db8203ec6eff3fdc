package serverfx

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/joeydtaylor/steeze-activities/pkg/activity"
	"github.com/joeydtaylor/steeze-activities/pkg/api"
	"github.com/joeydtaylor/steeze-activities/pkg/bundlefx"
	"github.com/joeydtaylor/steeze-activities/pkg/catalog"
	"github.com/joeydtaylor/steeze-activities/pkg/core"
	"github.com/joeydtaylor/steeze-activities/pkg/events"
	"github.com/joeydtaylor/steeze-activities/pkg/middleware/logger"
	"github.com/joeydtaylor/steeze-activities/pkg/middleware/metrics"
	"github.com/joeydtaylor/steeze-activities/pkg/transport/httpx"
)

// ---- Registry ----

func provideLoggerConfig(o Options) logger.Config {
	return logger.Config{Dir: envOr(o.LogDirEnv, logger.DefaultDir)}
}

func loadCatalog(o Options) (catalog.Config, string, error) {
	path := envOr(o.CatalogEnv, "")
	if path == "" {
		cfg, err := catalog.Default()
		return cfg, "embedded", err
	}
	cfg, err := catalog.Load(path)
	return cfg, path, err
}

func provideRegistry(o Options, log *zap.Logger) (*activity.Registry, error) {
	cfg, source, err := loadCatalog(o)
	if err != nil {
		log.Error("catalog load failed", zap.Error(err), zap.String("source", source))
		return nil, fmt.Errorf("load catalog %s: %w", source, err)
	}

	reg := activity.NewRegistry(cfg.Seed())
	for name, a := range reg.List() {
		metrics.SetParticipants(name, len(a.Participants))
	}
	log.Info("catalog loaded",
		zap.String("source", source),
		zap.Strings("activities", reg.Names()),
	)
	return reg, nil
}

// ---- Events ----

func providePublisher(lc fx.Lifecycle, o Options, log *zap.Logger) events.Publisher {
	brokers := splitAndTrim(envOr(o.KafkaBrokersEnv, ""))
	if len(brokers) == 0 {
		log.Info("roster events disabled", zap.String("env", o.KafkaBrokersEnv))
		return events.Noop{}
	}

	topic := envOr(o.KafkaTopicEnv, events.DefaultTopic)
	pub := events.NewKafkaPublisher(brokers, topic)
	log.Info("roster events enabled", zap.Strings("brokers", brokers), zap.String("topic", topic))

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return pub.Close() },
	})
	return pub
}

func provideHandler(reg *activity.Registry, pub events.Publisher, log *zap.Logger) *api.Handler {
	return api.NewHandler(reg, pub, log.With(zap.String("component", "api")))
}

// ---- Router ----

type routerDeps struct {
	fx.In

	Opts Options

	LogMW   *logger.Middleware
	Metrics http.Handler `name:"metrics"`
	Handler *api.Handler
	R       httpx.Router
}

func provideRouter(d routerDeps) http.Handler {
	return core.BuildRouter(core.BuildDeps{
		LogMW:     d.LogMW,
		Metrics:   d.Metrics,
		Router:    d.R,
		Routes:    d.Handler.Routes(),
		StaticDir: envOr(d.Opts.StaticDirEnv, ""),
		Timeout:   envMillis(d.Opts.TimeoutEnv, d.Opts.DefaultTimeout),
	})
}

// ---- Server lifecycle ----

type serverDeps struct {
	fx.In
	Opts   Options
	Logger *zap.Logger
	App    http.Handler `name:"app"`
}

func registerHooks(lc fx.Lifecycle, d serverDeps) {
	addr := envOr(d.Opts.ListenAddrEnv, d.Opts.DefaultListen)
	cert := envOr(d.Opts.TLSCertEnv, "")
	key := envOr(d.Opts.TLSKeyEnv, "")

	srv := &http.Server{
		Addr:         addr,
		Handler:      d.App,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS13, MaxVersion: tls.VersionTLS13},
	}
	useTLS := fileExists(cert) && fileExists(key)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if useTLS {
				d.Logger.Info("server starting (TLS)",
					zap.String("service", d.Opts.Service),
					zap.String("addr", addr),
					zap.String("cert", cert),
				)
				go func() {
					if err := srv.ListenAndServeTLS(cert, key); err != nil && !errors.Is(err, http.ErrServerClosed) {
						d.Logger.Fatal("server failed", zap.Error(err))
					}
				}()
				return nil
			}

			d.Logger.Info("server starting (PLAINTEXT)",
				zap.String("service", d.Opts.Service),
				zap.String("addr", addr),
			)
			srv.TLSConfig = nil
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					d.Logger.Fatal("server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			d.Logger.Info("server stopping", zap.String("service", d.Opts.Service))
			return srv.Shutdown(ctx)
		},
	})
}

// ---- Public Fx module ----

func Module(opts Options) fx.Option {
	return fx.Options(
		fx.Supply(opts),
		fx.Provide(provideLoggerConfig),

		// Logger + metrics middleware
		bundlefx.Module,
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),

		// Router implementation
		fx.Provide(httpx.NewChi),

		// Domain
		fx.Provide(provideRegistry, providePublisher, provideHandler),

		// Router (named "app")
		fx.Provide(
			fx.Annotate(
				provideRouter,
				fx.ResultTags(`name:"app"`),
			),
		),

		// App lifecycle
		fx.Invoke(registerHooks),
	)
}

// Run builds the app and blocks until SIGINT/SIGTERM. fx exits non-zero
// when startup fails.
func Run(opts Options, extra ...fx.Option) {
	fx.New(append([]fx.Option{Module(opts)}, extra...)...).Run()
}
