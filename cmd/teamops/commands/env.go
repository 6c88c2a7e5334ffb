package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/teamops/dashboard/apiclient"
	"github.com/teamops/dashboard/config"
	"github.com/teamops/dashboard/dashboard"
	"github.com/teamops/dashboard/logging/logger"
	"github.com/teamops/dashboard/logging/observes"
	"github.com/teamops/dashboard/querycache"
	"github.com/teamops/dashboard/session"
	"github.com/teamops/dashboard/version"
)

// env holds the components a command runs against.
type env struct {
	cfg   *config.Config
	redis *redis.Client
	store session.Store
	api   *apiclient.Client
	dash  *dashboard.Dashboard

	cleanups []func()
}

// setup loads the configuration and wires the client side of the dashboard.
func setup(opts *options) (*env, error) {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	e := &env{cfg: cfg}

	cleanup, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	e.onClose(cleanup)
	logger.SetVersion(version.GetVersionInfo().Version)

	if err := e.setupObserves(); err != nil {
		e.close()
		return nil, err
	}

	if cfg.Redis.Enabled() {
		e.redis = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Username:     cfg.Redis.Username,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			DialTimeout:  cfg.Redis.DialTimeout,
		})
		e.onClose(func() { _ = e.redis.Close() })
	}

	if e.store, err = newStore(cfg.Session, e.redis); err != nil {
		e.close()
		return nil, err
	}

	cache, err := querycache.NewFromConfig(cfg.Cache, e.redis)
	if err != nil {
		e.close()
		return nil, err
	}

	e.api = apiclient.New(cfg.API, e.store)
	e.dash = dashboard.New(e.api, cache)
	return e, nil
}

func (e *env) setupObserves() error {
	obs := e.cfg.Observes
	if obs == nil {
		return nil
	}

	if t := obs.Tracer; t != nil {
		shutdown, err := observes.NewTracer(&observes.TracerOption{
			URL:                t.Endpoint,
			Name:               t.ServiceName,
			Version:            version.GetVersionInfo().Version,
			Environment:        t.Environment,
			SamplingRate:       t.SamplingRate,
			BatchTimeout:       t.BatchTimeout,
			ExportTimeout:      t.ExportTimeout,
			MaxExportBatchSize: t.MaxExportBatchSize,
			MaxQueueSize:       t.MaxQueueSize,
			Insecure:           t.Insecure,
			Headers:            t.Headers,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize tracer: %w", err)
		}
		e.onClose(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		})
	}

	if s := obs.Sentry; s != nil && s.Endpoint != "" {
		if err := observes.NewSentry(&observes.SentryOptions{
			Dsn:         s.Endpoint,
			Name:        e.cfg.AppName,
			Release:     s.Release,
			Environment: s.Environment,
			SampleRate:  s.SampleRate,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		e.onClose(func() { observes.FlushSentry(2 * time.Second) })
	}
	return nil
}

func newStore(cfg *config.Session, rc *redis.Client) (session.Store, error) {
	if cfg == nil {
		return session.NewMemory(), nil
	}
	switch cfg.Store {
	case "memory":
		return session.NewMemory(), nil
	case "", "file":
		return session.NewFile(cfg.Path), nil
	case "redis":
		if rc == nil {
			return nil, fmt.Errorf("session store redis requires data.redis.addr")
		}
		return session.NewRedis(rc, cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// onClose registers fn to run on close, last registered first.
func (e *env) onClose(fn func()) {
	e.cleanups = append(e.cleanups, fn)
}

func (e *env) close() {
	for i := len(e.cleanups) - 1; i >= 0; i-- {
		e.cleanups[i]()
	}
	e.cleanups = nil
}
