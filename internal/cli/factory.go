package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/waypoint/internal/adapters/file"
	"github.com/aretw0/waypoint/internal/config"
	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/badger"
	"github.com/aretw0/waypoint/pkg/adapters/loam"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/adapters/redis"
	"github.com/aretw0/waypoint/pkg/codec"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/aretw0/waypoint/pkg/persistence/middleware"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Workspace is everything a CLI command needs, built from the configuration.
type Workspace struct {
	Manager  *session.Manager
	Store    ports.DocumentStore
	Registry *prometheus.Registry
	Logger   *slog.Logger

	closers []io.Closer
}

// Close releases the store backends.
func (w *Workspace) Close() error {
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		errs = append(errs, w.closers[i].Close())
	}
	return errors.Join(errs...)
}

// NewWorkspace wires the store, its middleware, metrics and the session manager.
func NewWorkspace(cfg config.Config, logger *slog.Logger) (*Workspace, error) {
	docCodec, err := codec.ByName(cfg.Codec)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logging.NewNop()
	}
	w := &Workspace{Logger: logger}
	store, locker, err := w.openStore(cfg, docCodec, logger)
	if err != nil {
		return nil, err
	}

	var mws []middleware.Middleware
	if cfg.Metrics {
		w.Registry = prometheus.NewRegistry()
		mws = append(mws, middleware.NewMetricsMiddleware(middleware.NewStoreMetrics(w.Registry)))
	}
	if cfg.Encryption.Key != "" {
		keys, err := cfg.Encryption.Keys()
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    keys[0],
			FallbackKeys: keys[1:],
		}))
	}
	w.Store = middleware.Chain(store, mws...)

	opts := []session.Option{
		session.WithStore(w.Store),
		session.WithCodec(docCodec),
		session.WithLogger(logger),
	}
	if locker != nil {
		opts = append(opts, session.WithLocker(locker), session.WithLockTTL(cfg.Store.Redis.LockTTL))
	}

	w.Manager = session.NewManager(opts...)

	hooks := []model.Hooks{debugHooks(logger)}
	if cfg.Metrics {
		hooks = append(hooks, observability.NewModelMetrics(w.Registry).Hooks(w.Manager.Model()))
	}
	w.Manager.Model().SetHooks(observability.Combine(hooks...))
	return w, nil
}

func (w *Workspace) openStore(cfg config.Config, docCodec ports.Codec, logger *slog.Logger) (ports.DocumentStore, ports.DistributedLocker, error) {
	sc := cfg.Store
	switch sc.Kind {
	case config.StoreMemory:
		return memory.NewStore(), nil, nil
	case config.StoreFile:
		return file.New(sc.Path), nil, nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithPrefix(sc.Redis.Prefix)}
		if sc.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(sc.Redis.TTL))
		}
		store := redis.New(sc.Redis.Addr, sc.Redis.Password, sc.Redis.DB, opts...)
		w.closers = append(w.closers, store)
		return store, redis.NewLocker(store.Client(), sc.Redis.Prefix), nil
	case config.StoreBadger:
		store, err := badger.Open(badger.Config{
			Path:       sc.Path,
			SyncWrites: sc.Badger.SyncWrites,
			GCInterval: sc.Badger.GCInterval,
		}, badger.WithLogger(logger))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		w.closers = append(w.closers, store)
		return store, nil, nil
	case config.StoreLoam:
		store, err := loam.Open(sc.Path, loam.WithCodec(docCodec))
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", sc.Kind)
	}
}

// debugHooks logs structural changes at debug level.
func debugHooks(logger *slog.Logger) model.Hooks {
	return model.Hooks{
		OnRowsInserted: func(ev model.ChangeEvent) {
			logger.Debug("Rows Inserted", "first", ev.First, "last", ev.Last)
		},
		OnRowsRemoved: func(ev model.ChangeEvent) {
			logger.Debug("Rows Removed", "first", ev.First, "last", ev.Last)
		},
		OnModelReset: func(model.ChangeEvent) {
			logger.Debug("Model Reset")
		},
	}
}
