package waypoint

import (
	"log/slog"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/aretw0/waypoint/pkg/persistence/middleware"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is the release of the library and CLI. Overridden at build time with -ldflags.
var Version = "0.1.0-dev"

// Editor is the high-level entry point for the waypoint library.
// It wraps a session.Manager and adds path based addressing.
type Editor struct {
	*session.Manager

	store       ports.DocumentStore
	middlewares []middleware.Middleware
	hooks       []model.Hooks
	registerer  prometheus.Registerer
	logger      *slog.Logger
	opts        []session.Option
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore sets the document store used by Commit and Checkout.
func WithStore(store ports.DocumentStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithMiddleware decorates the store. The first middleware is the outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(e *Editor) {
		e.middlewares = append(e.middlewares, mws...)
	}
}

// WithCodec sets the codec documents are stored with.
func WithCodec(c ports.Codec) Option {
	return func(e *Editor) {
		e.opts = append(e.opts, session.WithCodec(c))
	}
}

// WithHooks registers change observers. Several calls accumulate.
func WithHooks(h model.Hooks) Option {
	return func(e *Editor) {
		e.hooks = append(e.hooks, h)
	}
}

// WithMetrics registers model and store collectors with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(e *Editor) {
		e.registerer = reg
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// New creates an Editor holding a new, empty mission.
func New(opts ...Option) *Editor {
	e := &Editor{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	sopts := append([]session.Option{session.WithLogger(e.logger)}, e.opts...)
	if e.store != nil {
		mws := e.middlewares
		if e.registerer != nil {
			mws = append([]middleware.Middleware{
				middleware.NewMetricsMiddleware(middleware.NewStoreMetrics(e.registerer)),
			}, mws...)
		}
		sopts = append(sopts, session.WithStore(middleware.Chain(e.store, mws...)))
	}
	e.Manager = session.NewManager(sopts...)

	hooks := e.hooks
	if e.registerer != nil {
		hooks = append(hooks, observability.NewModelMetrics(e.registerer).Hooks(e.Model()))
	}
	if len(hooks) > 0 {
		e.Model().SetHooks(observability.Combine(hooks...))
	}
	return e
}

// At returns the index of the node at path. The mission is at path 0.
func (e *Editor) At(path ...int) (model.Index, error) {
	return e.Model().IndexForPath(path)
}

// AddAt appends a node of kind k under the node at path and returns the new node's path.
func (e *Editor) AddAt(k domain.Kind, path ...int) ([]int, error) {
	parent, err := e.At(path...)
	if err != nil {
		return nil, err
	}
	idx, err := e.Add(parent, k)
	if err != nil {
		return nil, err
	}
	return e.Model().Path(idx)
}

// RemoveAt removes the node at path.
func (e *Editor) RemoveAt(path ...int) error {
	idx, err := e.At(path...)
	if err != nil {
		return err
	}
	return e.RemoveIndex(idx)
}

// Describe returns the presentation data of the node at path.
func (e *Editor) Describe(path ...int) (model.Descriptor, error) {
	idx, err := e.At(path...)
	if err != nil {
		return model.Descriptor{}, err
	}
	return e.Model().Descriptor(idx)
}
