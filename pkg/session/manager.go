package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/codec"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/aretw0/waypoint/pkg/ports"
)

// DefaultDocumentName names the document a Manager starts with.
const DefaultDocumentName = "My New Mission"

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager owns the current mission document and its projection.
type Manager struct {
	model    *model.Model
	store    ports.DocumentStore
	codec    ports.Codec
	registry *codec.Registry

	filename string
	docID    string
	saved    *domain.Mission

	mu    sync.Mutex            // guards locks
	locks map[string]*lockEntry // per document id, reference counted

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger

	modelOpts []model.Option
}

// Option configures the Manager.
type Option func(*Manager)

// WithStore sets the store used by Commit and Checkout. Defaults to an in-memory store.
func WithStore(store ports.DocumentStore) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithCodec sets the codec documents are stored with. Defaults to codec.Binary.
func WithCodec(c ports.Codec) Option {
	return func(m *Manager) {
		m.codec = c
	}
}

// WithPayloadCodec sets the codec the projection packs drag payloads with.
func WithPayloadCodec(c ports.Codec) Option {
	return func(m *Manager) {
		m.modelOpts = append(m.modelOpts, model.WithCodec(c))
	}
}

// WithRegistry sets the codec lookup used by SaveAs and Open.
func WithRegistry(r *codec.Registry) Option {
	return func(m *Manager) {
		m.registry = r
	}
}

// WithHooks installs change hooks on the projection.
func WithHooks(h model.Hooks) Option {
	return func(m *Manager) {
		m.modelOpts = append(m.modelOpts, model.WithHooks(h))
	}
}

// WithLocker enables distributed locking of store access.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the TTL of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager and its projection.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager holding a new, empty mission.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		codec:   codec.Binary{},
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = memory.NewStore()
	}
	if m.registry == nil {
		m.registry = codec.Default()
	}
	m.model = model.New(append([]model.Option{model.WithLogger(m.logger)}, m.modelOpts...)...)
	if err := m.NewDocument(DefaultDocumentName); err != nil {
		m.logger.Error("failed to create initial document", "err", err)
	}
	return m
}

// Model returns the projection of the current document.
func (m *Manager) Model() *model.Model {
	return m.model
}

// Store returns the underlying document store.
func (m *Manager) Store() ports.DocumentStore {
	return m.store
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock executes fn while holding the lock for the document id.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"document_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
