package model

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/waypoint/internal/tree"
	"github.com/aretw0/waypoint/pkg/codec"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// Columns of the projection.
const (
	ColumnComponent = 0
	ColumnName      = 1
	ColumnCount     = 2
)

var headers = [ColumnCount]string{"Component", "Name"}

// Index addresses one cell of the projection.
// The zero Index is the sentinel root; it can be used as a parent but has no data.
type Index struct {
	row, column int
	node        tree.NodeID
	gen         uint32
	valid       bool
}

// Row returns the row of the index within its parent.
func (i Index) Row() int { return i.row }

// Column returns the column of the index.
func (i Index) Column() int { return i.column }

// IsRoot reports whether i is the sentinel root.
func (i Index) IsRoot() bool { return !i.valid }

// Sibling returns the index of the same node at another column.
func (i Index) Sibling(column int) Index {
	i.column = column
	return i
}

// Model is the indexable, observable tree over a mission document.
// A Model is owned by a single goroutine.
type Model struct {
	tree   *tree.Tree
	codec  ports.Codec
	hooks  Hooks
	logger *slog.Logger
	busy   bool
}

// Option configures a Model.
type Option func(*Model)

// WithCodec sets the codec used for drag payloads and swap snapshots. Default: codec.Binary.
func WithCodec(c ports.Codec) Option {
	return func(m *Model) {
		m.codec = c
	}
}

// WithHooks registers change observers.
func WithHooks(h Hooks) Option {
	return func(m *Model) {
		m.hooks = h
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// New returns an empty model: the root has no document.
func New(opts ...Option) *Model {
	m := &Model{codec: codec.Binary{}}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.tree = tree.New(tree.WithLogger(m.logger))
	return m
}

// SetHooks replaces the change observers.
func (m *Model) SetHooks(h Hooks) {
	m.hooks = h
}

// begin marks the start of a public mutation. Mutations started while another one is
// running, typically from inside a hook, are rejected.
func (m *Model) begin(op string) error {
	if m.busy {
		m.logger.Warn("reentrant mutation rejected", "op", op)
		return fmt.Errorf("%s: %w", op, domain.ErrReentrant)
	}
	m.busy = true
	return nil
}

func (m *Model) end() {
	m.busy = false
	if m.logger.Enabled(context.Background(), slog.LevelDebug) {
		if err := m.tree.Verify(); err != nil {
			m.logger.Error("projection out of sync", "err", err)
		}
	}
}

// node resolves an index to a live node.
func (m *Model) node(idx Index) (tree.NodeID, error) {
	if !idx.valid {
		return tree.Root, nil
	}
	if !m.tree.Valid(idx.node, idx.gen) {
		return tree.None, fmt.Errorf("row %d: %w", idx.row, domain.ErrInvalidIndex)
	}
	return idx.node, nil
}

func (m *Model) indexOf(id tree.NodeID, column int) Index {
	if id == tree.Root || id == tree.None {
		return Index{}
	}
	return Index{row: m.tree.Row(id), column: column, node: id, gen: m.tree.Generation(id), valid: true}
}

// Mission returns the document held by the model, or nil.
func (m *Model) Mission() *domain.Mission {
	return m.tree.Mission()
}

// RowCount returns the number of children of parent.
// Only the Component column has children.
func (m *Model) RowCount(parent Index) int {
	if parent.valid && parent.column != ColumnComponent {
		return 0
	}
	id, err := m.node(parent)
	if err != nil {
		return 0
	}
	return m.tree.ChildCount(id)
}

// ColumnCount returns the number of columns.
func (m *Model) ColumnCount(Index) int {
	return ColumnCount
}

// Index returns the index of the cell at row and column under parent.
func (m *Model) Index(row, column int, parent Index) (Index, error) {
	if column < 0 || column >= ColumnCount {
		return Index{}, fmt.Errorf("column %d: %w", column, domain.ErrInvalidIndex)
	}
	pid, err := m.node(parent)
	if err != nil {
		return Index{}, err
	}
	child, ok := m.tree.Child(pid, row)
	if !ok {
		return Index{}, fmt.Errorf("row %d of %d: %w", row, m.tree.ChildCount(pid), domain.ErrInvalidRow)
	}
	return Index{row: row, column: column, node: child, gen: m.tree.Generation(child), valid: true}, nil
}

// Parent returns the parent of idx at column 0. The parent of a top-level row is the root.
func (m *Model) Parent(idx Index) Index {
	id, err := m.node(idx)
	if err != nil || id == tree.Root {
		return Index{}
	}
	return m.indexOf(m.tree.Parent(id), ColumnComponent)
}

// HasChildren reports whether parent has at least one row.
func (m *Model) HasChildren(parent Index) bool {
	return m.RowCount(parent) > 0
}

// HeaderData returns the label of a column.
func (m *Model) HeaderData(section int) string {
	if section < 0 || section >= ColumnCount {
		return ""
	}
	return headers[section]
}

// Path returns the rows leading from the root to idx.
func (m *Model) Path(idx Index) ([]int, error) {
	id, err := m.node(idx)
	if err != nil {
		return nil, err
	}
	var rev []int
	for ; id != tree.Root; id = m.tree.Parent(id) {
		rev = append(rev, m.tree.Row(id))
	}
	path := make([]int, len(rev))
	for i, r := range rev {
		path[len(rev)-1-i] = r
	}
	return path, nil
}

// IndexForPath resolves a path produced by Path. An empty path is the root.
func (m *Model) IndexForPath(path []int) (Index, error) {
	idx := Index{}
	for _, row := range path {
		next, err := m.Index(row, ColumnComponent, idx)
		if err != nil {
			return Index{}, err
		}
		idx = next
	}
	return idx, nil
}

// Kind returns the kind of the node at idx; KindUndefined for the root.
func (m *Model) Kind(idx Index) domain.Kind {
	id, err := m.node(idx)
	if err != nil {
		return domain.KindUndefined
	}
	return m.tree.Kind(id)
}

// Features returns the operations permitted on the node at idx.
func (m *Model) Features(idx Index) domain.Features {
	id, err := m.node(idx)
	if err != nil {
		return 0
	}
	return m.tree.Features(id)
}

// Fragment returns the fragment at idx. Callers must not mutate it directly.
func (m *Model) Fragment(idx Index) domain.Fragment {
	id, err := m.node(idx)
	if err != nil {
		return nil
	}
	return m.tree.Fragment(id)
}
