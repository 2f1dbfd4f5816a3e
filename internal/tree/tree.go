// Package tree keeps an arena of nodes synchronized with a mission document.
//
// Every node wraps one fragment it does not own. A parent holds the IDs of its children
// and each child keeps the plain ID of its parent. Removing a node sweeps its subtree
// post-order and returns the slots to a free list; the slot generation is bumped so that
// stale IDs held by callers can be detected with Valid.
//
// Each mutating call updates the fragment repeated field and the node children in the
// same step, so the two sides agree whenever control returns to the caller.
package tree

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
)

// NodeID addresses a slot in the arena.
type NodeID int32

// Root is the sentinel root. It has no parent and no fragment.
const Root NodeID = 0

// None is the parent of the root.
const None NodeID = -1

// ErrDesync is reported by Verify when a node and its fragment disagree.
var ErrDesync = errors.New("tree out of sync with document")

type slot struct {
	fragment   domain.Fragment
	parent     NodeID
	children   []NodeID
	generation uint32
	live       bool
}

// Tree is the node arena. It is not safe for concurrent use.
type Tree struct {
	slots  []slot
	free   []NodeID
	logger *slog.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tree) {
		t.logger = logger
	}
}

// New returns a tree holding only the sentinel root.
func New(opts ...Option) *Tree {
	t := &Tree{
		slots: []slot{{parent: None, live: true}},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return t
}

func (t *Tree) alloc(parent NodeID, f domain.Fragment) NodeID {
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		s := &t.slots[id]
		s.fragment, s.parent, s.children, s.live = f, parent, nil, true
		return id
	}
	t.slots = append(t.slots, slot{fragment: f, parent: parent, live: true})
	return NodeID(len(t.slots) - 1)
}

// sweep releases id and its whole subtree, children first.
func (t *Tree) sweep(id NodeID) {
	s := &t.slots[id]
	for _, c := range s.children {
		t.sweep(c)
	}
	s = &t.slots[id]
	*s = slot{parent: None, generation: s.generation + 1}
	t.free = append(t.free, id)
}

func (t *Tree) get(id NodeID) (*slot, error) {
	if id < 0 || int(id) >= len(t.slots) || !t.slots[id].live {
		return nil, fmt.Errorf("node %d: %w", id, domain.ErrInvalidIndex)
	}
	return &t.slots[id], nil
}

// Valid reports whether id is live and still carries generation gen.
func (t *Tree) Valid(id NodeID, gen uint32) bool {
	s, err := t.get(id)
	return err == nil && s.generation == gen
}

// Generation returns the current generation of id.
func (t *Tree) Generation(id NodeID) uint32 {
	if s, err := t.get(id); err == nil {
		return s.generation
	}
	return 0
}

// Len returns the number of live nodes, the root included.
func (t *Tree) Len() int {
	return len(t.slots) - len(t.free)
}

// Fragment returns the fragment wrapped by id; nil for the root or an empty node.
func (t *Tree) Fragment(id NodeID) domain.Fragment {
	if s, err := t.get(id); err == nil {
		return s.fragment
	}
	return nil
}

// Mission returns the document bound under the root, if any.
func (t *Tree) Mission() *domain.Mission {
	for _, c := range t.slots[Root].children {
		if m, ok := t.slots[c].fragment.(*domain.Mission); ok {
			return m
		}
	}
	return nil
}

// Parent returns the parent of id, or None for the root and invalid IDs.
func (t *Tree) Parent(id NodeID) NodeID {
	if s, err := t.get(id); err == nil {
		return s.parent
	}
	return None
}

// ChildCount returns the number of children of id.
func (t *Tree) ChildCount(id NodeID) int {
	if s, err := t.get(id); err == nil {
		return len(s.children)
	}
	return 0
}

// Child returns the child of id at row.
func (t *Tree) Child(id NodeID, row int) (NodeID, bool) {
	s, err := t.get(id)
	if err != nil || row < 0 || row >= len(s.children) {
		return None, false
	}
	return s.children[row], true
}

// Children returns a copy of the child IDs of id.
func (t *Tree) Children(id NodeID) []NodeID {
	if s, err := t.get(id); err == nil {
		return append([]NodeID(nil), s.children...)
	}
	return nil
}

// Row returns the position of id among its siblings, or -1 for the root.
func (t *Tree) Row(id NodeID) int {
	s, err := t.get(id)
	if err != nil || s.parent == None {
		return -1
	}
	for i, c := range t.slots[s.parent].children {
		if c == id {
			return i
		}
	}
	return -1
}

// IsAncestor reports whether a is b or one of b's ancestors.
func (t *Tree) IsAncestor(a, b NodeID) bool {
	for id := b; id != None; id = t.Parent(id) {
		if id == a {
			return true
		}
	}
	return false
}

// Kind classifies the fragment of id.
func (t *Tree) Kind(id NodeID) domain.Kind {
	return domain.Classify(t.Fragment(id))
}

// Interpretation derives the reading of id from the kinds of its current children.
// Only collections have an interpretation other than Scenario.
func (t *Tree) Interpretation(id NodeID) domain.Interpretation {
	s, err := t.get(id)
	if err != nil || domain.Classify(s.fragment) != domain.KindCollection {
		return domain.Scenario
	}
	kinds := make([]domain.Kind, len(s.children))
	for i, c := range s.children {
		kinds[i] = domain.Classify(t.slots[c].fragment)
	}
	return domain.Interpret(kinds)
}

// Features resolves the operations permitted on id.
func (t *Tree) Features(id NodeID) domain.Features {
	s, err := t.get(id)
	if err != nil {
		return 0
	}
	parent := domain.KindUndefined
	if s.parent != None {
		parent = domain.Classify(t.slots[s.parent].fragment)
	}
	return domain.Resolve(domain.Classify(s.fragment), parent, t.Interpretation(id))
}

// DefaultName returns the generated name of a new fragment of kind k at row.
func DefaultName(k domain.Kind, row int) string {
	return fmt.Sprintf("%s %d", k, row)
}

// LinePointNames returns the generated names of the two points of a new line of kind k.
func LinePointNames(k domain.Kind) [2]string {
	initial := strings.ToUpper(k.String()[:1])
	return [2]string{initial + "A", initial + "B"}
}
