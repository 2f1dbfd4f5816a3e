package tree

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
)

// InsertChild creates an empty node under parent at row. A row outside [0, count] appends.
// The node has no fragment until CreateByKind binds one.
func (t *Tree) InsertChild(parent NodeID, row int) (NodeID, error) {
	if _, err := t.get(parent); err != nil {
		return None, err
	}
	id := t.alloc(parent, nil)
	ps := &t.slots[parent]
	ps.children = domain.InsertAt(ps.children, row, id)
	return id, nil
}

// CreateByKind synthesizes a fragment of kind k for the empty node id, stores it in the slot
// of the parent fragment that holds kind k and names it "<Kind> <row>".
// A new line is expanded at once with its two points.
// On failure the node stays empty and the document is untouched.
func (t *Tree) CreateByKind(id NodeID, k domain.Kind) (domain.Fragment, error) {
	s, err := t.get(id)
	if err != nil {
		return nil, err
	}
	if id == Root || s.fragment != nil {
		return nil, fmt.Errorf("create %s on bound node %d: %w", k, id, domain.ErrUnsupported)
	}
	parent := s.parent
	ps := &t.slots[parent]
	pk := domain.Classify(ps.fragment)
	if !domain.Accepts(pk, k) {
		t.logger.Debug("create rejected", "parent_kind", pk, "kind", k)
		return nil, fmt.Errorf("create %s under %s: %w", k, pk, domain.ErrUnsupported)
	}

	row := t.Row(id)
	f := domain.NewFragment(k)
	f.SetName(DefaultName(k, row))

	if parent == Root {
		if len(ps.children) > 1 {
			return nil, fmt.Errorf("create %s: root already holds a document: %w", k, domain.ErrUnsupported)
		}
	} else if _, err := domain.Attach(ps.fragment, row, f); err != nil {
		return nil, err
	}
	t.slots[id].fragment = f

	if line, ok := f.(*domain.Line); ok {
		for _, name := range LinePointNames(k) {
			p := &domain.Point{Name: name}
			line.Points = append(line.Points, p)
			c := t.alloc(id, p)
			t.slots[id].children = append(t.slots[id].children, c)
		}
	}
	t.logger.Debug("node created", "node", id, "kind", k, "row", row)
	return f, nil
}

// Create inserts a node of kind k under parent at row in one step.
func (t *Tree) Create(parent NodeID, row int, k domain.Kind) (NodeID, error) {
	if err := t.CanCreate(parent, k); err != nil {
		return None, err
	}
	id, err := t.InsertChild(parent, row)
	if err != nil {
		return None, err
	}
	if _, err := t.CreateByKind(id, k); err != nil {
		t.Discard(id)
		return None, err
	}
	return id, nil
}

// CanCreate reports whether a node of kind k can be created under parent.
func (t *Tree) CanCreate(parent NodeID, k domain.Kind) error {
	ps, err := t.get(parent)
	if err != nil {
		return err
	}
	pk := domain.Classify(ps.fragment)
	if parent != Root && pk == domain.KindUndefined {
		return fmt.Errorf("create %s under empty node %d: %w", k, parent, domain.ErrNilFragment)
	}
	if !domain.Accepts(pk, k) {
		return fmt.Errorf("create %s under %s: %w", k, pk, domain.ErrUnsupported)
	}
	if parent == Root && len(ps.children) > 0 {
		return fmt.Errorf("create %s: root already holds a document: %w", k, domain.ErrUnsupported)
	}
	return nil
}

// Discard drops an empty node left behind by a failed CreateByKind.
func (t *Tree) Discard(id NodeID) {
	s, err := t.get(id)
	if err != nil || id == Root || s.fragment != nil {
		return
	}
	if row := t.Row(id); row >= 0 {
		ps := &t.slots[s.parent]
		ps.children, _ = domain.RemoveAt(ps.children, row)
	}
	t.sweep(id)
}

// RemoveChild removes the child of parent at row together with its fragment entry.
// Removing the document from the root clears the mission instead of shifting a
// repeated field, because the root slot is singular.
func (t *Tree) RemoveChild(parent NodeID, row int) error {
	ps, err := t.get(parent)
	if err != nil {
		return err
	}
	if row < 0 || row >= len(ps.children) {
		return fmt.Errorf("remove row %d of %d: %w", row, len(ps.children), domain.ErrInvalidRow)
	}
	child := ps.children[row]
	if f := t.slots[child].fragment; f != nil {
		if parent == Root {
			domain.Reset(f)
		} else if _, err := domain.Detach(ps.fragment, row); err != nil {
			return err
		}
	}
	ps.children, _ = domain.RemoveAt(ps.children, row)
	t.sweep(child)
	t.logger.Debug("node removed", "parent", parent, "row", row)
	return nil
}

// Expand materializes the fragment of id into child nodes, depth first.
func (t *Tree) Expand(id NodeID) error {
	s, err := t.get(id)
	if err != nil {
		return err
	}
	if s.fragment == nil {
		return fmt.Errorf("expand node %d: %w", id, domain.ErrNilFragment)
	}
	if len(s.children) > 0 {
		return fmt.Errorf("expand node %d: %w", id, domain.ErrAlreadyExpanded)
	}
	t.expand(id)
	return nil
}

func (t *Tree) expand(id NodeID) {
	for _, cf := range domain.Children(t.slots[id].fragment) {
		c := t.alloc(id, cf)
		t.slots[id].children = append(t.slots[id].children, c)
		t.expand(c)
	}
}

// BindRoot wraps m in a node under the root and expands it.
func (t *Tree) BindRoot(m *domain.Mission) (NodeID, error) {
	if m == nil {
		return None, fmt.Errorf("bind root: %w", domain.ErrNilFragment)
	}
	if len(t.slots[Root].children) > 0 {
		return None, fmt.Errorf("bind root: document already loaded: %w", domain.ErrUnsupported)
	}
	id := t.alloc(Root, m)
	t.slots[Root].children = append(t.slots[Root].children, id)
	t.expand(id)
	return id, nil
}

// UnbindRoot drops the document node and its subtree without clearing the mission,
// and returns the mission it held.
func (t *Tree) UnbindRoot() *domain.Mission {
	m := t.Mission()
	for _, c := range t.slots[Root].children {
		t.sweep(c)
	}
	t.slots[Root].children = nil
	return m
}

// Rebind replaces the content of the fragment of id with a copy of src and rebuilds
// its subtree. The previous children are swept before the new ones are materialized.
func (t *Tree) Rebind(id NodeID, src domain.Fragment) error {
	s, err := t.get(id)
	if err != nil {
		return err
	}
	if s.fragment == nil || domain.Classify(src) == domain.KindUndefined {
		return fmt.Errorf("rebind node %d: %w", id, domain.ErrNilFragment)
	}
	if got, want := domain.Classify(src), domain.Classify(s.fragment); got != want {
		return fmt.Errorf("rebind %s node with %s: %w", want, got, domain.ErrKindMismatch)
	}
	for _, c := range s.children {
		t.sweep(c)
	}
	t.slots[id].children = nil
	if err := domain.CopyInto(t.slots[id].fragment, src); err != nil {
		return err
	}
	t.expand(id)
	return nil
}

// SetName renames the fragment of id, whatever its kind.
func (t *Tree) SetName(id NodeID, name string) error {
	s, err := t.get(id)
	if err != nil {
		return err
	}
	if s.fragment == nil {
		return fmt.Errorf("rename node %d: %w", id, domain.ErrNilFragment)
	}
	s.fragment.SetName(name)
	return nil
}

// Verify checks that every node mirrors its fragment: same child count, same order,
// same fragment identity, and two points under every line.
func (t *Tree) Verify() error {
	root := t.slots[Root]
	if root.fragment != nil || root.parent != None {
		return fmt.Errorf("root carries a fragment or parent: %w", ErrDesync)
	}
	if len(root.children) > 1 {
		return fmt.Errorf("root holds %d documents: %w", len(root.children), ErrDesync)
	}
	for _, c := range root.children {
		if err := t.verify(c, Root); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) verify(id, parent NodeID) error {
	s := t.slots[id]
	if !s.live || s.parent != parent {
		return fmt.Errorf("node %d: bad parent link: %w", id, ErrDesync)
	}
	if s.fragment == nil {
		return fmt.Errorf("node %d is empty: %w", id, ErrDesync)
	}
	want := domain.Children(s.fragment)
	if n := domain.ChildCount(s.fragment); n != len(want) {
		return fmt.Errorf("node %d: %d entries, %d set: %w", id, n, len(want), ErrDesync)
	}
	if len(s.children) != len(want) {
		return fmt.Errorf("node %d: %d children, fragment has %d: %w", id, len(s.children), len(want), ErrDesync)
	}
	if k := domain.Classify(s.fragment); k.IsLine() && len(s.children) != 2 {
		return fmt.Errorf("node %d: %s with %d points: %w", id, k, len(s.children), ErrDesync)
	}
	for i, c := range s.children {
		if t.slots[c].fragment != want[i] {
			return fmt.Errorf("node %d row %d: fragment mismatch: %w", id, i, ErrDesync)
		}
		if err := t.verify(c, id); err != nil {
			return err
		}
	}
	return nil
}

// String renders the tree as an indented outline, for debugging.
func (t *Tree) String() string {
	var b strings.Builder
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		s := t.slots[id]
		name := ""
		if s.fragment != nil {
			name = s.fragment.GetName()
		}
		fmt.Fprintf(&b, "%s%s %q\n", strings.Repeat("  ", depth), domain.Classify(s.fragment), name)
		for _, c := range s.children {
			walk(c, depth+1)
		}
	}
	for _, c := range t.slots[Root].children {
		walk(c, 0)
	}
	return b.String()
}
