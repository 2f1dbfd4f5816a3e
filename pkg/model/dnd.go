package model

import (
	"fmt"
	"sort"

	"github.com/aretw0/waypoint/internal/tree"
	"github.com/aretw0/waypoint/pkg/domain"
)

// MimeTypes lists the payload types the model produces and accepts.
func (m *Model) MimeTypes() []string {
	return []string{MimeType}
}

// MimeData packs the nodes at indexes, in the given order. Several columns of the same
// row yield a single item.
func (m *Model) MimeData(indexes []Index) (*MimeData, error) {
	ids, err := m.nodes(indexes)
	if err != nil {
		return nil, err
	}
	d := &MimeData{Items: make([]MimeItem, 0, len(ids))}
	for _, id := range ids {
		it, err := m.pack(id)
		if err != nil {
			return nil, err
		}
		d.Items = append(d.Items, it)
	}
	return d, nil
}

func (m *Model) nodes(indexes []Index) ([]tree.NodeID, error) {
	seen := make(map[tree.NodeID]bool, len(indexes))
	ids := make([]tree.NodeID, 0, len(indexes))
	for _, idx := range indexes {
		id, err := m.node(idx)
		if err != nil {
			return nil, err
		}
		if id == tree.Root {
			return nil, fmt.Errorf("drag root: %w", domain.ErrInvalidIndex)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// CanDrop reports whether parent accepts at least some of what is being dragged.
// It is a coarse check; Drop validates every item.
func (m *Model) CanDrop(data *MimeData, parent Index) bool {
	id, err := m.node(parent)
	if err != nil || data == nil || len(data.Items) == 0 {
		return false
	}
	return data.DragFeatures().Any(m.tree.Features(id))
}

// Drop inserts copies of the payload items under parent starting at row.
// Every item is decoded and checked against the target before anything is inserted;
// if one fails, the model is left untouched.
func (m *Model) Drop(data *MimeData, row int, parent Index) error {
	if err := m.begin("drop"); err != nil {
		return err
	}
	defer m.end()

	pid, err := m.node(parent)
	if err != nil {
		return err
	}
	scratch, err := m.prepareDrop(data, pid)
	if err != nil {
		return err
	}
	m.insertFragments(pid, row, scratch)
	return nil
}

func (m *Model) prepareDrop(data *MimeData, pid tree.NodeID) ([]domain.Fragment, error) {
	if data == nil || len(data.Items) == 0 {
		return nil, fmt.Errorf("drop: empty payload: %w", domain.ErrUnsupported)
	}
	if !data.DragFeatures().Any(m.tree.Features(pid)) {
		return nil, fmt.Errorf("drop %s on %s: %w", data.DragFeatures(), m.tree.Kind(pid), domain.ErrUnsupported)
	}
	scratch, err := m.unpackAll(data.Items)
	if err != nil {
		return nil, err
	}
	for i, f := range scratch {
		if err := m.authorize(pid, domain.Classify(f)); err != nil {
			return nil, fmt.Errorf("drop item %d: %w", i, err)
		}
	}
	if pid == tree.Root && len(scratch) > 1 {
		return nil, fmt.Errorf("drop %d documents: %w", len(scratch), domain.ErrUnsupported)
	}
	return scratch, nil
}

// insertFragments inserts already validated fragments under pid, bracketed once.
func (m *Model) insertFragments(pid tree.NodeID, row int, frags []domain.Fragment) {
	n := m.tree.ChildCount(pid)
	if row < 0 || row > n {
		row = n
	}
	pidx := m.indexOf(pid, ColumnComponent)
	last := row + len(frags) - 1
	m.beginInsert(pidx, row, last)
	for i, f := range frags {
		if err := m.restore(pid, row+i, f, ""); err != nil {
			m.logger.Error("insert failed after validation", "row", row+i, "err", err)
		}
	}
	m.endInsert(pidx, row, last)
}

// Move relocates the nodes at sources under parent, starting at row.
// Sources need the Delete feature and the target cannot be one of them or lie inside one.
// A source nested in another source moves with its ancestor.
func (m *Model) Move(sources []Index, row int, parent Index) error {
	if err := m.begin("move"); err != nil {
		return err
	}
	defer m.end()

	pid, err := m.node(parent)
	if err != nil {
		return err
	}
	ids, err := m.nodes(sources)
	if err != nil {
		return err
	}
	ids = m.outermost(ids)
	for _, id := range ids {
		if !m.tree.Features(id).Has(domain.FeatureDelete) {
			return fmt.Errorf("move %s: %w", m.tree.Kind(id), domain.ErrUnsupported)
		}
		if m.tree.IsAncestor(id, pid) {
			return fmt.Errorf("move %s into itself: %w", m.tree.Kind(id), domain.ErrInvalidMove)
		}
	}

	data := &MimeData{Items: make([]MimeItem, 0, len(ids))}
	for _, id := range ids {
		it, err := m.pack(id)
		if err != nil {
			return err
		}
		data.Items = append(data.Items, it)
	}
	scratch, err := m.prepareDrop(data, pid)
	if err != nil {
		return err
	}

	n := m.tree.ChildCount(pid)
	if row < 0 || row > n {
		row = n
	}

	// Remove from the bottom up so the recorded rows stay valid.
	type loc struct {
		parent tree.NodeID
		row    int
	}
	locs := make([]loc, len(ids))
	for i, id := range ids {
		locs[i] = loc{m.tree.Parent(id), m.tree.Row(id)}
		if locs[i].parent == pid && locs[i].row < row {
			row--
		}
	}
	sort.Slice(locs, func(i, j int) bool {
		if locs[i].parent != locs[j].parent {
			return locs[i].parent < locs[j].parent
		}
		return locs[i].row > locs[j].row
	})
	for _, l := range locs {
		if err := m.removeRows(l.parent, l.row, 1, false); err != nil {
			m.logger.Error("move: remove failed after validation", "row", l.row, "err", err)
		}
	}

	m.insertFragments(pid, row, scratch)
	return nil
}

// outermost drops every node that has an ancestor in ids.
func (m *Model) outermost(ids []tree.NodeID) []tree.NodeID {
	out := ids[:0:0]
	for _, id := range ids {
		nested := false
		for _, other := range ids {
			if other != id && m.tree.IsAncestor(other, id) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, id)
		}
	}
	return out
}
