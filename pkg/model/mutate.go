package model

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/tree"
	"github.com/aretw0/waypoint/pkg/domain"
)

// InsertRows creates count new fragments of kind k under parent, starting at row.
// A row outside [0, RowCount(parent)] appends. The parent needs the add feature of k.
func (m *Model) InsertRows(row, count int, parent Index, k domain.Kind) error {
	if err := m.begin("insert rows"); err != nil {
		return err
	}
	defer m.end()

	pid, err := m.node(parent)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("insert %d rows: %w", count, domain.ErrInvalidRow)
	}
	if err := m.authorize(pid, k); err != nil {
		return err
	}
	if pid == tree.Root && count > 1 {
		return fmt.Errorf("insert %d documents: %w", count, domain.ErrUnsupported)
	}

	n := m.tree.ChildCount(pid)
	if row < 0 || row > n {
		row = n
	}
	pidx := m.indexOf(pid, ColumnComponent)
	m.beginInsert(pidx, row, row+count-1)
	for i := 0; i < count; i++ {
		if _, err := m.tree.Create(pid, row+i, k); err != nil {
			// Create was authorized above; a failure here is a defect.
			m.abortInsert(pid, row, i)
			return err
		}
	}
	m.endInsert(pidx, row, row+count-1)
	return nil
}

// abortInsert removes the created rows of an insert that failed halfway. The announced
// range no longer matches the tree, so observers get a model reset instead of the
// closing insert notification.
func (m *Model) abortInsert(pid tree.NodeID, row, created int) {
	m.logger.Error("insert failed after authorization", "parent", pid, "row", row, "created", created)
	for i := created - 1; i >= 0; i-- {
		_ = m.tree.RemoveChild(pid, row+i)
	}
	m.emit(m.hooks.OnModelReset, ChangeEvent{})
}

// authorize checks that pid may receive a new child of kind k.
func (m *Model) authorize(pid tree.NodeID, k domain.Kind) error {
	need := domain.AddFeature(k)
	if need.IsEmpty() || !m.tree.Features(pid).Has(need) {
		return fmt.Errorf("add %s under %s: %w", k, m.tree.Kind(pid), domain.ErrUnsupported)
	}
	return m.tree.CanCreate(pid, k)
}

// RemoveRows removes count rows under parent, starting at row.
// Every removed node needs the Delete feature, except the document itself,
// which is removed from the root.
func (m *Model) RemoveRows(row, count int, parent Index) error {
	if err := m.begin("remove rows"); err != nil {
		return err
	}
	defer m.end()

	pid, err := m.node(parent)
	if err != nil {
		return err
	}
	return m.removeRows(pid, row, count, true)
}

func (m *Model) removeRows(pid tree.NodeID, row, count int, authorize bool) error {
	n := m.tree.ChildCount(pid)
	if count < 1 || row < 0 || row+count > n {
		return fmt.Errorf("remove rows [%d,%d) of %d: %w", row, row+count, n, domain.ErrInvalidRow)
	}
	if authorize && pid != tree.Root {
		for r := row; r < row+count; r++ {
			c, _ := m.tree.Child(pid, r)
			if !m.tree.Features(c).Has(domain.FeatureDelete) {
				return fmt.Errorf("remove %s at row %d: %w", m.tree.Kind(c), r, domain.ErrUnsupported)
			}
		}
	}

	pidx := m.indexOf(pid, ColumnComponent)
	m.beginRemove(pidx, row, row+count-1)
	for r := row + count - 1; r >= row; r-- {
		if err := m.tree.RemoveChild(pid, r); err != nil {
			m.logger.Error("remove failed after validation", "parent", pid, "row", r, "err", err)
		}
	}
	m.endRemove(pidx, row, row+count-1)
	return nil
}

// Swap reverses the children of the node at idx. It snapshots every child through the
// codec, removes all rows, inserts the same number of rows and restores the snapshots
// in reverse order. Indexes of the old children become stale.
func (m *Model) Swap(idx Index) error {
	if err := m.begin("swap"); err != nil {
		return err
	}
	defer m.end()

	id, err := m.node(idx)
	if err != nil {
		return err
	}
	if !m.tree.Features(id).Has(domain.FeatureSwap) {
		return fmt.Errorf("swap %s: %w", m.tree.Kind(id), domain.ErrUnsupported)
	}

	children := m.tree.Children(id)
	if len(children) < 2 {
		return nil
	}

	// Snapshot and decode up front so restoring cannot fail halfway.
	items := make([]MimeItem, len(children))
	for i, c := range children {
		item, err := m.pack(c)
		if err != nil {
			return err
		}
		items[i] = item
	}
	scratch, err := m.unpackAll(items)
	if err != nil {
		return err
	}

	n := len(children)
	if err := m.removeRows(id, 0, n, false); err != nil {
		return err
	}

	pidx := m.indexOf(id, ColumnComponent)
	m.beginInsert(pidx, 0, n-1)
	for row := 0; row < n; row++ {
		src := scratch[n-1-row]
		if err := m.restore(id, row, src, items[n-1-row].Roles.Name); err != nil {
			m.logger.Error("swap restore failed", "row", row, "err", err)
		}
	}
	m.endInsert(pidx, 0, n-1)
	m.logger.Debug("children reversed", "node", id, "count", n)
	return nil
}

// restore creates a node of the kind of src at row under pid and rebinds it to src.
func (m *Model) restore(pid tree.NodeID, row int, src domain.Fragment, name string) error {
	id, err := m.tree.InsertChild(pid, row)
	if err != nil {
		return err
	}
	if _, err := m.tree.CreateByKind(id, domain.Classify(src)); err != nil {
		m.tree.Discard(id)
		return err
	}
	if err := m.tree.Rebind(id, src); err != nil {
		return err
	}
	if name != "" {
		return m.tree.SetName(id, name)
	}
	return nil
}

// LoadDocument installs doc as the document of the model, replacing the current one.
// The model takes ownership of doc.
func (m *Model) LoadDocument(doc *domain.Mission) error {
	if err := m.begin("load document"); err != nil {
		return err
	}
	defer m.end()

	if doc == nil {
		return fmt.Errorf("load document: %w", domain.ErrNilFragment)
	}
	if doc == m.tree.Mission() {
		return fmt.Errorf("load document: already loaded: %w", domain.ErrUnsupported)
	}
	if m.tree.ChildCount(tree.Root) > 0 {
		if err := m.removeRows(tree.Root, 0, 1, false); err != nil {
			return err
		}
	}
	m.beginInsert(Index{}, 0, 0)
	_, err := m.tree.BindRoot(doc)
	m.endInsert(Index{}, 0, 0)
	if err != nil {
		return err
	}
	m.logger.Debug("document loaded", "name", doc.Name)
	return nil
}

// RemoveDocument clears the document slot. It is a no-op when the model is empty.
func (m *Model) RemoveDocument() error {
	if err := m.begin("remove document"); err != nil {
		return err
	}
	defer m.end()

	if m.tree.ChildCount(tree.Root) == 0 {
		return nil
	}
	return m.removeRows(tree.Root, 0, 1, false)
}

// Reset replaces the whole projection with doc, which may be nil, and emits a single
// model reset instead of row notifications. The previous document is released untouched.
func (m *Model) Reset(doc *domain.Mission) error {
	if err := m.begin("reset"); err != nil {
		return err
	}
	defer m.end()

	m.tree.UnbindRoot()
	if doc != nil {
		if _, err := m.tree.BindRoot(doc); err != nil {
			return err
		}
	}
	m.emit(m.hooks.OnModelReset, ChangeEvent{})
	return nil
}
