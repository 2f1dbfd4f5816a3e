package session

import (
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
)

// Add appends a new node of kind k under parent and returns its index.
func (m *Manager) Add(parent model.Index, k domain.Kind) (model.Index, error) {
	if err := m.model.InsertRows(-1, 1, parent, k); err != nil {
		return model.Index{}, err
	}
	return m.model.Index(m.model.RowCount(parent)-1, model.ColumnComponent, parent)
}

// AddPoint appends a point under parent.
func (m *Manager) AddPoint(parent model.Index) (model.Index, error) {
	return m.Add(parent, domain.KindPoint)
}

// AddRail appends a rail, with its two points, under parent.
func (m *Manager) AddRail(parent model.Index) (model.Index, error) {
	return m.Add(parent, domain.KindRail)
}

// AddSegment appends a segment, with its two points, under parent.
func (m *Manager) AddSegment(parent model.Index) (model.Index, error) {
	return m.Add(parent, domain.KindSegment)
}

// AddCollection appends a collection under parent.
func (m *Manager) AddCollection(parent model.Index) (model.Index, error) {
	return m.Add(parent, domain.KindCollection)
}

// AddDevice appends a device under parent.
func (m *Manager) AddDevice(parent model.Index) (model.Index, error) {
	return m.Add(parent, domain.KindDevice)
}

// RemoveIndex removes the node at idx. Removing the mission itself clears the document.
func (m *Manager) RemoveIndex(idx model.Index) error {
	// Rows recorded in idx go stale when siblings move; the path is current.
	path, err := m.model.Path(idx)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return domain.ErrInvalidIndex
	}
	return m.model.RemoveRows(path[len(path)-1], 1, m.model.Parent(idx))
}

// SwapIndex reverses the children of the node at idx.
func (m *Manager) SwapIndex(idx model.Index) error {
	return m.model.Swap(idx)
}

// Rename sets the name of the node at idx.
func (m *Manager) Rename(idx model.Index, name string) error {
	return m.model.SetData(idx.Sibling(model.ColumnName), name, model.EditRole)
}

// MoveIndex moves the node at src under parent at row. A negative row appends.
func (m *Manager) MoveIndex(src model.Index, row int, parent model.Index) error {
	return m.model.Move([]model.Index{src}, row, parent)
}
