package model

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/internal/tree"
	"github.com/aretw0/waypoint/pkg/domain"
)

// Role selects which piece of data Data returns for a cell.
type Role int

const (
	// DisplayRole is the kind label in the Component column and the name in the Name column.
	DisplayRole Role = iota
	// EditRole is the editable name.
	EditRole
	// IconRole is the icon key.
	IconRole
	KindRole
	FeaturesRole
	// DragFeatureRole is the feature a drop target needs to accept the node.
	DragFeatureRole
	InterpretationRole
	// FragmentRole is the fragment packed with the model codec.
	FragmentRole
)

// ItemFlags tells a host which interactions a cell supports.
type ItemFlags uint8

const (
	ItemSelectable ItemFlags = 1 << iota
	ItemEnabled
	ItemEditable
	ItemDragEnabled
	ItemDropEnabled
)

// Has reports whether every flag in want is set.
func (f ItemFlags) Has(want ItemFlags) bool {
	return f&want == want
}

// Descriptor is what a presentation layer needs to draw a node and build its menus.
type Descriptor struct {
	Kind           domain.Kind
	KindLabel      string
	DisplayName    string
	IconKey        string
	Features       domain.Features
	Interpretation domain.Interpretation
}

// Descriptor returns the presentation data of the node at idx.
func (m *Model) Descriptor(idx Index) (Descriptor, error) {
	id, err := m.node(idx)
	if err != nil {
		return Descriptor{}, err
	}
	if id == tree.Root {
		return Descriptor{Features: m.tree.Features(id)}, nil
	}
	return m.describe(id), nil
}

func (m *Model) describe(id tree.NodeID) Descriptor {
	k := m.tree.Kind(id)
	interp := m.tree.Interpretation(id)
	d := Descriptor{
		Kind:           k,
		KindLabel:      k.String(),
		DisplayName:    m.tree.Fragment(id).GetName(),
		IconKey:        iconKey(k, m.tree.Kind(m.tree.Parent(id)), interp),
		Features:       m.tree.Features(id),
		Interpretation: interp,
	}
	if k == domain.KindCollection {
		d.KindLabel = interp.String()
	}
	return d
}

// iconKey names the icon of a node. Collections are drawn by interpretation and
// points owned by a line get the line's variant.
func iconKey(k, parent domain.Kind, interp domain.Interpretation) string {
	switch k {
	case domain.KindCollection:
		switch interp {
		case domain.Route:
			return "route"
		case domain.Family:
			return "family"
		default:
			return "scenario"
		}
	case domain.KindPoint:
		switch parent {
		case domain.KindRail:
			return "rail-point"
		case domain.KindSegment:
			return "segment-point"
		default:
			return "point"
		}
	case domain.KindUndefined:
		return ""
	default:
		return strings.ToLower(k.String())
	}
}

// Data returns the value of role for the cell at idx, or nil.
func (m *Model) Data(idx Index, role Role) any {
	id, err := m.node(idx)
	if err != nil || id == tree.Root {
		return nil
	}
	d := m.describe(id)
	switch role {
	case DisplayRole:
		if idx.column == ColumnName {
			return d.DisplayName
		}
		return d.KindLabel
	case EditRole:
		return d.DisplayName
	case IconRole:
		if idx.column != ColumnComponent {
			return nil
		}
		return d.IconKey
	case KindRole:
		return d.Kind
	case FeaturesRole:
		return d.Features
	case DragFeatureRole:
		return domain.AddFeature(d.Kind)
	case InterpretationRole:
		return d.Interpretation
	case FragmentRole:
		b, err := m.codec.Marshal(m.tree.Fragment(id))
		if err != nil {
			m.logger.Warn("pack failed", "node", id, "err", err)
			return nil
		}
		return b
	default:
		return nil
	}
}

// Flags returns the interactions supported by the cell at idx.
func (m *Model) Flags(idx Index) ItemFlags {
	id, err := m.node(idx)
	if err != nil {
		return 0
	}
	f := m.tree.Features(id)
	var flags ItemFlags
	if f.Any(domain.FeatureAddAny) {
		flags |= ItemDropEnabled
	}
	if id == tree.Root {
		return flags
	}
	flags |= ItemSelectable | ItemEnabled
	if idx.column == ColumnName && f.Has(domain.FeatureEdit) {
		flags |= ItemEditable
	}
	if m.tree.Kind(id) != domain.KindMission {
		flags |= ItemDragEnabled
	}
	return flags
}

// SetData renames the node at idx. The role must be EditRole or DisplayRole and the
// value a string; the node needs the Edit feature.
func (m *Model) SetData(idx Index, value any, role Role) error {
	if err := m.begin("set data"); err != nil {
		return err
	}
	defer m.end()

	id, err := m.node(idx)
	if err != nil {
		return err
	}
	if id == tree.Root {
		return fmt.Errorf("set data on root: %w", domain.ErrInvalidIndex)
	}
	if role != EditRole && role != DisplayRole {
		return fmt.Errorf("set data role %d: %w", role, domain.ErrUnsupported)
	}
	name, ok := value.(string)
	if !ok {
		return fmt.Errorf("set data with %T: %w", value, domain.ErrUnsupported)
	}
	if !m.tree.Features(id).Has(domain.FeatureEdit) {
		return fmt.Errorf("rename %s: %w", m.tree.Kind(id), domain.ErrUnsupported)
	}
	if err := m.tree.SetName(id, name); err != nil {
		return err
	}
	m.emit(m.hooks.OnDataChanged, ChangeEvent{Index: m.indexOf(id, ColumnName), Roles: []Role{DisplayRole, EditRole}})
	return nil
}
