package model

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/tree"
	"github.com/aretw0/waypoint/internal/validator"
	"github.com/aretw0/waypoint/pkg/domain"
	"google.golang.org/protobuf/encoding/protowire"
)

// MimeType is the media type of an encoded drag payload.
const MimeType = "application/x-waypoint-items"

// RoleMap is the packed state of one dragged node.
type RoleMap struct {
	Kind        domain.Kind
	DragFeature domain.Features
	Features    domain.Features
	Name        string
	Fragment    []byte
}

// MimeItem is one entry of a drag payload.
type MimeItem struct {
	Row, Column int
	Roles       RoleMap
}

// MimeData is an ordered drag payload. Order is the reconstruction order on drop.
type MimeData struct {
	Items []MimeItem
}

// DragFeatures ORs the drag features of every item.
func (d *MimeData) DragFeatures() domain.Features {
	var f domain.Features
	if d == nil {
		return f
	}
	for _, it := range d.Items {
		f = f.With(it.Roles.DragFeature)
	}
	return f
}

// Wire layout:
//
//	message MimeData { repeated Item items = 1; }
//	message Item     { int64 row = 1; int64 column = 2; RoleMap roles = 3; }
//	message RoleMap  { int32 kind = 1; uint32 drag_feature = 2; uint32 features = 3; string name = 4; bytes fragment = 5; }
const (
	mimeItems protowire.Number = 1

	itemRow    protowire.Number = 1
	itemColumn protowire.Number = 2
	itemRoles  protowire.Number = 3

	roleKind        protowire.Number = 1
	roleDragFeature protowire.Number = 2
	roleFeatures    protowire.Number = 3
	roleName        protowire.Number = 4
	roleFragment    protowire.Number = 5
)

// Marshal encodes the payload in protobuf wire format.
func (d *MimeData) Marshal() []byte {
	var b []byte
	for _, it := range d.Items {
		var item []byte
		item = protowire.AppendTag(item, itemRow, protowire.VarintType)
		item = protowire.AppendVarint(item, protowire.EncodeZigZag(int64(it.Row)))
		item = protowire.AppendTag(item, itemColumn, protowire.VarintType)
		item = protowire.AppendVarint(item, protowire.EncodeZigZag(int64(it.Column)))
		item = protowire.AppendTag(item, itemRoles, protowire.BytesType)
		item = protowire.AppendBytes(item, it.Roles.marshal())

		b = protowire.AppendTag(b, mimeItems, protowire.BytesType)
		b = protowire.AppendBytes(b, item)
	}
	return b
}

func (r RoleMap) marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, roleKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Kind))
	b = protowire.AppendTag(b, roleDragFeature, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.DragFeature))
	b = protowire.AppendTag(b, roleFeatures, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(r.Features))
	b = protowire.AppendTag(b, roleName, protowire.BytesType)
	b = protowire.AppendString(b, r.Name)
	b = protowire.AppendTag(b, roleFragment, protowire.BytesType)
	b = protowire.AppendBytes(b, r.Fragment)
	return b
}

// UnmarshalMimeData decodes a payload produced by MimeData.Marshal.
func UnmarshalMimeData(b []byte) (*MimeData, error) {
	d := &MimeData{}
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num != mimeItems || typ != protowire.BytesType {
			return nil
		}
		it, err := unmarshalItem(v)
		if err != nil {
			return err
		}
		d.Items = append(d.Items, it)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mime data: %w: %w", domain.ErrCodec, err)
	}
	return d, nil
}

func unmarshalItem(b []byte) (MimeItem, error) {
	var it MimeItem
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error {
		switch {
		case num == itemRow && typ == protowire.VarintType:
			it.Row = int(protowire.DecodeZigZag(x))
		case num == itemColumn && typ == protowire.VarintType:
			it.Column = int(protowire.DecodeZigZag(x))
		case num == itemRoles && typ == protowire.BytesType:
			r, err := unmarshalRoles(v)
			if err != nil {
				return err
			}
			it.Roles = r
		}
		return nil
	})
	return it, err
}

func unmarshalRoles(b []byte) (RoleMap, error) {
	var r RoleMap
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error {
		switch {
		case num == roleKind && typ == protowire.VarintType:
			r.Kind = domain.Kind(x)
		case num == roleDragFeature && typ == protowire.VarintType:
			r.DragFeature = domain.Features(x)
		case num == roleFeatures && typ == protowire.VarintType:
			r.Features = domain.Features(x)
		case num == roleName && typ == protowire.BytesType:
			r.Name = string(v)
		case num == roleFragment && typ == protowire.BytesType:
			r.Fragment = append([]byte(nil), v...)
		}
		return nil
	})
	return r, err
}

// walk calls fn for each field of a message; unknown wire types are skipped.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, v []byte, x uint64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			x, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, nil, x); err != nil {
				return err
			}
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := fn(num, typ, v, 0); err != nil {
				return err
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// pack captures the role map of a node.
func (m *Model) pack(id tree.NodeID) (MimeItem, error) {
	f := m.tree.Fragment(id)
	data, err := m.codec.Marshal(f)
	if err != nil {
		return MimeItem{}, fmt.Errorf("pack %s: %w", m.tree.Kind(id), err)
	}
	k := m.tree.Kind(id)
	return MimeItem{
		Row:    m.tree.Row(id),
		Column: ColumnComponent,
		Roles: RoleMap{
			Kind:        k,
			DragFeature: domain.AddFeature(k),
			Features:    m.tree.Features(id),
			Name:        f.GetName(),
			Fragment:    data,
		},
	}, nil
}

// unpackAll decodes every item into a fresh fragment of its kind and checks its structure.
// Nothing in the model is touched.
func (m *Model) unpackAll(items []MimeItem) ([]domain.Fragment, error) {
	out := make([]domain.Fragment, len(items))
	for i, it := range items {
		f := domain.NewFragment(it.Roles.Kind)
		if f == nil {
			return nil, fmt.Errorf("unpack item %d: kind %d: %w", i, it.Roles.Kind, domain.ErrCodec)
		}
		if err := m.codec.Unmarshal(it.Roles.Fragment, f); err != nil {
			return nil, fmt.Errorf("unpack item %d: %w", i, err)
		}
		if err := validator.ValidateFragment(f); err != nil {
			return nil, fmt.Errorf("unpack item %d: %w", i, err)
		}
		if it.Roles.Name != "" {
			f.SetName(it.Roles.Name)
		}
		out[i] = f
	}
	return out, nil
}
