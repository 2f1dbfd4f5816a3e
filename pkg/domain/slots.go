package domain

import "fmt"

// Accepts reports whether a fragment of kind parent has a slot for a child of kind child.
// KindUndefined as parent stands for the document root, whose only slot holds a Mission.
//
// Points under a line are accepted so that swap and unpack can rebuild a line's points;
// authorization still forbids adding them through the feature table.
func Accepts(parent, child Kind) bool {
	switch parent {
	case KindUndefined:
		return child == KindMission
	case KindMission:
		return child == KindDevice || child == KindCollection || child == KindPoint || child.IsLine()
	case KindDevice:
		return child == KindCollection || child == KindPoint || child.IsLine()
	case KindCollection:
		return child == KindPoint || child.IsLine()
	case KindRail, KindSegment:
		return child == KindPoint
	default:
		return false
	}
}

// Attach stores child at row in the repeated field of parent that holds its kind.
// A row outside [0, count] appends. The slot is chosen by the parent kind:
// a Point lands in components[].block.point under a Mission or Device, in
// blocks[].point under a Collection and in points[] under a Line.
func Attach(parent Fragment, row int, child Fragment) (int, error) {
	pk, ck := Classify(parent), Classify(child)
	if ck == KindUndefined {
		return -1, ErrNilFragment
	}
	if pk == KindUndefined || !Accepts(pk, ck) {
		return -1, fmt.Errorf("attach %s under %s: %w", ck, pk, ErrUnsupported)
	}

	switch p := parent.(type) {
	case *Mission:
		p.Components = InsertAt(p.Components, row, newComponent(child))
		return clampRow(row, len(p.Components)), nil
	case *Device:
		p.Components = InsertAt(p.Components, row, newComponent(child))
		return clampRow(row, len(p.Components)), nil
	case *Collection:
		p.Blocks = InsertAt(p.Blocks, row, newBlock(child))
		return clampRow(row, len(p.Blocks)), nil
	case *Line:
		p.Points = InsertAt(p.Points, row, child.(*Point))
		return clampRow(row, len(p.Points)), nil
	}
	return -1, fmt.Errorf("attach %s under %s: %w", ck, pk, ErrUnsupported)
}

// Detach removes the repeated-field entry at row from parent and returns the fragment it held.
func Detach(parent Fragment, row int) (Fragment, error) {
	var (
		removed Fragment
		err     error
	)
	switch p := parent.(type) {
	case *Mission:
		if p == nil {
			return nil, ErrNilFragment
		}
		if row >= 0 && row < len(p.Components) {
			removed = p.Components[row].Fragment()
		}
		p.Components, err = RemoveAt(p.Components, row)
	case *Device:
		if p == nil {
			return nil, ErrNilFragment
		}
		if row >= 0 && row < len(p.Components) {
			removed = p.Components[row].Fragment()
		}
		p.Components, err = RemoveAt(p.Components, row)
	case *Collection:
		if p == nil {
			return nil, ErrNilFragment
		}
		if row >= 0 && row < len(p.Blocks) {
			removed = p.Blocks[row].Fragment()
		}
		p.Blocks, err = RemoveAt(p.Blocks, row)
	case *Line:
		if p == nil {
			return nil, ErrNilFragment
		}
		if row >= 0 && row < len(p.Points) {
			removed = p.Points[row]
		}
		p.Points, err = RemoveAt(p.Points, row)
	default:
		return nil, fmt.Errorf("detach from %s: %w", Classify(parent), ErrUnsupported)
	}
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func newComponent(f Fragment) *Component {
	switch v := f.(type) {
	case *Device:
		return &Component{Device: v}
	case *Collection:
		return &Component{Collection: v}
	default:
		return &Component{Block: newBlock(f)}
	}
}

func newBlock(f Fragment) *Block {
	switch v := f.(type) {
	case *Point:
		return &Block{Point: v}
	case *Line:
		return &Block{Line: v}
	default:
		return &Block{}
	}
}

func clampRow(row, n int) int {
	if row < 0 || row >= n {
		return n - 1
	}
	return row
}
