package domain

import "fmt"

// Fragment is a typed part of a mission document.
// It is implemented only by *Mission, *Device, *Collection, *Line and *Point.
type Fragment interface {
	GetName() string
	SetName(name string)
	Kind() Kind
	isFragment()
}

// LineType distinguishes the two kinds of Line.
type LineType int

const (
	LineRail LineType = iota
	LineSegment
)

func (t LineType) String() string {
	if t == LineSegment {
		return "segment"
	}
	return "rail"
}

// Mission is the document root.
type Mission struct {
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Components []*Component `json:"components,omitempty" yaml:"components,omitempty"`
}

// Component is the repeated entry of a Mission or Device. Exactly one field is set.
type Component struct {
	Device     *Device     `json:"device,omitempty" yaml:"device,omitempty"`
	Collection *Collection `json:"collection,omitempty" yaml:"collection,omitempty"`
	Block      *Block      `json:"block,omitempty" yaml:"block,omitempty"`
}

// Device groups collections and blocks. It cannot contain another Device.
type Device struct {
	Name       string       `json:"name,omitempty" yaml:"name,omitempty"`
	Components []*Component `json:"components,omitempty" yaml:"components,omitempty"`
}

// Collection is an ordered list of blocks.
type Collection struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Blocks []*Block `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

// Block is the repeated entry of a Collection. Exactly one field is set.
type Block struct {
	Point *Point `json:"point,omitempty" yaml:"point,omitempty"`
	Line  *Line  `json:"line,omitempty" yaml:"line,omitempty"`
}

// Line is a rail or a segment between two points.
type Line struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type   LineType `json:"type,omitempty" yaml:"type,omitempty"`
	Points []*Point `json:"points,omitempty" yaml:"points,omitempty"`
}

// Point is a leaf.
type Point struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

func (m *Mission) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}
func (m *Mission) SetName(name string) { m.Name = name }
func (m *Mission) Kind() Kind          { return Classify(m) }
func (*Mission) isFragment()           {}

func (d *Device) GetName() string {
	if d == nil {
		return ""
	}
	return d.Name
}
func (d *Device) SetName(name string) { d.Name = name }
func (d *Device) Kind() Kind          { return Classify(d) }
func (*Device) isFragment()           {}

func (c *Collection) GetName() string {
	if c == nil {
		return ""
	}
	return c.Name
}
func (c *Collection) SetName(name string) { c.Name = name }
func (c *Collection) Kind() Kind          { return Classify(c) }
func (*Collection) isFragment()           {}

func (l *Line) GetName() string {
	if l == nil {
		return ""
	}
	return l.Name
}
func (l *Line) SetName(name string) { l.Name = name }
func (l *Line) Kind() Kind          { return Classify(l) }
func (*Line) isFragment()           {}

func (p *Point) GetName() string {
	if p == nil {
		return ""
	}
	return p.Name
}
func (p *Point) SetName(name string) { p.Name = name }
func (p *Point) Kind() Kind          { return Classify(p) }
func (*Point) isFragment()           {}

// Fragment returns the member set in c, or nil.
func (c *Component) Fragment() Fragment {
	switch {
	case c == nil:
		return nil
	case c.Device != nil:
		return c.Device
	case c.Collection != nil:
		return c.Collection
	default:
		return c.Block.Fragment()
	}
}

// Fragment returns the member set in b, or nil.
func (b *Block) Fragment() Fragment {
	switch {
	case b == nil:
		return nil
	case b.Point != nil:
		return b.Point
	case b.Line != nil:
		return b.Line
	default:
		return nil
	}
}

// NewFragment returns an empty fragment of kind k, or nil for KindUndefined.
func NewFragment(k Kind) Fragment {
	switch k {
	case KindMission:
		return &Mission{}
	case KindDevice:
		return &Device{}
	case KindCollection:
		return &Collection{}
	case KindRail:
		return &Line{Type: LineRail}
	case KindSegment:
		return &Line{Type: LineSegment}
	case KindPoint:
		return &Point{}
	default:
		return nil
	}
}

// Children returns the direct child fragments of f in document order.
// Components or blocks with no member set are skipped.
func Children(f Fragment) []Fragment {
	var out []Fragment
	switch v := f.(type) {
	case *Mission:
		if v == nil {
			return nil
		}
		for _, c := range v.Components {
			if cf := c.Fragment(); cf != nil {
				out = append(out, cf)
			}
		}
	case *Device:
		if v == nil {
			return nil
		}
		for _, c := range v.Components {
			if cf := c.Fragment(); cf != nil {
				out = append(out, cf)
			}
		}
	case *Collection:
		if v == nil {
			return nil
		}
		for _, b := range v.Blocks {
			if bf := b.Fragment(); bf != nil {
				out = append(out, bf)
			}
		}
	case *Line:
		if v == nil {
			return nil
		}
		for _, p := range v.Points {
			if p != nil {
				out = append(out, p)
			}
		}
	}
	return out
}

// ChildCount returns the length of the repeated field holding f's children.
func ChildCount(f Fragment) int {
	switch v := f.(type) {
	case *Mission:
		if v != nil {
			return len(v.Components)
		}
	case *Device:
		if v != nil {
			return len(v.Components)
		}
	case *Collection:
		if v != nil {
			return len(v.Blocks)
		}
	case *Line:
		if v != nil {
			return len(v.Points)
		}
	}
	return 0
}

// Clone returns a deep copy of f. Clone of a nil fragment is nil.
func Clone(f Fragment) Fragment {
	switch v := f.(type) {
	case *Mission:
		if v == nil {
			return nil
		}
		return v.Clone()
	case *Device:
		if v == nil {
			return nil
		}
		return v.Clone()
	case *Collection:
		if v == nil {
			return nil
		}
		return v.Clone()
	case *Line:
		if v == nil {
			return nil
		}
		return v.Clone()
	case *Point:
		if v == nil {
			return nil
		}
		return v.Clone()
	default:
		return nil
	}
}

func (m *Mission) Clone() *Mission {
	if m == nil {
		return nil
	}
	return &Mission{Name: m.Name, Components: cloneComponents(m.Components)}
}

func (d *Device) Clone() *Device {
	if d == nil {
		return nil
	}
	return &Device{Name: d.Name, Components: cloneComponents(d.Components)}
}

func (c *Collection) Clone() *Collection {
	if c == nil {
		return nil
	}
	out := &Collection{Name: c.Name}
	if c.Blocks != nil {
		out.Blocks = make([]*Block, len(c.Blocks))
		for i, b := range c.Blocks {
			out.Blocks[i] = b.Clone()
		}
	}
	return out
}

func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	return &Block{Point: b.Point.Clone(), Line: b.Line.Clone()}
}

func (l *Line) Clone() *Line {
	if l == nil {
		return nil
	}
	out := &Line{Name: l.Name, Type: l.Type}
	if l.Points != nil {
		out.Points = make([]*Point, len(l.Points))
		for i, p := range l.Points {
			out.Points[i] = p.Clone()
		}
	}
	return out
}

func (p *Point) Clone() *Point {
	if p == nil {
		return nil
	}
	return &Point{Name: p.Name}
}

func (c *Component) Clone() *Component {
	if c == nil {
		return nil
	}
	return &Component{Device: c.Device.Clone(), Collection: c.Collection.Clone(), Block: c.Block.Clone()}
}

func cloneComponents(in []*Component) []*Component {
	if in == nil {
		return nil
	}
	out := make([]*Component, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// Reset clears f in place. A Line keeps its Type so its kind does not change.
func Reset(f Fragment) {
	switch v := f.(type) {
	case *Mission:
		if v != nil {
			*v = Mission{}
		}
	case *Device:
		if v != nil {
			*v = Device{}
		}
	case *Collection:
		if v != nil {
			*v = Collection{}
		}
	case *Line:
		if v != nil {
			*v = Line{Type: v.Type}
		}
	case *Point:
		if v != nil {
			*v = Point{}
		}
	}
}

// CopyInto overwrites dst with a deep copy of src. Both must be the same Go type.
func CopyInto(dst, src Fragment) error {
	switch d := dst.(type) {
	case *Mission:
		s, ok := src.(*Mission)
		if !ok || d == nil || s == nil {
			return ErrKindMismatch
		}
		*d = *s.Clone()
	case *Device:
		s, ok := src.(*Device)
		if !ok || d == nil || s == nil {
			return ErrKindMismatch
		}
		*d = *s.Clone()
	case *Collection:
		s, ok := src.(*Collection)
		if !ok || d == nil || s == nil {
			return ErrKindMismatch
		}
		*d = *s.Clone()
	case *Line:
		s, ok := src.(*Line)
		if !ok || d == nil || s == nil {
			return ErrKindMismatch
		}
		*d = *s.Clone()
	case *Point:
		s, ok := src.(*Point)
		if !ok || d == nil || s == nil {
			return ErrKindMismatch
		}
		*d = *s.Clone()
	default:
		return ErrNilFragment
	}
	return nil
}

// MarshalText encodes t as "rail" or "segment".
func (t LineType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts "rail" or "segment"; an empty value is a rail.
func (t *LineType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "rail":
		*t = LineRail
	case "segment":
		*t = LineSegment
	default:
		return fmt.Errorf("line type %q: %w", b, ErrMalformedDocument)
	}
	return nil
}
