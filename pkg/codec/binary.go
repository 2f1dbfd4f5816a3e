package codec

import (
	"fmt"

	"github.com/aretw0/waypoint/pkg/domain"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the fragment messages.
//
//	message Fragment   { oneof value { Mission mission = 1; Device device = 2; Collection collection = 3; Line line = 4; Point point = 5; } }
//	message Mission    { string name = 1; repeated Component components = 2; }
//	message Component  { oneof value { Device device = 1; Collection collection = 2; Block block = 3; } }
//	message Device     { string name = 1; repeated Component components = 2; }
//	message Collection { string name = 1; repeated Block blocks = 2; }
//	message Block      { oneof value { Point point = 1; Line line = 2; } }
//	message Line       { string name = 1; LineType type = 2; repeated Point points = 3; }
//	message Point      { string name = 1; }
const (
	envMission    protowire.Number = 1
	envDevice     protowire.Number = 2
	envCollection protowire.Number = 3
	envLine       protowire.Number = 4
	envPoint      protowire.Number = 5

	fieldName       protowire.Number = 1
	fieldComponents protowire.Number = 2
	fieldBlocks     protowire.Number = 2
	fieldLineType   protowire.Number = 2
	fieldPoints     protowire.Number = 3

	compDevice     protowire.Number = 1
	compCollection protowire.Number = 2
	compBlock      protowire.Number = 3

	blockPoint protowire.Number = 1
	blockLine  protowire.Number = 2
)

// Binary encodes fragments in protobuf wire format.
// The fragment is wrapped in an envelope whose field number carries its Go type,
// so Unmarshal can refuse bytes of another kind. Unknown fields are skipped.
type Binary struct{}

func (Binary) Name() string { return "binary" }

// Marshal encodes f and its subtree.
func (Binary) Marshal(f domain.Fragment) ([]byte, error) {
	var (
		num  protowire.Number
		body []byte
	)
	switch v := f.(type) {
	case *domain.Mission:
		num, body = envMission, appendMission(nil, v)
	case *domain.Device:
		num, body = envDevice, appendDevice(nil, v)
	case *domain.Collection:
		num, body = envCollection, appendCollection(nil, v)
	case *domain.Line:
		num, body = envLine, appendLine(nil, v)
	case *domain.Point:
		num, body = envPoint, appendPoint(nil, v)
	}
	if domain.Classify(f) == domain.KindUndefined {
		return nil, fmt.Errorf("binary marshal: %w", domain.ErrNilFragment)
	}
	b := protowire.AppendTag(nil, num, protowire.BytesType)
	return protowire.AppendBytes(b, body), nil
}

// Unmarshal decodes data into target. The target is replaced only when decoding succeeds
// and the decoded kind equals the kind of target.
func (Binary) Unmarshal(data []byte, target domain.Fragment) error {
	want := domain.Classify(target)
	if want == domain.KindUndefined {
		return fmt.Errorf("binary unmarshal: %w", domain.ErrNilFragment)
	}

	var decoded domain.Fragment
	err := consumeFields(data, func(num protowire.Number, v []byte) error {
		var err error
		switch num {
		case envMission:
			decoded, err = decodeMission(v)
		case envDevice:
			decoded, err = decodeDevice(v)
		case envCollection:
			decoded, err = decodeCollection(v)
		case envLine:
			decoded, err = decodeLine(v)
		case envPoint:
			decoded, err = decodePoint(v)
		}
		return err
	}, nil)
	if err != nil {
		return fmt.Errorf("binary unmarshal: %w: %w", domain.ErrCodec, err)
	}
	if decoded == nil {
		return fmt.Errorf("binary unmarshal: empty envelope: %w", domain.ErrCodec)
	}
	if got := domain.Classify(decoded); got != want {
		return fmt.Errorf("binary unmarshal %s into %s: %w", got, want, domain.ErrKindMismatch)
	}
	return domain.CopyInto(target, decoded)
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendMission(b []byte, m *domain.Mission) []byte {
	b = appendString(b, fieldName, m.Name)
	for _, c := range m.Components {
		b = appendMessage(b, fieldComponents, appendComponent(nil, c))
	}
	return b
}

func appendDevice(b []byte, d *domain.Device) []byte {
	b = appendString(b, fieldName, d.Name)
	for _, c := range d.Components {
		b = appendMessage(b, fieldComponents, appendComponent(nil, c))
	}
	return b
}

func appendComponent(b []byte, c *domain.Component) []byte {
	switch {
	case c == nil:
	case c.Device != nil:
		b = appendMessage(b, compDevice, appendDevice(nil, c.Device))
	case c.Collection != nil:
		b = appendMessage(b, compCollection, appendCollection(nil, c.Collection))
	case c.Block != nil:
		b = appendMessage(b, compBlock, appendBlock(nil, c.Block))
	}
	return b
}

func appendCollection(b []byte, c *domain.Collection) []byte {
	b = appendString(b, fieldName, c.Name)
	for _, blk := range c.Blocks {
		b = appendMessage(b, fieldBlocks, appendBlock(nil, blk))
	}
	return b
}

func appendBlock(b []byte, blk *domain.Block) []byte {
	switch {
	case blk == nil:
	case blk.Point != nil:
		b = appendMessage(b, blockPoint, appendPoint(nil, blk.Point))
	case blk.Line != nil:
		b = appendMessage(b, blockLine, appendLine(nil, blk.Line))
	}
	return b
}

func appendLine(b []byte, l *domain.Line) []byte {
	b = appendString(b, fieldName, l.Name)
	b = protowire.AppendTag(b, fieldLineType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(l.Type))
	for _, p := range l.Points {
		b = appendMessage(b, fieldPoints, appendPoint(nil, p))
	}
	return b
}

func appendPoint(b []byte, p *domain.Point) []byte {
	if p == nil {
		return b
	}
	return appendString(b, fieldName, p.Name)
}

// consumeFields walks the fields of one message. Length-delimited fields go to onBytes,
// varints to onVarint; anything else, and fields without a callback, is skipped.
func consumeFields(b []byte, onBytes func(protowire.Number, []byte) error, onVarint func(protowire.Number, uint64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case typ == protowire.BytesType && onBytes != nil:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := onBytes(num, v); err != nil {
				return err
			}
			b = b[n:]
		case typ == protowire.VarintType && onVarint != nil:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			if err := onVarint(num, v); err != nil {
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

func decodeMission(b []byte) (*domain.Mission, error) {
	m := &domain.Mission{}
	err := consumeFields(b, func(num protowire.Number, v []byte) error {
		switch num {
		case fieldName:
			m.Name = string(v)
		case fieldComponents:
			c, err := decodeComponent(v)
			if err != nil {
				return err
			}
			m.Components = append(m.Components, c)
		}
		return nil
	}, nil)
	return m, err
}

func decodeDevice(b []byte) (*domain.Device, error) {
	d := &domain.Device{}
	err := consumeFields(b, func(num protowire.Number, v []byte) error {
		switch num {
		case fieldName:
			d.Name = string(v)
		case fieldComponents:
			c, err := decodeComponent(v)
			if err != nil {
				return err
			}
			d.Components = append(d.Components, c)
		}
		return nil
	}, nil)
	return d, err
}

// decodeComponent keeps the last member seen, as protobuf does for a oneof.
func decodeComponent(b []byte) (*domain.Component, error) {
	c := &domain.Component{}
	err := consumeFields(b, func(num protowire.Number, v []byte) error {
		switch num {
		case compDevice:
			d, err := decodeDevice(v)
			if err != nil {
				return err
			}
			*c = domain.Component{Device: d}
		case compCollection:
			coll, err := decodeCollection(v)
			if err != nil {
				return err
			}
			*c = domain.Component{Collection: coll}
		case compBlock:
			blk, err := decodeBlock(v)
			if err != nil {
				return err
			}
			*c = domain.Component{Block: blk}
		}
		return nil
	}, nil)
	return c, err
}

func decodeCollection(b []byte) (*domain.Collection, error) {
	c := &domain.Collection{}
	err := consumeFields(b, func(num protowire.Number, v []byte) error {
		switch num {
		case fieldName:
			c.Name = string(v)
		case fieldBlocks:
			blk, err := decodeBlock(v)
			if err != nil {
				return err
			}
			c.Blocks = append(c.Blocks, blk)
		}
		return nil
	}, nil)
	return c, err
}

func decodeBlock(b []byte) (*domain.Block, error) {
	blk := &domain.Block{}
	err := consumeFields(b, func(num protowire.Number, v []byte) error {
		switch num {
		case blockPoint:
			p, err := decodePoint(v)
			if err != nil {
				return err
			}
			*blk = domain.Block{Point: p}
		case blockLine:
			l, err := decodeLine(v)
			if err != nil {
				return err
			}
			*blk = domain.Block{Line: l}
		}
		return nil
	}, nil)
	return blk, err
}

func decodeLine(b []byte) (*domain.Line, error) {
	l := &domain.Line{}
	err := consumeFields(b,
		func(num protowire.Number, v []byte) error {
			switch num {
			case fieldName:
				l.Name = string(v)
			case fieldPoints:
				p, err := decodePoint(v)
				if err != nil {
					return err
				}
				l.Points = append(l.Points, p)
			}
			return nil
		},
		func(num protowire.Number, x uint64) error {
			if num == fieldLineType {
				if x > uint64(domain.LineSegment) {
					return fmt.Errorf("line type %d: %w", x, domain.ErrMalformedDocument)
				}
				l.Type = domain.LineType(x)
			}
			return nil
		})
	return l, err
}

func decodePoint(b []byte) (*domain.Point, error) {
	p := &domain.Point{}
	err := consumeFields(b, func(num protowire.Number, v []byte) error {
		if num == fieldName {
			p.Name = string(v)
		}
		return nil
	}, nil)
	return p, err
}
