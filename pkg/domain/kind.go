package domain

import "strings"

// Kind identifies the semantic type of a fragment.
type Kind int

const (
	// KindUndefined is reported for a missing fragment; it is the sentinel root's kind.
	KindUndefined Kind = iota
	KindMission
	KindDevice
	KindCollection
	KindRail
	KindSegment
	KindPoint
)

// Kinds lists every concrete kind, in menu order.
var Kinds = []Kind{KindMission, KindDevice, KindCollection, KindRail, KindSegment, KindPoint}

func (k Kind) String() string {
	switch k {
	case KindMission:
		return "Mission"
	case KindDevice:
		return "Device"
	case KindCollection:
		return "Collection"
	case KindRail:
		return "Rail"
	case KindSegment:
		return "Segment"
	case KindPoint:
		return "Point"
	default:
		return "Undefined"
	}
}

// ParseKind returns the kind named s (case-insensitive), or KindUndefined.
func ParseKind(s string) Kind {
	for _, k := range Kinds {
		if strings.EqualFold(k.String(), s) {
			return k
		}
	}
	return KindUndefined
}

// IsLine reports whether k is one of the two line kinds.
func (k Kind) IsLine() bool {
	return k == KindRail || k == KindSegment
}

// IsContainer reports whether fragments of kind k hold a repeated child field.
func (k Kind) IsContainer() bool {
	return k == KindMission || k == KindDevice || k == KindCollection
}

// Interpretation is the derived reading of a Collection from the kinds of its children.
type Interpretation int

const (
	Scenario Interpretation = iota
	Route
	Family
)

func (i Interpretation) String() string {
	switch i {
	case Route:
		return "Route"
	case Family:
		return "Family"
	default:
		return "Scenario"
	}
}

// Classify returns the kind of f. A nil fragment, including a typed nil pointer,
// classifies as KindUndefined.
func Classify(f Fragment) Kind {
	switch v := f.(type) {
	case *Mission:
		if v == nil {
			return KindUndefined
		}
		return KindMission
	case *Device:
		if v == nil {
			return KindUndefined
		}
		return KindDevice
	case *Collection:
		if v == nil {
			return KindUndefined
		}
		return KindCollection
	case *Line:
		if v == nil {
			return KindUndefined
		}
		if v.Type == LineSegment {
			return KindSegment
		}
		return KindRail
	case *Point:
		if v == nil {
			return KindUndefined
		}
		return KindPoint
	default:
		return KindUndefined
	}
}

// Interpret derives a Collection's interpretation from the kinds of its current children.
//   - A Route is a non-empty collection of Points.
//   - A Family is a non-empty collection of Rails.
//   - Anything else, including an empty collection, is a Scenario.
func Interpret(children []Kind) Interpretation {
	if len(children) == 0 {
		return Scenario
	}
	route, family := true, true
	for _, k := range children {
		route = route && k == KindPoint
		family = family && k == KindRail
	}
	switch {
	case route:
		return Route
	case family:
		return Family
	default:
		return Scenario
	}
}
