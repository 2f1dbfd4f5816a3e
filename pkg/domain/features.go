package domain

import "strings"

// Features is the set of operations permitted on a fragment.
type Features uint32

const (
	FeatureDelete Features = 1 << iota
	FeatureEdit
	FeatureSwap
	FeatureAddMission
	FeatureAddDevice
	FeatureAddCollection
	FeatureAddPoint
	FeatureAddRail
	FeatureAddSegment

	// FeatureAddLine accepts either line kind.
	FeatureAddLine = FeatureAddRail | FeatureAddSegment

	// FeatureAddAny is every insertion feature.
	FeatureAddAny = FeatureAddMission | FeatureAddDevice | FeatureAddCollection | FeatureAddPoint | FeatureAddLine
)

var featureNames = []struct {
	f    Features
	name string
}{
	{FeatureDelete, "delete"},
	{FeatureEdit, "edit"},
	{FeatureSwap, "swap"},
	{FeatureAddMission, "add-mission"},
	{FeatureAddDevice, "add-device"},
	{FeatureAddCollection, "add-collection"},
	{FeatureAddPoint, "add-point"},
	{FeatureAddRail, "add-rail"},
	{FeatureAddSegment, "add-segment"},
}

// Has reports whether every feature in want is present.
func (f Features) Has(want Features) bool {
	return want != 0 && f&want == want
}

// Any reports whether at least one feature in want is present.
func (f Features) Any(want Features) bool {
	return f&want != 0
}

// With returns f plus add.
func (f Features) With(add Features) Features {
	return f | add
}

// Without returns f minus drop.
func (f Features) Without(drop Features) Features {
	return f &^ drop
}

// Intersect returns the features present in both sets.
func (f Features) Intersect(other Features) Features {
	return f & other
}

// IsEmpty reports whether no feature is set.
func (f Features) IsEmpty() bool {
	return f == 0
}

func (f Features) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range featureNames {
		if f&fn.f != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// AddFeature returns the feature a parent must carry to accept a child of kind k.
// It is also the drag feature advertised for a fragment of kind k.
func AddFeature(k Kind) Features {
	switch k {
	case KindMission:
		return FeatureAddMission
	case KindDevice:
		return FeatureAddDevice
	case KindCollection:
		return FeatureAddCollection
	case KindRail:
		return FeatureAddRail
	case KindSegment:
		return FeatureAddSegment
	case KindPoint:
		return FeatureAddPoint
	default:
		return 0
	}
}

// Resolve computes the features of a fragment of kind k whose parent is of kind parent.
// interp only matters for collections.
func Resolve(k, parent Kind, interp Interpretation) Features {
	switch k {
	case KindUndefined:
		return FeatureAddMission
	case KindMission:
		return FeatureAddDevice | FeatureAddCollection | FeatureAddPoint | FeatureAddLine
	case KindDevice:
		return FeatureDelete | FeatureEdit | FeatureAddCollection | FeatureAddPoint | FeatureAddLine
	case KindCollection:
		f := FeatureDelete | FeatureEdit | FeatureAddPoint | FeatureAddLine
		if interp == Route || interp == Family {
			f |= FeatureSwap
		}
		return f
	case KindRail, KindSegment:
		return FeatureDelete | FeatureEdit | FeatureSwap
	case KindPoint:
		// Points owned by a line are structural.
		if parent.IsLine() {
			return FeatureEdit
		}
		return FeatureEdit | FeatureDelete
	default:
		return 0
	}
}
