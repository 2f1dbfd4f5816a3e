// Package validator checks the structure of a mission document before it is loaded.
package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
)

// ValidateMission walks the document breadth first and reports every structural defect:
// empty or ambiguous oneofs, misplaced kinds and lines without exactly two points.
// The returned error wraps domain.ErrMalformedDocument.
func ValidateMission(m *domain.Mission) error {
	if m == nil {
		return fmt.Errorf("nil mission: %w", domain.ErrMalformedDocument)
	}
	return ValidateFragment(m)
}

// ValidateFragment applies the checks of ValidateMission to the subtree rooted at f,
// which may be of any kind.
func ValidateFragment(f domain.Fragment) error {
	if domain.Classify(f) == domain.KindUndefined {
		return fmt.Errorf("empty fragment: %w", domain.ErrMalformedDocument)
	}

	type entry struct {
		path     string
		fragment domain.Fragment
	}
	queue := []entry{{path: "/", fragment: f}}

	var errors []string
	report := func(path, format string, args ...any) {
		errors = append(errors, path+": "+fmt.Sprintf(format, args...))
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		parent := domain.Classify(cur.fragment)

		visit := func(row int, f domain.Fragment) {
			path := fmt.Sprintf("%s%d/", cur.path, row)
			k := domain.Classify(f)
			if !domain.Accepts(parent, k) {
				report(path, "%s cannot hold %s", parent, k)
				return
			}
			queue = append(queue, entry{path: path, fragment: f})
		}

		switch f := cur.fragment.(type) {
		case *domain.Mission:
			checkComponents(cur.path, f.Components, visit, report)
		case *domain.Device:
			checkComponents(cur.path, f.Components, visit, report)
		case *domain.Collection:
			for row, b := range f.Blocks {
				frag, ok := blockFragment(b)
				if !ok {
					report(fmt.Sprintf("%s%d/", cur.path, row), "block must hold exactly one of point or line")
					continue
				}
				visit(row, frag)
			}
		case *domain.Line:
			if f.Type != domain.LineRail && f.Type != domain.LineSegment {
				report(cur.path, "unknown line type %d", f.Type)
			}
			if len(f.Points) != 2 {
				report(cur.path, "%s %q has %d points, want 2", domain.Classify(f), f.Name, len(f.Points))
			}
			for row, p := range f.Points {
				if p == nil {
					report(fmt.Sprintf("%s%d/", cur.path, row), "nil point")
				}
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%w: found %d errors:\n- %s", domain.ErrMalformedDocument, len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}

func checkComponents(path string, comps []*domain.Component, visit func(int, domain.Fragment), report func(string, string, ...any)) {
	for row, c := range comps {
		frag, ok := componentFragment(c)
		if !ok {
			report(fmt.Sprintf("%s%d/", path, row), "component must hold exactly one of device, collection or block")
			continue
		}
		visit(row, frag)
	}
}

func componentFragment(c *domain.Component) (domain.Fragment, bool) {
	if c == nil {
		return nil, false
	}
	set := 0
	var f domain.Fragment
	if c.Device != nil {
		set++
		f = c.Device
	}
	if c.Collection != nil {
		set++
		f = c.Collection
	}
	if c.Block != nil {
		set++
		bf, ok := blockFragment(c.Block)
		if !ok {
			return nil, false
		}
		f = bf
	}
	return f, set == 1
}

func blockFragment(b *domain.Block) (domain.Fragment, bool) {
	if b == nil {
		return nil, false
	}
	switch {
	case b.Point != nil && b.Line == nil:
		return b.Point, true
	case b.Line != nil && b.Point == nil:
		return b.Line, true
	}
	return nil, false
}
