package dsl

import (
	"fmt"

	"github.com/aretw0/waypoint/internal/tree"
	"github.com/aretw0/waypoint/internal/validator"
	"github.com/aretw0/waypoint/pkg/domain"
)

// Builder manages the mission construction.
type Builder struct {
	mission *domain.Mission
	errs    []error
}

// New creates a builder for a mission named name.
func New(name string) *Builder {
	return &Builder{mission: &domain.Mission{Name: name}}
}

func (b *Builder) add(c *domain.Component) {
	b.mission.Components = append(b.mission.Components, c)
}

// Point appends a point to the mission.
func (b *Builder) Point(name string) *Builder {
	b.add(&domain.Component{Block: &domain.Block{Point: &domain.Point{Name: name}}})
	return b
}

// Rail appends a rail to the mission. See line for the points argument.
func (b *Builder) Rail(name string, points ...string) *Builder {
	b.add(&domain.Component{Block: &domain.Block{Line: b.line(domain.KindRail, name, points)}})
	return b
}

// Segment appends a segment to the mission.
func (b *Builder) Segment(name string, points ...string) *Builder {
	b.add(&domain.Component{Block: &domain.Block{Line: b.line(domain.KindSegment, name, points)}})
	return b
}

// Collection appends a collection to the mission and returns its builder.
func (b *Builder) Collection(name string) *CollectionBuilder {
	c := &domain.Collection{Name: name}
	b.add(&domain.Component{Collection: c})
	return &CollectionBuilder{collection: c, builder: b}
}

// Device appends a device to the mission and returns its builder.
func (b *Builder) Device(name string) *DeviceBuilder {
	d := &domain.Device{Name: name}
	b.add(&domain.Component{Device: d})
	return &DeviceBuilder{device: d, builder: b}
}

// line makes a line of kind k. Without points it uses the default point names;
// otherwise exactly two names are expected.
func (b *Builder) line(k domain.Kind, name string, points []string) *domain.Line {
	if len(points) == 0 {
		names := tree.LinePointNames(k)
		points = names[:]
	} else if len(points) != 2 {
		b.errs = append(b.errs, fmt.Errorf("%s %q: %d point names, want 2", k, name, len(points)))
	}
	typ := domain.LineRail
	if k == domain.KindSegment {
		typ = domain.LineSegment
	}
	l := &domain.Line{Name: name, Type: typ}
	for _, p := range points {
		l.Points = append(l.Points, &domain.Point{Name: p})
	}
	return l
}

// Build validates the document and returns a copy of it, so the builder can go on.
func (b *Builder) Build() (*domain.Mission, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, b.errs[0])
	}
	if err := validator.ValidateMission(b.mission); err != nil {
		return nil, err
	}
	return b.mission.Clone(), nil
}

// MustBuild is like Build but panics on error. It is meant for fixtures.
func (b *Builder) MustBuild() *domain.Mission {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
