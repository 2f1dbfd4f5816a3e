package dsl

import "github.com/aretw0/waypoint/pkg/domain"

// DeviceBuilder provides a fluent API for filling a device.
type DeviceBuilder struct {
	device  *domain.Device
	builder *Builder
}

func (d *DeviceBuilder) add(c *domain.Component) {
	d.device.Components = append(d.device.Components, c)
}

// Point appends a point to the device.
func (d *DeviceBuilder) Point(name string) *DeviceBuilder {
	d.add(&domain.Component{Block: &domain.Block{Point: &domain.Point{Name: name}}})
	return d
}

// Rail appends a rail to the device.
func (d *DeviceBuilder) Rail(name string, points ...string) *DeviceBuilder {
	d.add(&domain.Component{Block: &domain.Block{Line: d.builder.line(domain.KindRail, name, points)}})
	return d
}

// Segment appends a segment to the device.
func (d *DeviceBuilder) Segment(name string, points ...string) *DeviceBuilder {
	d.add(&domain.Component{Block: &domain.Block{Line: d.builder.line(domain.KindSegment, name, points)}})
	return d
}

// Collection appends a collection to the device and returns its builder.
func (d *DeviceBuilder) Collection(name string) *CollectionBuilder {
	c := &domain.Collection{Name: name}
	d.add(&domain.Component{Collection: c})
	return &CollectionBuilder{collection: c, builder: d.builder}
}

// CollectionBuilder provides a fluent API for filling a collection.
type CollectionBuilder struct {
	collection *domain.Collection
	builder    *Builder
}

// Point appends a point to the collection.
func (c *CollectionBuilder) Point(name string) *CollectionBuilder {
	c.collection.Blocks = append(c.collection.Blocks, &domain.Block{Point: &domain.Point{Name: name}})
	return c
}

// Rail appends a rail to the collection.
func (c *CollectionBuilder) Rail(name string, points ...string) *CollectionBuilder {
	c.collection.Blocks = append(c.collection.Blocks, &domain.Block{Line: c.builder.line(domain.KindRail, name, points)})
	return c
}

// Segment appends a segment to the collection.
func (c *CollectionBuilder) Segment(name string, points ...string) *CollectionBuilder {
	c.collection.Blocks = append(c.collection.Blocks, &domain.Block{Line: c.builder.line(domain.KindSegment, name, points)})
	return c
}
