package model_test

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/codec"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deviceMission() *domain.Mission {
	doc := scenarioMission()
	doc.Components = append(doc.Components, &domain.Component{Device: &domain.Device{Name: "D"}})
	return doc
}

func TestMimeData_RoundTrip(t *testing.T) {
	m := loaded(t, scenarioMission())
	point := at(t, m, 0, 0, 0)
	seg := at(t, m, 0, 0, 2)

	data, err := m.MimeData([]model.Index{seg, point, point.Sibling(model.ColumnName)})
	require.NoError(t, err)
	require.Len(t, data.Items, 2, "both columns of a row make one item")
	assert.Equal(t, domain.KindSegment, data.Items[0].Roles.Kind)
	assert.Equal(t, "P1", data.Items[1].Roles.Name)
	assert.Equal(t, 2, data.Items[0].Row)

	decoded, err := model.UnmarshalMimeData(data.Marshal())
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
	assert.Equal(t, domain.FeatureAddSegment|domain.FeatureAddPoint, decoded.DragFeatures())

	_, err = m.MimeData([]model.Index{{}})
	assert.ErrorIs(t, err, domain.ErrInvalidIndex)

	_, err = model.UnmarshalMimeData([]byte{0x0a, 0x05, 0x01})
	assert.ErrorIs(t, err, domain.ErrCodec)
}

func TestCanDrop(t *testing.T) {
	m := loaded(t, deviceMission())
	coll := at(t, m, 0, 0)
	point := at(t, m, 0, 0, 0)
	device := at(t, m, 0, 1)

	points, err := m.MimeData([]model.Index{point})
	require.NoError(t, err)
	devices, err := m.MimeData([]model.Index{device})
	require.NoError(t, err)
	mixed, err := m.MimeData([]model.Index{point, device})
	require.NoError(t, err)

	assert.True(t, m.CanDrop(points, coll))
	assert.True(t, m.CanDrop(points, device))
	assert.False(t, m.CanDrop(points, point))
	assert.False(t, m.CanDrop(devices, coll))
	assert.True(t, m.CanDrop(devices, at(t, m, 0)))
	assert.True(t, m.CanDrop(mixed, coll), "coarse check: some of the payload fits")
	assert.False(t, m.CanDrop(nil, coll))
}

func TestDrop_CopiesItems(t *testing.T) {
	doc := deviceMission()
	m := loaded(t, doc)
	device := at(t, m, 0, 1)

	data, err := m.MimeData([]model.Index{at(t, m, 0, 0, 2), at(t, m, 0, 0, 0)})
	require.NoError(t, err)
	require.NoError(t, m.Drop(data, 0, device))

	assert.Equal(t, []string{"S1", "P1"}, names(m, device))
	assert.Equal(t, []string{"SA", "SB"}, names(m, at(t, m, 0, 1, 0)))
	assert.Equal(t, 3, m.RowCount(at(t, m, 0, 0)), "drop copies")

	comps := doc.Components[1].Device.Components
	require.Len(t, comps, 2)
	assert.Equal(t, "S1", comps[0].Block.Line.Name)
	assert.Equal(t, "P1", comps[1].Block.Point.Name)
}

func TestDrop_AllOrNothing(t *testing.T) {
	doc := deviceMission()
	m := loaded(t, doc)
	coll := at(t, m, 0, 0)
	before := doc.Clone()

	mixed, err := m.MimeData([]model.Index{at(t, m, 0, 0, 0), at(t, m, 0, 1)})
	require.NoError(t, err)
	require.True(t, m.CanDrop(mixed, coll))

	var inserted int
	m.SetHooks(model.Hooks{OnRowsAboutToBeInserted: func(model.ChangeEvent) { inserted++ }})

	assert.ErrorIs(t, m.Drop(mixed, 0, coll), domain.ErrUnsupported)
	assert.Equal(t, before, doc)
	assert.Zero(t, inserted)

	corrupt, err := m.MimeData([]model.Index{at(t, m, 0, 0, 0), at(t, m, 0, 0, 1)})
	require.NoError(t, err)
	corrupt.Items[1].Roles.Fragment = []byte{0xff}
	assert.ErrorIs(t, m.Drop(corrupt, 0, coll), domain.ErrCodec)
	assert.Equal(t, before, doc)
	assert.Zero(t, inserted)
}

func TestDrop_IntoRoot(t *testing.T) {
	src := loaded(t, scenarioMission())
	data, err := src.MimeData([]model.Index{at(t, src, 0)})
	require.NoError(t, err)

	dst := model.New()
	require.True(t, dst.CanDrop(data, model.Index{}))
	require.NoError(t, dst.Drop(data, 0, model.Index{}))
	assert.Equal(t, src.Mission(), dst.Mission())

	assert.ErrorIs(t, dst.Drop(data, 0, model.Index{}), domain.ErrUnsupported)
}

func TestMove(t *testing.T) {
	doc := deviceMission()
	m := loaded(t, doc)
	device := at(t, m, 0, 1)

	require.NoError(t, m.Move([]model.Index{at(t, m, 0, 0, 0)}, -1, device))
	assert.Equal(t, []string{"R0", "S1"}, names(m, at(t, m, 0, 0)))
	assert.Equal(t, []string{"P1"}, names(m, at(t, m, 0, 1)))
	assert.Len(t, doc.Components[0].Collection.Blocks, 2)
	assert.Equal(t, "P1", doc.Components[1].Device.Components[0].Block.Point.Name)
}

func TestMove_WithinParent(t *testing.T) {
	m := loaded(t, scenarioMission())
	coll := at(t, m, 0, 0)

	require.NoError(t, m.Move([]model.Index{at(t, m, 0, 0, 0)}, 3, coll))
	assert.Equal(t, []string{"R0", "S1", "P1"}, names(m, coll))

	require.NoError(t, m.Move([]model.Index{at(t, m, 0, 0, 2)}, 0, coll))
	assert.Equal(t, []string{"P1", "R0", "S1"}, names(m, coll))
}

func TestMove_Rejected(t *testing.T) {
	doc := deviceMission()
	m := loaded(t, doc)
	before := doc.Clone()
	coll := at(t, m, 0, 0)
	rail := at(t, m, 0, 0, 1)

	assert.ErrorIs(t, m.Move([]model.Index{coll}, 0, rail), domain.ErrInvalidMove)
	assert.ErrorIs(t, m.Move([]model.Index{coll}, 0, coll), domain.ErrInvalidMove)
	assert.ErrorIs(t, m.Move([]model.Index{at(t, m, 0, 0, 1, 0)}, 0, coll), domain.ErrUnsupported, "line points stay")
	assert.ErrorIs(t, m.Move([]model.Index{at(t, m, 0, 1)}, 0, coll), domain.ErrUnsupported, "no devices in collections")
	assert.Equal(t, before, doc)
}

func TestMove_NestedSourcesMoveOnce(t *testing.T) {
	doc := deviceMission()
	m := loaded(t, doc)
	device := at(t, m, 0, 1)

	require.NoError(t, m.Move([]model.Index{at(t, m, 0, 0), at(t, m, 0, 0, 0)}, 0, device))
	assert.Equal(t, []string{"D"}, names(m, at(t, m, 0)))
	assert.Equal(t, []string{"Scenario"}, names(m, device))
	assert.Equal(t, 3, m.RowCount(at(t, m, 0, 0, 0)))
}

func TestJSONPayloadCodec(t *testing.T) {
	m := loaded(t, scenarioMission(), model.WithCodec(codec.JSON{}))
	coll := at(t, m, 0, 0)

	data, err := m.MimeData([]model.Index{at(t, m, 0, 0, 1)})
	require.NoError(t, err)
	assert.Contains(t, string(data.Items[0].Roles.Fragment), `"points"`)

	require.NoError(t, m.Drop(data, -1, coll))
	assert.Equal(t, []string{"P1", "R0", "S1", "R0"}, names(m, coll))
}

func payload(t *testing.T, f domain.Fragment) *model.MimeData {
	t.Helper()
	return payloadWith(t, codec.Binary{}, f)
}

func payloadWith(t *testing.T, c ports.Codec, f domain.Fragment) *model.MimeData {
	t.Helper()
	data, err := c.Marshal(f)
	require.NoError(t, err)
	k := domain.Classify(f)
	return &model.MimeData{Items: []model.MimeItem{{
		Roles: model.RoleMap{Kind: k, DragFeature: domain.AddFeature(k), Fragment: data},
	}}}
}

func TestDrop_RejectsMalformedFragments(t *testing.T) {
	tests := []struct {
		name     string
		parent   []int
		fragment domain.Fragment
	}{
		{name: "rail without points", parent: []int{0, 0}, fragment: &domain.Line{Name: "R", Type: domain.LineRail}},
		{name: "segment with three points", parent: []int{0, 0}, fragment: &domain.Line{
			Name: "S", Type: domain.LineSegment, Points: []*domain.Point{{}, {}, {}},
		}},
		{name: "collection with empty block", parent: []int{0}, fragment: &domain.Collection{
			Name: "C", Blocks: []*domain.Block{{}, {Point: &domain.Point{Name: "P"}}},
		}},
		{name: "device with empty component", parent: []int{0}, fragment: &domain.Device{
			Name: "D", Components: []*domain.Component{{}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := scenarioMission()
			m := loaded(t, doc)
			before := doc.Clone()
			parent := at(t, m, tt.parent...)
			rows := m.RowCount(parent)

			data := payload(t, tt.fragment)
			require.True(t, m.CanDrop(data, parent))
			assert.ErrorIs(t, m.Drop(data, -1, parent), domain.ErrMalformedDocument)
			assert.Equal(t, rows, m.RowCount(parent))
			assert.Equal(t, before, doc)
		})
	}
}
