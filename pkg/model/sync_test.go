package model_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/aretw0/waypoint/pkg/codec"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/stretchr/testify/require"
)

// requireInSync walks the document and the projection together and checks that every
// node has one row per entry of its repeated field, with matching kind and name.
func requireInSync(t *testing.T, m *model.Model, msgAndArgs ...any) {
	t.Helper()
	doc := m.Mission()
	require.NotNil(t, doc, msgAndArgs...)
	require.Equal(t, 1, m.RowCount(model.Index{}), msgAndArgs...)

	var walk func(f domain.Fragment, idx model.Index)
	walk = func(f domain.Fragment, idx model.Index) {
		children := domain.Children(f)
		require.Equal(t, domain.ChildCount(f), len(children), msgAndArgs...)
		require.Equal(t, len(children), m.RowCount(idx), msgAndArgs...)
		if domain.Classify(f).IsLine() {
			require.Len(t, children, 2, msgAndArgs...)
		}
		for i, c := range children {
			ci, err := m.Index(i, model.ColumnComponent, idx)
			require.NoError(t, err, msgAndArgs...)
			require.Equal(t, domain.Classify(c), m.Data(ci, model.KindRole), msgAndArgs...)
			require.Equal(t, c.GetName(), m.Data(ci, model.EditRole), msgAndArgs...)
			walk(c, ci)
		}
	}
	top, err := m.Index(0, model.ColumnComponent, model.Index{})
	require.NoError(t, err, msgAndArgs...)
	walk(doc, top)
}

// allIndexes lists every node below the root, depth first.
func allIndexes(m *model.Model) []model.Index {
	var out []model.Index
	var walk func(parent model.Index)
	walk = func(parent model.Index) {
		for r := 0; r < m.RowCount(parent); r++ {
			idx, err := m.Index(r, model.ColumnComponent, parent)
			if err != nil {
				continue
			}
			out = append(out, idx)
			walk(idx)
		}
	}
	walk(model.Index{})
	return out
}

func malformedPayloads(t *testing.T, c ports.Codec) []*model.MimeData {
	return []*model.MimeData{
		payloadWith(t, c, &domain.Line{Name: "R", Type: domain.LineRail}),
		payloadWith(t, c, &domain.Line{Name: "S", Type: domain.LineSegment, Points: []*domain.Point{{}}}),
		payloadWith(t, c, &domain.Collection{Name: "C", Blocks: []*domain.Block{{}}}),
		payloadWith(t, c, &domain.Device{Name: "D", Components: []*domain.Component{{}}}),
	}
}

var rejections = []error{
	domain.ErrUnsupported,
	domain.ErrInvalidMove,
	domain.ErrInvalidRow,
	domain.ErrMalformedDocument,
}

func requireRejection(t *testing.T, err error, msgAndArgs ...any) {
	t.Helper()
	if err == nil {
		return
	}
	for _, want := range rejections {
		if errors.Is(err, want) {
			return
		}
	}
	require.FailNow(t, "unexpected error: "+err.Error(), msgAndArgs...)
}

// TestSyncInvariant_PublicMutations applies random public mutations, including drops and
// moves that round-trip through each codec, and checks the projection after every step.
func TestSyncInvariant_PublicMutations(t *testing.T) {
	kinds := []domain.Kind{domain.KindDevice, domain.KindCollection, domain.KindPoint, domain.KindRail, domain.KindSegment}
	codecs := []ports.Codec{codec.Binary{}, codec.JSON{}, codec.YAML{}}
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 9; round++ {
		c := codecs[round%len(codecs)]
		bad := malformedPayloads(t, c)
		m := loaded(t, deviceMission(), model.WithCodec(c))
		requireInSync(t, m, "round %d setup", round)

		for step := 0; step < 150; step++ {
			nodes := allIndexes(m)
			pick := func() model.Index { return nodes[rng.Intn(len(nodes))] }
			target := pick()

			var err error
			switch rng.Intn(7) {
			case 0:
				k := kinds[rng.Intn(len(kinds))]
				err = m.InsertRows(rng.Intn(m.RowCount(target)+2)-1, 1+rng.Intn(2), target, k)
			case 1:
				if n := m.RowCount(target); n > 0 {
					err = m.RemoveRows(rng.Intn(n), 1, target)
				}
			case 2:
				err = m.Swap(target)
			case 3:
				err = m.SetData(target, "renamed", model.EditRole)
			case 4:
				err = m.Move([]model.Index{pick(), pick()}, rng.Intn(m.RowCount(target)+2)-1, target)
			case 5:
				var data *model.MimeData
				data, err = m.MimeData([]model.Index{pick()})
				if err == nil {
					err = m.Drop(data, rng.Intn(m.RowCount(target)+2)-1, target)
				}
			case 6:
				err = m.Drop(bad[rng.Intn(len(bad))], -1, target)
			}
			requireRejection(t, err, "round %d step %d", round, step)
			requireInSync(t, m, "round %d step %d", round, step)
		}
	}
}
