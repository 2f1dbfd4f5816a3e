package tree_test

import (
	"math/rand"
	"testing"

	"github.com/aretw0/waypoint/internal/tree"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioMission() *domain.Mission {
	return &domain.Mission{
		Name: "M",
		Components: []*domain.Component{
			{Collection: &domain.Collection{
				Name: "Scenario",
				Blocks: []*domain.Block{
					{Point: &domain.Point{Name: "P1"}},
					{Line: &domain.Line{Name: "R0", Type: domain.LineRail, Points: []*domain.Point{{Name: "RA"}, {Name: "RB"}}}},
					{Line: &domain.Line{Name: "S1", Type: domain.LineSegment, Points: []*domain.Point{{Name: "SA"}, {Name: "SB"}}}},
				},
			}},
		},
	}
}

func childNames(tr *tree.Tree, id tree.NodeID) []string {
	var names []string
	for _, c := range tr.Children(id) {
		names = append(names, tr.Fragment(c).GetName())
	}
	return names
}

func TestScenario_ExpandAndRemove(t *testing.T) {
	m := scenarioMission()
	tr := tree.New()

	mission, err := tr.BindRoot(m)
	require.NoError(t, err)
	require.NoError(t, tr.Verify())

	assert.Equal(t, 1, tr.ChildCount(tree.Root))
	assert.Equal(t, 1, tr.ChildCount(mission))

	coll, ok := tr.Child(mission, 0)
	require.True(t, ok)
	assert.Equal(t, domain.KindCollection, tr.Kind(coll))
	assert.Equal(t, 3, tr.ChildCount(coll))
	assert.Equal(t, domain.Scenario, tr.Interpretation(coll))

	rail, _ := tr.Child(coll, 1)
	assert.Equal(t, domain.KindRail, tr.Kind(rail))
	assert.Equal(t, []string{"RA", "RB"}, childNames(tr, rail))

	require.NoError(t, tr.RemoveChild(coll, 1))
	require.NoError(t, tr.Verify())

	assert.Equal(t, []string{"P1", "S1"}, childNames(tr, coll))
	blocks := m.Components[0].Collection.Blocks
	require.Len(t, blocks, 2)
	assert.Equal(t, "P1", blocks[0].Point.Name)
	assert.Equal(t, "S1", blocks[1].Line.Name)
}

func TestCreateByKind_ClassificationStability(t *testing.T) {
	parents := map[domain.Kind][]domain.Kind{
		domain.KindMission:    {domain.KindDevice, domain.KindCollection, domain.KindPoint, domain.KindRail, domain.KindSegment},
		domain.KindDevice:     {domain.KindCollection, domain.KindPoint, domain.KindRail, domain.KindSegment},
		domain.KindCollection: {domain.KindPoint, domain.KindRail, domain.KindSegment},
	}
	for pk, kinds := range parents {
		for _, k := range kinds {
			tr := tree.New()
			mission, err := tr.BindRoot(&domain.Mission{})
			require.NoError(t, err)

			parent := mission
			if pk != domain.KindMission {
				parent, err = tr.Create(mission, -1, pk)
				require.NoError(t, err)
			}

			id, err := tr.Create(parent, -1, k)
			require.NoError(t, err, "%s under %s", k, pk)
			assert.Equal(t, k, domain.Classify(tr.Fragment(id)))
			require.NoError(t, tr.Verify())
		}
	}
}

func TestCreateByKind_DefaultNames(t *testing.T) {
	tr := tree.New()
	mission, err := tr.BindRoot(&domain.Mission{})
	require.NoError(t, err)

	_, err = tr.Create(mission, -1, domain.KindPoint)
	require.NoError(t, err)
	rail, err := tr.Create(mission, -1, domain.KindRail)
	require.NoError(t, err)
	seg, err := tr.Create(mission, 0, domain.KindSegment)
	require.NoError(t, err)

	assert.Equal(t, "Rail 1", tr.Fragment(rail).GetName())
	assert.Equal(t, "Segment 0", tr.Fragment(seg).GetName())
	assert.Equal(t, []string{"RA", "RB"}, childNames(tr, rail))
	assert.Equal(t, []string{"SA", "SB"}, childNames(tr, seg))
	assert.Equal(t, []string{"Segment 0", "Point 0", "Rail 1"}, childNames(tr, mission))
	require.NoError(t, tr.Verify())
}

func TestCreateByKind_UnsupportedLeavesDocumentUntouched(t *testing.T) {
	m := scenarioMission()
	tr := tree.New()
	mission, err := tr.BindRoot(m)
	require.NoError(t, err)
	coll, _ := tr.Child(mission, 0)
	point, _ := tr.Child(coll, 0)
	before := m.Clone()
	nodes := tr.Len()

	empty, err := tr.InsertChild(point, -1)
	require.NoError(t, err)
	_, err = tr.CreateByKind(empty, domain.KindCollection)
	assert.ErrorIs(t, err, domain.ErrUnsupported)
	assert.Nil(t, tr.Fragment(empty), "node stays empty")
	tr.Discard(empty)

	_, err = tr.Create(coll, 0, domain.KindDevice)
	assert.ErrorIs(t, err, domain.ErrUnsupported)
	_, err = tr.Create(tree.Root, 0, domain.KindMission)
	assert.ErrorIs(t, err, domain.ErrUnsupported, "root slot is singular")

	assert.Equal(t, before, m)
	assert.Equal(t, nodes, tr.Len())
	require.NoError(t, tr.Verify())
}

func TestRemoveChild_RootClearsMission(t *testing.T) {
	m := scenarioMission()
	tr := tree.New()
	_, err := tr.BindRoot(m)
	require.NoError(t, err)

	require.NoError(t, tr.RemoveChild(tree.Root, 0))
	assert.Equal(t, 0, tr.ChildCount(tree.Root))
	assert.Empty(t, m.Name)
	assert.Empty(t, m.Components)
	assert.Equal(t, 1, tr.Len(), "only the root survives")
	assert.Nil(t, tr.Mission())

	id, err := tr.Create(tree.Root, 0, domain.KindMission)
	require.NoError(t, err)
	assert.Equal(t, "Mission 0", tr.Fragment(id).GetName())
}

func TestRemoveChild_InvalidRow(t *testing.T) {
	tr := tree.New()
	mission, err := tr.BindRoot(&domain.Mission{})
	require.NoError(t, err)

	assert.ErrorIs(t, tr.RemoveChild(mission, 0), domain.ErrInvalidRow)
	assert.ErrorIs(t, tr.RemoveChild(mission, -1), domain.ErrInvalidRow)
}

func TestRemoveChild_InvalidatesStaleIDs(t *testing.T) {
	tr := tree.New()
	mission, err := tr.BindRoot(&domain.Mission{})
	require.NoError(t, err)
	id, err := tr.Create(mission, -1, domain.KindRail)
	require.NoError(t, err)
	gen := tr.Generation(id)
	require.True(t, tr.Valid(id, gen))

	require.NoError(t, tr.RemoveChild(mission, 0))
	assert.False(t, tr.Valid(id, gen))

	reused, err := tr.Create(mission, -1, domain.KindPoint)
	require.NoError(t, err)
	assert.False(t, tr.Valid(id, gen) && reused == id)
}

func TestExpand_Twice(t *testing.T) {
	tr := tree.New()
	mission, err := tr.BindRoot(scenarioMission())
	require.NoError(t, err)

	assert.ErrorIs(t, tr.Expand(mission), domain.ErrAlreadyExpanded)
	assert.ErrorIs(t, tr.Expand(tree.Root), domain.ErrNilFragment)
}

func TestRebind_ReplacesSubtree(t *testing.T) {
	m := scenarioMission()
	tr := tree.New()
	mission, err := tr.BindRoot(m)
	require.NoError(t, err)
	coll, _ := tr.Child(mission, 0)
	nodes := tr.Len()

	src := &domain.Collection{Name: "Route", Blocks: []*domain.Block{
		{Point: &domain.Point{Name: "A"}},
		{Point: &domain.Point{Name: "B"}},
	}}
	require.NoError(t, tr.Rebind(coll, src))
	require.NoError(t, tr.Verify())

	assert.Equal(t, "Route", m.Components[0].Collection.Name)
	assert.Equal(t, []string{"A", "B"}, childNames(tr, coll))
	assert.Equal(t, domain.Route, tr.Interpretation(coll))
	assert.Equal(t, nodes-5, tr.Len())

	src.Blocks[0].Point.Name = "changed"
	assert.Equal(t, "A", m.Components[0].Collection.Blocks[0].Point.Name, "rebind copies")

	assert.ErrorIs(t, tr.Rebind(coll, &domain.Point{}), domain.ErrKindMismatch)
}

func TestFeatures_DerivedFromContext(t *testing.T) {
	tr := tree.New()
	mission, err := tr.BindRoot(scenarioMission())
	require.NoError(t, err)
	coll, _ := tr.Child(mission, 0)
	point, _ := tr.Child(coll, 0)
	rail, _ := tr.Child(coll, 1)
	railPoint, _ := tr.Child(rail, 0)

	assert.Equal(t, domain.FeatureAddMission, tr.Features(tree.Root))
	assert.True(t, tr.Features(point).Has(domain.FeatureDelete))
	assert.False(t, tr.Features(railPoint).Has(domain.FeatureDelete))
	assert.False(t, tr.Features(coll).Has(domain.FeatureSwap))

	require.NoError(t, tr.RemoveChild(coll, 2))
	require.NoError(t, tr.RemoveChild(coll, 1))
	assert.Equal(t, domain.Route, tr.Interpretation(coll))
	assert.True(t, tr.Features(coll).Has(domain.FeatureSwap))
}

func TestSetName(t *testing.T) {
	m := scenarioMission()
	tr := tree.New()
	mission, err := tr.BindRoot(m)
	require.NoError(t, err)

	require.NoError(t, tr.SetName(mission, "renamed"))
	assert.Equal(t, "renamed", m.Name)
	assert.ErrorIs(t, tr.SetName(tree.Root, "x"), domain.ErrNilFragment)
}

func TestIsAncestor(t *testing.T) {
	tr := tree.New()
	mission, err := tr.BindRoot(scenarioMission())
	require.NoError(t, err)
	coll, _ := tr.Child(mission, 0)
	rail, _ := tr.Child(coll, 1)

	assert.True(t, tr.IsAncestor(mission, rail))
	assert.True(t, tr.IsAncestor(rail, rail))
	assert.False(t, tr.IsAncestor(rail, coll))
}

// TestSyncInvariant_Randomized applies random insert/remove sequences and checks that every
// container node still mirrors its fragment after each step.
func TestSyncInvariant_Randomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	kinds := []domain.Kind{domain.KindDevice, domain.KindCollection, domain.KindPoint, domain.KindRail, domain.KindSegment}

	for round := 0; round < 20; round++ {
		tr := tree.New()
		_, err := tr.BindRoot(scenarioMission())
		require.NoError(t, err)

		for step := 0; step < 200; step++ {
			nodes := containers(tr)
			parent := nodes[rng.Intn(len(nodes))]

			if rng.Intn(3) == 0 && tr.ChildCount(parent) > 0 {
				require.NoError(t, tr.RemoveChild(parent, rng.Intn(tr.ChildCount(parent))))
			} else {
				k := kinds[rng.Intn(len(kinds))]
				_, err := tr.Create(parent, rng.Intn(tr.ChildCount(parent)+2)-1, k)
				if err != nil {
					require.ErrorIs(t, err, domain.ErrUnsupported)
				}
			}
			require.NoError(t, tr.Verify(), "round %d step %d", round, step)
		}
	}
}

func containers(tr *tree.Tree) []tree.NodeID {
	var out []tree.NodeID
	var walk func(id tree.NodeID)
	walk = func(id tree.NodeID) {
		if tr.Kind(id).IsContainer() {
			out = append(out, id)
		}
		for _, c := range tr.Children(id) {
			walk(c)
		}
	}
	walk(tree.Root)
	return out
}
