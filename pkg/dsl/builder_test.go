package dsl_test

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Layout(t *testing.T) {
	b := dsl.New("Survey")
	b.Point("P0")
	b.Collection("Scenario").Point("P1").Rail("R0").Segment("S1", "start", "end")
	b.Device("Drone").Point("home").Collection("Route").Point("A").Point("B")

	m, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "Survey", m.Name)
	require.Len(t, m.Components, 3)
	assert.Equal(t, "P0", m.Components[0].Block.Point.Name)

	scenario := m.Components[1].Collection
	require.Len(t, scenario.Blocks, 3)
	assert.Equal(t, domain.KindRail, domain.Classify(scenario.Blocks[1].Line))
	assert.Equal(t, "RA", scenario.Blocks[1].Line.Points[0].Name)
	assert.Equal(t, domain.KindSegment, domain.Classify(scenario.Blocks[2].Line))
	assert.Equal(t, "end", scenario.Blocks[2].Line.Points[1].Name)

	drone := m.Components[2].Device
	require.Len(t, drone.Components, 2)
	assert.Equal(t, "home", drone.Components[0].Block.Point.Name)
	assert.Len(t, drone.Components[1].Collection.Blocks, 2)
}

func TestBuilder_BuildReturnsCopy(t *testing.T) {
	b := dsl.New("M")
	first := b.Point("P").MustBuild()
	second := b.Point("Q").MustBuild()

	assert.Len(t, first.Components, 1)
	assert.Len(t, second.Components, 2)
}

func TestBuilder_BadLine(t *testing.T) {
	b := dsl.New("M")
	b.Rail("R", "only-one")

	_, err := b.Build()
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Panics(t, func() { b.MustBuild() })
}

func TestTemplate(t *testing.T) {
	m := dsl.Template()
	assert.Equal(t, dsl.TemplateName, m.Name)
	require.Len(t, m.Components, 6)

	kinds := func(c *domain.Collection) []domain.Kind {
		var out []domain.Kind
		for _, f := range domain.Children(c) {
			out = append(out, domain.Classify(f))
		}
		return out
	}
	assert.Equal(t, domain.Scenario, domain.Interpret(kinds(m.Components[1].Collection)))
	assert.Equal(t, domain.Route, domain.Interpret(kinds(m.Components[3].Collection)))
	assert.Equal(t, domain.Family, domain.Interpret(kinds(m.Components[5].Collection)))
	assert.Equal(t, "J3B", m.Components[5].Collection.Blocks[2].Line.Points[1].Name)

	assert.NotSame(t, m, dsl.Template())
}
