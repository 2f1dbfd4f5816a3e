package domain_test

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveAt_PreservesOrder(t *testing.T) {
	s := []string{"a", "b", "c", "d", "e"}
	backing := s

	s, err := domain.RemoveAt(s, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d", "e"}, s)
	assert.Equal(t, "", backing[4], "vacated slot is zeroed")

	s, err = domain.RemoveAt(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, s)

	s, err = domain.RemoveAt(s, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, s)
}

func TestRemoveAt_OutOfRange(t *testing.T) {
	s := []int{1, 2}
	_, err := domain.RemoveAt(s, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidRow)
	_, err = domain.RemoveAt(s, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidRow)
	assert.Equal(t, []int{1, 2}, s)
}

func TestMoveUpLastAt(t *testing.T) {
	s := []int{1, 2, 3, 9}
	require.NoError(t, domain.MoveUpLastAt(s, 1))
	assert.Equal(t, []int{1, 9, 2, 3}, s)

	assert.ErrorIs(t, domain.MoveUpLastAt(s, 4), domain.ErrInvalidRow)
}

func TestInsertAt(t *testing.T) {
	var s []string
	s = domain.InsertAt(s, 0, "b")
	s = domain.InsertAt(s, 0, "a")
	s = domain.InsertAt(s, 99, "d")
	s = domain.InsertAt(s, 2, "c")
	s = domain.InsertAt(s, -1, "e")
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, s)
}

func TestAttach_SlotDispatch(t *testing.T) {
	m := &domain.Mission{}
	row, err := domain.Attach(m, -1, &domain.Point{Name: "p"})
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	require.NotNil(t, m.Components[0].Block)
	assert.Equal(t, "p", m.Components[0].Block.Point.Name)

	d := &domain.Device{}
	_, err = domain.Attach(d, 0, &domain.Collection{Name: "c"})
	require.NoError(t, err)
	assert.Equal(t, "c", d.Components[0].Collection.Name)

	_, err = domain.Attach(d, 0, &domain.Device{})
	assert.ErrorIs(t, err, domain.ErrUnsupported)

	c := &domain.Collection{}
	_, err = domain.Attach(c, 0, &domain.Line{Name: "r"})
	require.NoError(t, err)
	row, err = domain.Attach(c, 0, &domain.Point{Name: "p0"})
	require.NoError(t, err)
	assert.Equal(t, 0, row)
	assert.Equal(t, "p0", c.Blocks[0].Point.Name)
	assert.Equal(t, "r", c.Blocks[1].Line.Name)

	_, err = domain.Attach(&domain.Point{}, 0, &domain.Collection{})
	assert.ErrorIs(t, err, domain.ErrUnsupported)
	_, err = domain.Attach(c, 0, nil)
	assert.ErrorIs(t, err, domain.ErrNilFragment)
}

func TestDetach(t *testing.T) {
	c := &domain.Collection{Blocks: []*domain.Block{
		{Point: &domain.Point{Name: "a"}},
		{Line: &domain.Line{Name: "b"}},
		{Point: &domain.Point{Name: "c"}},
	}}

	removed, err := domain.Detach(c, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed.GetName())
	require.Len(t, c.Blocks, 2)
	assert.Equal(t, "a", c.Blocks[0].Point.Name)
	assert.Equal(t, "c", c.Blocks[1].Point.Name)

	_, err = domain.Detach(c, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidRow)
	_, err = domain.Detach(&domain.Point{}, 0)
	assert.ErrorIs(t, err, domain.ErrUnsupported)
}
