package model

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbortInsert_EmitsResetInsteadOfInserted(t *testing.T) {
	m := New()
	require.NoError(t, m.LoadDocument(&domain.Mission{
		Name: "M",
		Components: []*domain.Component{
			{Collection: &domain.Collection{Name: "C", Blocks: []*domain.Block{{Point: &domain.Point{Name: "P0"}}}}},
		},
	}))
	top, err := m.Index(0, ColumnComponent, Index{})
	require.NoError(t, err)
	coll, err := m.Index(0, ColumnComponent, top)
	require.NoError(t, err)

	var inserted, resets int
	m.SetHooks(Hooks{
		OnRowsInserted: func(ChangeEvent) { inserted++ },
		OnModelReset:   func(ChangeEvent) { resets++ },
	})

	_, err = m.tree.Create(coll.node, 1, domain.KindPoint)
	require.NoError(t, err)
	_, err = m.tree.Create(coll.node, 2, domain.KindPoint)
	require.NoError(t, err)
	require.Equal(t, 3, m.RowCount(coll))

	m.abortInsert(coll.node, 1, 2)

	assert.Equal(t, 1, m.RowCount(coll))
	assert.Len(t, m.Mission().Components[0].Collection.Blocks, 1)
	assert.NoError(t, m.tree.Verify())
	assert.Zero(t, inserted)
	assert.Equal(t, 1, resets)
}
