package waypoint_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/aretw0/waypoint/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditor_PathAddressing(t *testing.T) {
	ed := waypoint.New()

	coll, err := ed.AddAt(domain.KindCollection, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, coll)

	rail, err := ed.AddAt(domain.KindRail, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, rail)

	d, err := ed.Describe(0, 0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.KindPoint, d.Kind)
	assert.Equal(t, "RB", d.DisplayName)

	_, err = ed.AddAt(domain.KindPoint, 0, 0, 0)
	assert.ErrorIs(t, err, domain.ErrUnsupported, "lines keep exactly two points")

	assert.ErrorIs(t, ed.RemoveAt(0, 0, 0, 0), domain.ErrUnsupported)
	require.NoError(t, ed.RemoveAt(0, 0, 0))
	assert.True(t, ed.IsModified())

	_, err = ed.At(0, 5)
	assert.Error(t, err)
}

func TestEditor_HooksAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	var inserted []model.ChangeEvent
	ed := waypoint.New(
		waypoint.WithStore(memory.NewStore()),
		waypoint.WithMetrics(reg),
		waypoint.WithMiddleware(middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey: []byte(strings.Repeat("k", 32)),
		})),
		waypoint.WithHooks(model.Hooks{OnRowsInserted: func(ev model.ChangeEvent) { inserted = append(inserted, ev) }}),
	)

	_, err := ed.AddAt(domain.KindDevice, 0)
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, 0, inserted[0].First)

	ctx := context.Background()
	_, err = ed.Commit(ctx, "enc")
	require.NoError(t, err)
	require.NoError(t, ed.NewDocument("other"))
	require.NoError(t, ed.Checkout(ctx, "enc"))
	assert.Equal(t, domain.KindDevice, ed.Model().Kind(mustAt(t, ed, 0, 0)))

	n, err := testutil.GatherAndCount(reg, "waypoint_model_rows_inserted_total", "waypoint_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, n, "device inserts, store save and load")
}

func mustAt(t *testing.T, ed *waypoint.Editor, path ...int) model.Index {
	t.Helper()
	idx, err := ed.At(path...)
	require.NoError(t, err)
	return idx
}
