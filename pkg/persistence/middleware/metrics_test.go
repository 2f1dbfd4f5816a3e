package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/persistence/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewStoreMetrics(reg)
	store := middleware.NewMetricsMiddleware(metrics)(NewMockStore())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", []byte("12345")))
	_, err := store.Load(ctx, "a")
	require.NoError(t, err)
	_, err = store.Load(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrDocumentNotFound)
	_, err = store.List(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, "a"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("save", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("load", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("load", "not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Operations.WithLabelValues("delete", "ok")))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.Bytes.WithLabelValues("write")))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.Bytes.WithLabelValues("read")))
	assert.Equal(t, 4, testutil.CollectAndCount(metrics.Duration))
}

func TestChain_Order(t *testing.T) {
	metrics := middleware.NewStoreMetrics(nil)
	key := generateKey(t)
	underlying := NewMockStore()
	ctx := context.Background()

	store := middleware.Chain(underlying,
		middleware.NewMetricsMiddleware(metrics),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}),
	)
	require.NoError(t, store.Save(ctx, "x", []byte("abc")))

	// Metrics sit outside encryption and count plaintext bytes.
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Bytes.WithLabelValues("write")))

	raw, err := underlying.Load(ctx, "x")
	require.NoError(t, err)
	assert.Greater(t, len(raw), 3)

	assert.Same(t, underlying, middleware.Chain(underlying))
}
