package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics holds the collectors fed by NewMetricsMiddleware.
type StoreMetrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
	Bytes      *prometheus.CounterVec
}

// NewStoreMetrics creates the store collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	m := &StoreMetrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waypoint",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Document store operations by result.",
		}, []string{"op", "result"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "waypoint",
			Subsystem: "store",
			Name:      "duration_seconds",
			Help:      "Document store operation latency.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"op"}),
		Bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waypoint",
			Subsystem: "store",
			Name:      "bytes_total",
			Help:      "Document bytes written and read.",
		}, []string{"direction"}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Duration, m.Bytes)
	}
	return m
}

type metricsMiddleware struct {
	next    ports.DocumentStore
	metrics *StoreMetrics
}

// NewMetricsMiddleware records the count, latency and payload size of every store call.
func NewMetricsMiddleware(metrics *StoreMetrics) Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &metricsMiddleware{next: next, metrics: metrics}
	}
}

func (m *metricsMiddleware) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	m.metrics.Operations.WithLabelValues(op, result).Inc()
	m.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *metricsMiddleware) Save(ctx context.Context, id string, data []byte) error {
	start := time.Now()
	err := m.next.Save(ctx, id, data)
	m.observe("save", start, err)
	if err == nil {
		m.metrics.Bytes.WithLabelValues("write").Add(float64(len(data)))
	}
	return err
}

func (m *metricsMiddleware) Load(ctx context.Context, id string) ([]byte, error) {
	start := time.Now()
	data, err := m.next.Load(ctx, id)
	m.observe("load", start, err)
	if err == nil {
		m.metrics.Bytes.WithLabelValues("read").Add(float64(len(data)))
	}
	return data, err
}

func (m *metricsMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.observe("delete", start, err)
	return err
}

func (m *metricsMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.observe("list", start, err)
	return ids, err
}
