package observability

import (
	"github.com/aretw0/waypoint/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
)

// ModelMetrics holds the collectors fed by Hooks.
type ModelMetrics struct {
	RowsInserted *prometheus.CounterVec
	RowsRemoved  *prometheus.CounterVec
	DataChanges  prometheus.Counter
	Resets       prometheus.Counter
}

// NewModelMetrics creates the projection collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewModelMetrics(reg prometheus.Registerer) *ModelMetrics {
	m := &ModelMetrics{
		RowsInserted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waypoint",
			Subsystem: "model",
			Name:      "rows_inserted_total",
			Help:      "Rows inserted into the projection, by kind.",
		}, []string{"kind"}),
		RowsRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waypoint",
			Subsystem: "model",
			Name:      "rows_removed_total",
			Help:      "Rows removed from the projection, by kind.",
		}, []string{"kind"}),
		DataChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "waypoint",
			Subsystem: "model",
			Name:      "data_changes_total",
			Help:      "Edits of node data.",
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "waypoint",
			Subsystem: "model",
			Name:      "resets_total",
			Help:      "Whole-model resets.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.RowsInserted, m.RowsRemoved, m.DataChanges, m.Resets)
	}
	return m
}

// Hooks returns model hooks that feed the collectors. The hooks read mdl to label rows
// by kind: inserted rows after the insert, removed rows before they go away.
func (m *ModelMetrics) Hooks(mdl *model.Model) model.Hooks {
	count := func(vec *prometheus.CounterVec, ev model.ChangeEvent) {
		for row := ev.First; row <= ev.Last; row++ {
			idx, err := mdl.Index(row, model.ColumnComponent, ev.Parent)
			if err != nil {
				continue
			}
			vec.WithLabelValues(mdl.Kind(idx).String()).Inc()
		}
	}
	return model.Hooks{
		OnRowsInserted:         func(ev model.ChangeEvent) { count(m.RowsInserted, ev) },
		OnRowsAboutToBeRemoved: func(ev model.ChangeEvent) { count(m.RowsRemoved, ev) },
		OnDataChanged:          func(model.ChangeEvent) { m.DataChanges.Inc() },
		OnModelReset:           func(model.ChangeEvent) { m.Resets.Inc() },
	}
}
