package domain_test

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolve_Table(t *testing.T) {
	tests := []struct {
		kind, parent domain.Kind
		interp       domain.Interpretation
		want         domain.Features
	}{
		{domain.KindUndefined, domain.KindUndefined, domain.Scenario, domain.FeatureAddMission},
		{domain.KindMission, domain.KindUndefined, domain.Scenario,
			domain.FeatureAddDevice | domain.FeatureAddCollection | domain.FeatureAddPoint | domain.FeatureAddLine},
		{domain.KindDevice, domain.KindMission, domain.Scenario,
			domain.FeatureDelete | domain.FeatureEdit | domain.FeatureAddCollection | domain.FeatureAddPoint | domain.FeatureAddLine},
		{domain.KindCollection, domain.KindMission, domain.Scenario,
			domain.FeatureDelete | domain.FeatureEdit | domain.FeatureAddPoint | domain.FeatureAddLine},
		{domain.KindCollection, domain.KindMission, domain.Route,
			domain.FeatureDelete | domain.FeatureEdit | domain.FeatureAddPoint | domain.FeatureAddLine | domain.FeatureSwap},
		{domain.KindCollection, domain.KindDevice, domain.Family,
			domain.FeatureDelete | domain.FeatureEdit | domain.FeatureAddPoint | domain.FeatureAddLine | domain.FeatureSwap},
		{domain.KindRail, domain.KindCollection, domain.Scenario, domain.FeatureDelete | domain.FeatureEdit | domain.FeatureSwap},
		{domain.KindSegment, domain.KindMission, domain.Scenario, domain.FeatureDelete | domain.FeatureEdit | domain.FeatureSwap},
		{domain.KindPoint, domain.KindCollection, domain.Scenario, domain.FeatureDelete | domain.FeatureEdit},
		{domain.KindPoint, domain.KindRail, domain.Scenario, domain.FeatureEdit},
		{domain.KindPoint, domain.KindSegment, domain.Scenario, domain.FeatureEdit},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"_under_"+tt.parent.String()+"_"+tt.interp.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Resolve(tt.kind, tt.parent, tt.interp))
		})
	}
}

func TestResolve_PointGating(t *testing.T) {
	underRail := domain.Resolve(domain.KindPoint, domain.KindRail, domain.Scenario)
	assert.False(t, underRail.Has(domain.FeatureDelete))
	assert.True(t, underRail.Has(domain.FeatureEdit))

	underCollection := domain.Resolve(domain.KindPoint, domain.KindCollection, domain.Scenario)
	assert.True(t, underCollection.Has(domain.FeatureDelete|domain.FeatureEdit))
}

func TestFeatures_Predicates(t *testing.T) {
	f := domain.FeatureEdit.With(domain.FeatureAddRail)

	assert.True(t, f.Has(domain.FeatureEdit))
	assert.False(t, f.Has(domain.FeatureAddLine), "Has is all-of")
	assert.True(t, f.Any(domain.FeatureAddLine), "Any is any-of")
	assert.False(t, f.Has(0))
	assert.Equal(t, domain.FeatureAddRail, f.Without(domain.FeatureEdit))
	assert.Equal(t, "edit|add-rail", f.String())
	assert.Equal(t, "none", domain.Features(0).String())
	assert.True(t, domain.Features(0).IsEmpty())
}

func TestAddFeature(t *testing.T) {
	for _, k := range domain.Kinds {
		af := domain.AddFeature(k)
		assert.False(t, af.IsEmpty(), k.String())
		assert.True(t, domain.FeatureAddAny.Has(af), k.String())
	}
	assert.True(t, domain.AddFeature(domain.KindUndefined).IsEmpty())
}
