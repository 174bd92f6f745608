package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piwi3910/LabelSheet/internal/model"
)

func TestPlanner_DispatchesByMode(t *testing.T) {
	ids := makeIdentifiers(30)

	s := model.DefaultSettings()
	s.LabelMode = model.ModeBig
	big := New(s).Plan(ids)
	assert.Equal(t, model.ModeBig, big.Mode)
	assert.Equal(t, 30, big.Count(model.KindLarge))
	assert.Equal(t, 0, big.Count(model.KindSmall))
	assert.Len(t, big.Sheets, 2)

	s.LabelMode = model.ModeSmall
	small := New(s).Plan(ids)
	assert.Equal(t, model.ModeSmall, small.Mode)
	assert.Equal(t, 0, small.Count(model.KindLarge))
	assert.Equal(t, 30, small.Count(model.KindSmall))
	assert.Equal(t, s.SmallFootprint(), small.Small)

	s.LabelMode = model.ModeCombo
	s.SmallCopies = 2
	combo := New(s).Plan(ids)
	assert.Equal(t, model.ModeCombo, combo.Mode)
	assert.Equal(t, 30, combo.Count(model.KindLarge))
	assert.Equal(t, 60, combo.Count(model.KindSmall))
	assert.Equal(t, 2, combo.Copies)
}

func TestPlanner_AssignsFreshPlanID(t *testing.T) {
	p := New(model.DefaultSettings())
	a := p.Plan(makeIdentifiers(1))
	b := p.Plan(makeIdentifiers(1))

	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestPlanner_NormalizesSettings(t *testing.T) {
	// Zero-valued settings fall back to defaults instead of degenerate grids
	plan := New(model.LayoutSettings{}).Plan(makeIdentifiers(25))

	def := model.DefaultSettings()
	assert.Equal(t, model.ModeBig, plan.Mode)
	assert.Equal(t, def.LargeLabel, plan.Large)
	assert.Equal(t, def.Margin, plan.Margin)
	assert.Equal(t, model.Portrait, plan.Orientation)
	assert.Len(t, plan.Sheets, 2)
}

func TestPlanner_ClampsCopies(t *testing.T) {
	s := model.DefaultSettings()
	s.LabelMode = model.ModeCombo
	s.SmallCopies = 500

	plan := New(s).Plan(makeIdentifiers(1))
	assert.Equal(t, model.MaxSmallCopies, plan.Copies)
	assert.Equal(t, model.MaxSmallCopies, plan.Count(model.KindSmall))
}

func TestPlanner_EmptyInput(t *testing.T) {
	for _, mode := range []model.LabelMode{model.ModeBig, model.ModeSmall, model.ModeCombo} {
		s := model.DefaultSettings()
		s.LabelMode = mode
		plan := New(s).Plan(nil)
		assert.True(t, plan.IsEmpty(), string(mode))
		assert.Equal(t, mode, plan.Mode)
	}
}

func TestPlanner_Landscape(t *testing.T) {
	s := model.DefaultSettings()
	s.Orientation = model.Landscape
	plan := New(s).Plan(makeIdentifiers(26))

	assert.Equal(t, 297.0, plan.Page.Width)
	require.Len(t, plan.Sheets, 2)
	assert.Len(t, plan.Sheets[0].Placements, 25)
}

func TestPlanner_Grids(t *testing.T) {
	large, small := New(model.DefaultSettings()).Grids()
	assert.Equal(t, 24, large.PerPage)
	// 42 x 28 small footprint
	assert.Equal(t, 4, small.Columns)
	assert.Equal(t, 9, small.Rows)
}

func TestPlanner_LogsEachPass(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := New(model.DefaultSettings(), WithLogger(zap.New(core)))

	plan := p.Plan(makeIdentifiers(3))

	entries := logs.FilterMessage("sheet plan built").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, plan.ID, fields["plan_id"])
	assert.Equal(t, int64(3), fields["identifiers"])
	assert.Equal(t, int64(1), fields["sheets"])
}

func TestWithLogger_IgnoresNil(t *testing.T) {
	p := New(model.DefaultSettings(), WithLogger(nil))
	require.NotNil(t, p.logger)
	assert.NotPanics(t, func() { p.Plan(makeIdentifiers(1)) })
}
