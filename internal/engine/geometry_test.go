package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/LabelSheet/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestPageDimensions(t *testing.T) {
	p := PageDimensions(model.Portrait)
	assert.Equal(t, 210.0, p.Width)
	assert.Equal(t, 297.0, p.Height)

	l := PageDimensions(model.Landscape)
	assert.Equal(t, 297.0, l.Width)
	assert.Equal(t, 210.0, l.Height)

	// Unknown orientations fall back to portrait
	u := PageDimensions(model.Orientation("sideways"))
	assert.Equal(t, p, u)
}

func TestComputeGrid_DefaultLargeLabel(t *testing.T) {
	cfg := ComputeGrid(model.Footprint{Width: 50, Height: 30}, 8, 3.5, model.Portrait)

	assert.InDelta(t, 194.0, cfg.UsableWidth, 1e-9)
	assert.InDelta(t, 281.0, cfg.UsableHeight, 1e-9)
	assert.Equal(t, 3, cfg.Columns, "floor((194+3.5)/53.5)")
	assert.Equal(t, 8, cfg.Rows, "floor((281+3.5)/33.5)")
	assert.Equal(t, 24, cfg.PerPage)
}

func TestComputeGrid_Landscape(t *testing.T) {
	cfg := ComputeGrid(model.Footprint{Width: 50, Height: 30}, 8, 3.5, model.Landscape)

	assert.InDelta(t, 281.0, cfg.UsableWidth, 1e-9)
	assert.InDelta(t, 194.0, cfg.UsableHeight, 1e-9)
	assert.Equal(t, 5, cfg.Columns) // floor(284.5/53.5) = 5.3
	assert.Equal(t, 5, cfg.Rows)    // floor(197.5/33.5) = 5.9
	assert.Equal(t, 25, cfg.PerPage)
}

func TestComputeGrid_ExactFitNeedsNoTrailingGap(t *testing.T) {
	// 190mm usable with 4 x 46mm items and 3 x 2mm gaps = 190mm exactly
	cfg := ComputeGrid(model.Footprint{Width: 46, Height: 277}, 10, 2, model.Portrait)
	assert.Equal(t, 4, cfg.Columns)
	assert.Equal(t, 1, cfg.Rows)
}

func TestComputeGrid_OversizedItemClampsToOneCell(t *testing.T) {
	cfg := ComputeGrid(model.Footprint{Width: 500, Height: 400}, 8, 3.5, model.Portrait)
	assert.Equal(t, 1, cfg.Columns)
	assert.Equal(t, 1, cfg.Rows)
	assert.Equal(t, 1, cfg.PerPage)
}

func TestComputeGrid_DegenerateInputsClamp(t *testing.T) {
	cases := []struct {
		name      string
		footprint model.Footprint
		margin    float64
		gap       float64
	}{
		{"zero footprint and gap", model.Footprint{}, 8, 0},
		{"negative footprint", model.Footprint{Width: -10, Height: -10}, 8, 3.5},
		{"margin wider than page", model.Footprint{Width: 50, Height: 30}, 200, 3.5},
		{"NaN footprint", model.Footprint{Width: math.NaN(), Height: math.NaN()}, 8, 3.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ComputeGrid(tc.footprint, tc.margin, tc.gap, model.Portrait)
			assert.GreaterOrEqual(t, cfg.Columns, 1)
			assert.GreaterOrEqual(t, cfg.Rows, 1)
			assert.Equal(t, cfg.Columns*cfg.Rows, cfg.PerPage)
		})
	}
}

func TestComputeGrid_PerPageIsColumnsTimesRows(t *testing.T) {
	for _, w := range []float64{10, 25, 42, 50, 63.5, 99, 150} {
		for _, h := range []float64{12, 28, 30, 47, 80} {
			for _, o := range []model.Orientation{model.Portrait, model.Landscape} {
				cfg := ComputeGrid(model.Footprint{Width: w, Height: h}, 8, 3.5, o)
				assert.GreaterOrEqual(t, cfg.Columns, 1)
				assert.GreaterOrEqual(t, cfg.Rows, 1)
				assert.Equal(t, cfg.Columns*cfg.Rows, cfg.PerPage, "w=%v h=%v %s", w, h, o)
			}
		}
	}
}

func TestFitCount(t *testing.T) {
	assert.Equal(t, 0, fitCount(10, 20, 0))
	assert.Equal(t, 2, fitCount(43.5, 20, 3.5))
	assert.Equal(t, 0, fitCount(-5, 20, 3.5))
	assert.Equal(t, 0, fitCount(100, -3.5, 3.5), "zero step")
	assert.Equal(t, maxAxisCells, fitCount(100, 1e-9, 0))
}

func TestSpanLength(t *testing.T) {
	assert.Equal(t, 0.0, spanLength(0, 30, 3.5))
	assert.Equal(t, 30.0, spanLength(1, 30, 3.5))
	assert.InDelta(t, 264.5, spanLength(8, 30, 3.5), 1e-9)
}
