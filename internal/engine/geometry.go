package engine

import (
	"math"

	"github.com/piwi3910/LabelSheet/internal/model"
)

// PageDimensions returns the A4 sheet size for an orientation.
func PageDimensions(orientation model.Orientation) model.PageGeometry {
	if orientation == model.Landscape {
		return model.PageGeometry{Width: model.A4LongEdge, Height: model.A4ShortEdge}
	}
	return model.PageGeometry{Width: model.A4ShortEdge, Height: model.A4LongEdge}
}

// ComputeGrid returns how many items of footprint fit on one page inside
// the margins. Each item is counted with one trailing gap and the usable
// length gets one extra gap, so the last item in a row or column needs none.
// Both axes are clamped to at least one cell; oversized items are not
// rejected.
func ComputeGrid(footprint model.Footprint, margin, gap float64, orientation model.Orientation) model.GridConfig {
	page := PageDimensions(orientation)
	usableW := page.Width - 2*margin
	usableH := page.Height - 2*margin

	cols := max(1, fitCount(usableW, footprint.Width, gap))
	rows := max(1, fitCount(usableH, footprint.Height, gap))

	return model.GridConfig{
		Columns:      cols,
		Rows:         rows,
		PerPage:      cols * rows,
		UsableWidth:  usableW,
		UsableHeight: usableH,
	}
}

// maxAxisCells caps a grid axis for degenerate near-zero footprints.
const maxAxisCells = 10000

// fitCount returns floor((length + gap) / (item + gap)) with no minimum of 1.
// A non-positive result is 0.
func fitCount(length, item, gap float64) int {
	step := item + gap
	if step <= 0 || math.IsNaN(step) {
		return 0
	}
	n := math.Floor((length + gap) / step)
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n > maxAxisCells {
		return maxAxisCells
	}
	return int(n)
}

// spanLength is the length covered by n items of size item separated by gap.
func spanLength(n int, item, gap float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*item + float64(n-1)*gap
}

// cellOrigin returns the top-left corner of grid cell (row, col) for a grid
// starting at (originX, originY).
func cellOrigin(originX, originY float64, row, col int, fp model.Footprint, gap float64) (float64, float64) {
	return originX + float64(col)*(fp.Width+gap), originY + float64(row)*(fp.Height+gap)
}
