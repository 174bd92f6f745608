package engine

import "github.com/piwi3910/LabelSheet/internal/model"

// smallItem is one companion label waiting for a slot.
type smallItem struct {
	identifier string
	copy       int
}

// pendingQueue is the FIFO of small labels carried from sheet to sheet.
// It is a value: push and take return the updated queue.
type pendingQueue []smallItem

// push appends copies small labels for identifier in copy-index order.
func (q pendingQueue) push(identifier string, copies int) pendingQueue {
	for c := 0; c < copies; c++ {
		q = append(q, smallItem{identifier: identifier, copy: c})
	}
	return q
}

// take removes up to n items from the head.
func (q pendingQueue) take(n int) ([]smallItem, pendingQueue) {
	n = min(max(n, 0), len(q))
	return q[:n:n], q[n:]
}

// comboLayout is the fixed geometry of one combo packing pass.
type comboLayout struct {
	large, small model.Footprint
	margin, gap  float64
	copies       int
	bigCfg       model.GridConfig
	smallCfg     model.GridConfig
}

func newComboLayout(large, small model.Footprint, margin, gap float64, orientation model.Orientation, copies int) comboLayout {
	return comboLayout{
		large:    large,
		small:    small,
		margin:   margin,
		gap:      gap,
		copies:   max(copies, 0),
		bigCfg:   ComputeGrid(large, margin, gap, orientation),
		smallCfg: ComputeGrid(small, margin, gap, orientation),
	}
}

// PackCombo lays out one large label per identifier plus copies companion
// small labels, sharing sheets between the two sizes.
//
// Each sheet first takes as many identifiers as the large grid holds and
// queues their companions. Queued small labels then go, in this order, into
// the empty cells of a partial last large row, a strip to the right of the
// large grid, and a strip below everything. Whatever does not fit carries
// over to the next sheet. Once identifiers run out the remaining queue is
// drained onto small-only sheets.
func PackCombo(identifiers []string, large, small model.Footprint, margin, gap float64, orientation model.Orientation, copies int) model.SheetPlan {
	layout := newComboLayout(large, small, margin, gap, orientation, copies)
	plan := model.SheetPlan{
		Mode:        model.ModeCombo,
		Orientation: orientation,
		Page:        PageDimensions(orientation),
		Margin:      margin,
		Gap:         gap,
		Large:       large,
		Small:       small,
		Copies:      layout.copies,
	}

	remaining := identifiers
	var queue pendingQueue
	for len(remaining) > 0 || len(queue) > 0 {
		sheet, consumed, next := packSheet(remaining, queue, layout, len(plan.Sheets))
		if len(sheet.Placements) == 0 {
			break
		}
		plan.Sheets = append(plan.Sheets, sheet)
		remaining = remaining[consumed:]
		queue = next
	}
	return plan
}

// packSheet fills one sheet. It returns the sheet, how many identifiers
// were placed as large labels, and the queue left for the next sheet.
func packSheet(identifiers []string, queue pendingQueue, l comboLayout, index int) (model.Sheet, int, pendingQueue) {
	sheet := model.Sheet{Index: index}
	cols := l.bigCfg.Columns

	// Large grid
	bigCount := min(l.bigCfg.PerPage, len(identifiers))
	fullRows, remainder := bigCount/cols, bigCount%cols
	largeRows := fullRows
	if remainder > 0 {
		largeRows++
	}
	for i, id := range identifiers[:bigCount] {
		row, col := i/cols, i%cols
		x, y := cellOrigin(l.margin, l.margin, row, col, l.large, l.gap)
		sheet.Placements = append(sheet.Placements, model.Placement{
			Kind:       model.KindLarge,
			Identifier: id,
			Zone:       model.ZoneLarge,
			Row:        row,
			Column:     col,
			X:          x,
			Y:          y,
			Width:      l.large.Width,
			Height:     l.large.Height,
		})
		queue = queue.push(id, l.copies)
	}
	if bigCount > 0 {
		sheet.Zones = append(sheet.Zones, model.ZoneLayout{
			Zone:       model.ZoneLarge,
			Columns:    cols,
			Rows:       largeRows,
			ItemWidth:  l.large.Width,
			ItemHeight: l.large.Height,
			OriginX:    l.margin,
			OriginY:    l.margin,
		})
	}

	// Filler: one small label per empty cell of the partial row. A small
	// label taller than the large cell cannot share the row.
	if remainder > 0 && l.small.Height <= l.large.Height && len(queue) > 0 {
		var items []smallItem
		items, queue = queue.take(cols - remainder)
		originX, originY := cellOrigin(l.margin, l.margin, fullRows, remainder, l.large, l.gap)
		for k, it := range items {
			col := remainder + k
			x, y := cellOrigin(l.margin, l.margin, fullRows, col, l.large, l.gap)
			sheet.Placements = append(sheet.Placements, smallPlacement(it, model.ZoneFiller, fullRows, col, x, y, l.small))
		}
		sheet.Zones = append(sheet.Zones, model.ZoneLayout{
			Zone:       model.ZoneFiller,
			Columns:    len(items),
			Rows:       1,
			ItemWidth:  l.small.Width,
			ItemHeight: l.small.Height,
			OriginX:    originX,
			OriginY:    originY,
		})
	}

	largeHeight := spanLength(largeRows, l.large.Height, l.gap)
	gridWidth := spanLength(cols, l.large.Width, l.gap)

	// Side strip: to the right of the large grid, separated by one gap,
	// spanning the full usable height. A sheet without large labels has no
	// grid to sit beside, so its bottom grid takes the full width.
	sideHeight := 0.0
	stripWidth := l.bigCfg.UsableWidth - gridWidth
	if bigCount > 0 && stripWidth > 0 && len(queue) > 0 {
		sideCols := fitCount(stripWidth-l.gap, l.small.Width, l.gap)
		sideRows := fitCount(l.bigCfg.UsableHeight, l.small.Height, l.gap)
		if capacity := sideCols * sideRows; capacity > 0 {
			var items []smallItem
			items, queue = queue.take(capacity)
			originX := l.margin + gridWidth + l.gap
			sheet.Placements = appendGrid(sheet.Placements, items, model.ZoneSide, sideCols, originX, l.margin, l.small, l.gap)
			usedRows := (len(items) + sideCols - 1) / sideCols
			sideHeight = spanLength(usedRows, l.small.Height, l.gap)
			sheet.Zones = append(sheet.Zones, model.ZoneLayout{
				Zone:       model.ZoneSide,
				Columns:    sideCols,
				Rows:       usedRows,
				ItemWidth:  l.small.Width,
				ItemHeight: l.small.Height,
				OriginX:    originX,
				OriginY:    l.margin,
			})
		}
	}

	// Bottom strip: full usable width below the large grid and side strip.
	usedHeight := max(largeHeight, sideHeight)
	available := l.bigCfg.UsableHeight - usedHeight
	if bigCount > 0 && len(queue) > 0 {
		available -= l.gap
	}
	bottomCols := l.smallCfg.Columns
	bottomRows := fitCount(available, l.small.Height, l.gap)
	if bigCount == 0 && bottomRows == 0 && len(queue) > 0 {
		// A small-only sheet must place something or the pass never ends.
		bottomRows = 1
	}
	if bottomRows > 0 && len(queue) > 0 {
		var items []smallItem
		items, queue = queue.take(bottomRows * bottomCols)
		originY := l.margin + usedHeight
		if usedHeight > 0 {
			originY += l.gap
		}
		sheet.Placements = appendGrid(sheet.Placements, items, model.ZoneBottom, bottomCols, l.margin, originY, l.small, l.gap)
		sheet.Zones = append(sheet.Zones, model.ZoneLayout{
			Zone:       model.ZoneBottom,
			Columns:    bottomCols,
			Rows:       (len(items) + bottomCols - 1) / bottomCols,
			ItemWidth:  l.small.Width,
			ItemHeight: l.small.Height,
			OriginX:    l.margin,
			OriginY:    originY,
		})
	}

	return sheet, bigCount, queue
}

// appendGrid places items row-major in a grid of cols columns.
func appendGrid(dst []model.Placement, items []smallItem, zone model.Zone, cols int, originX, originY float64, fp model.Footprint, gap float64) []model.Placement {
	for i, it := range items {
		row, col := i/cols, i%cols
		x, y := cellOrigin(originX, originY, row, col, fp, gap)
		dst = append(dst, smallPlacement(it, zone, row, col, x, y, fp))
	}
	return dst
}

func smallPlacement(it smallItem, zone model.Zone, row, col int, x, y float64, fp model.Footprint) model.Placement {
	return model.Placement{
		Kind:       model.KindSmall,
		Identifier: it.identifier,
		Copy:       it.copy,
		Zone:       zone,
		Row:        row,
		Column:     col,
		X:          x,
		Y:          y,
		Width:      fp.Width,
		Height:     fp.Height,
	}
}
