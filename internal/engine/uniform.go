package engine

import "github.com/piwi3910/LabelSheet/internal/model"

// Paginate slices items into sheets of one uniform grid. Items fill each
// sheet row-major from the top-left cell; the last sheet holds whatever is
// left with its trailing cells simply absent.
func Paginate(items []string, kind model.ItemKind, footprint model.Footprint, margin, gap float64, orientation model.Orientation) model.SheetPlan {
	plan := model.SheetPlan{
		Mode:        model.ModeBig,
		Orientation: orientation,
		Page:        PageDimensions(orientation),
		Margin:      margin,
		Gap:         gap,
	}
	zone := model.ZoneLarge
	if kind == model.KindSmall {
		plan.Mode = model.ModeSmall
		plan.Small = footprint
		zone = model.ZoneSmall
	} else {
		plan.Large = footprint
	}
	if len(items) == 0 {
		return plan
	}

	cfg := ComputeGrid(footprint, margin, gap, orientation)
	plan.Sheets = make([]model.Sheet, 0, (len(items)+cfg.PerPage-1)/cfg.PerPage)

	for start := 0; start < len(items); start += cfg.PerPage {
		end := min(start+cfg.PerPage, len(items))
		window := items[start:end]

		sheet := model.Sheet{
			Index:      len(plan.Sheets),
			Placements: make([]model.Placement, 0, len(window)),
		}
		for i, id := range window {
			row, col := i/cfg.Columns, i%cfg.Columns
			x, y := cellOrigin(margin, margin, row, col, footprint, gap)
			sheet.Placements = append(sheet.Placements, model.Placement{
				Kind:       kind,
				Identifier: id,
				Zone:       zone,
				Row:        row,
				Column:     col,
				X:          x,
				Y:          y,
				Width:      footprint.Width,
				Height:     footprint.Height,
			})
		}
		sheet.Zones = []model.ZoneLayout{{
			Zone:       zone,
			Columns:    cfg.Columns,
			Rows:       (len(window) + cfg.Columns - 1) / cfg.Columns,
			ItemWidth:  footprint.Width,
			ItemHeight: footprint.Height,
			OriginX:    margin,
			OriginY:    margin,
		}}
		plan.Sheets = append(plan.Sheets, sheet)
	}
	return plan
}
