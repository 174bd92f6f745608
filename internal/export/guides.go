package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/LabelSheet/internal/model"
)

// guideSheetSpacing separates consecutive sheets laid side by side in the
// drawing, in mm.
const guideSheetSpacing = 20.0

// DXF layer names.
const (
	LayerSheet = "SHEET"
	LayerLarge = "LARGE"
	LayerSmall = "SMALL"
)

// ExportGuides writes a DXF cut guide with one rectangle per placement on
// the LARGE or SMALL layer and the page outline on the SHEET layer. Sheets
// are placed left to right; DXF Y grows upward so page coordinates are
// flipped.
func ExportGuides(path string, plan model.SheetPlan) error {
	if plan.IsEmpty() {
		return ErrEmptyPlan
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerSheet, color.White},
		{LayerLarge, color.Blue},
		{LayerSmall, color.Green},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	page := plan.Page
	for i, sheet := range plan.Sheets {
		offsetX := float64(i) * (page.Width + guideSheetSpacing)

		if err := guideRect(d, LayerSheet, offsetX, 0, page.Width, page.Height); err != nil {
			return err
		}
		for _, p := range sheet.Placements {
			layer := LayerLarge
			if p.Kind == model.KindSmall {
				layer = LayerSmall
			}
			y := page.Height - p.Y - p.Height
			if err := guideRect(d, layer, offsetX+p.X, y, p.Width, p.Height); err != nil {
				return err
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return nil
}

// guideRect draws an axis-aligned rectangle as four LINE entities.
func guideRect(d *drawing.Drawing, layer string, x, y, w, h float64) error {
	if err := d.ChangeLayer(layer); err != nil {
		return fmt.Errorf("failed to select layer %s: %w", layer, err)
	}
	corners := [5][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y}}
	for i := 0; i < 4; i++ {
		a, b := corners[i], corners[i+1]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to add line: %w", err)
		}
	}
	return nil
}
