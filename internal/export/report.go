package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/LabelSheet/internal/model"
)

// zoneColor represents an RGB color for one placement zone.
type zoneColor struct {
	R, G, B int
}

var zoneColors = map[model.Zone]zoneColor{
	model.ZoneLarge:  {R: 33, G: 150, B: 243}, // blue
	model.ZoneFiller: {R: 255, G: 152, B: 0},  // orange
	model.ZoneSide:   {R: 156, G: 39, B: 176}, // purple
	model.ZoneBottom: {R: 76, G: 175, B: 80},  // green
	model.ZoneSmall:  {R: 0, G: 188, B: 212},  // cyan
}

var zoneNames = []struct {
	zone  model.Zone
	label string
}{
	{model.ZoneLarge, "Large label"},
	{model.ZoneFiller, "Row filler"},
	{model.ZoneSide, "Side strip"},
	{model.ZoneBottom, "Bottom strip"},
	{model.ZoneSmall, "Small label"},
}

// Report page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportReport writes a layout report: one diagram page per sheet showing
// every placement coloured by zone, followed by a summary page.
func ExportReport(path string, plan model.SheetPlan) error {
	pdf, err := renderReport(plan)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WriteReport renders the layout report to w.
func WriteReport(w io.Writer, plan model.SheetPlan) error {
	pdf, err := renderReport(plan)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func renderReport(plan model.SheetPlan) (*fpdf.Fpdf, error) {
	if plan.IsEmpty() {
		return nil, ErrEmptyPlan
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, sheet := range plan.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, plan, sheet)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return pdf, nil
}

// renderSheetPage draws a single sheet diagram on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, plan model.SheetPlan, sheet model.Sheet) {
	page := plan.Page

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d of %d (A4 %s, %.0f x %.0f mm)", sheet.Index+1, len(plan.Sheets), plan.Orientation, page.Width, page.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Large: %d | Small: %d | Used area: %.0f mm2 | Efficiency: %.1f%%",
		sheet.Count(model.KindLarge), sheet.Count(model.KindSmall), sheet.UsedArea(), sheet.UsedArea()/page.Area()*100)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/page.Width, drawHeight/page.Height)
	canvasW := page.Width * scale
	canvasH := page.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Paper with the printable area inside the margins
	pdf.SetFillColor(255, 255, 255)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	pdf.SetDrawColor(180, 180, 180)
	pdf.SetLineWidth(0.15)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	m := plan.Margin * scale
	pdf.Rect(offsetX+m, offsetY+m, canvasW-2*m, canvasH-2*m, "D")
	pdf.SetDashPattern([]float64{}, 0)

	for _, p := range sheet.Placements {
		col := zoneColors[p.Zone]
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(px, py, pw, ph, "FD")

		// Last digits of the identifier, when the rectangle is large enough
		if pw > 10 && ph > 5 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			label := tail(p.Identifier, 6)
			if p.Kind == model.KindSmall && plan.Copies > 1 {
				label = fmt.Sprintf("%s #%d", label, p.Copy+1)
			}
			if lw := pdf.GetStringWidth(label); lw < pw-1 {
				pdf.SetXY(px+(pw-lw)/2, py+ph/2-2)
				pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, page, offsetX, offsetY, canvasW, canvasH)
	drawZoneLegend(pdf, sheet, offsetY+canvasH+6)
}

// drawDimensionAnnotations adds width and height labels outside the page rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, page model.PageGeometry, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", page.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", page.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawZoneLegend renders a swatch and count for each zone used on the sheet.
func drawZoneLegend(pdf *fpdf.Fpdf, sheet model.Sheet, startY float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	xPos := marginLeft

	for _, zn := range zoneNames {
		n := sheet.CountZone(zn.zone)
		if n == 0 {
			continue
		}
		col := zoneColors[zn.zone]
		label := fmt.Sprintf("%s: %d", zn.label, n)
		labelW := pdf.GetStringWidth(label) + 6

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 4
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.SheetPlan) {
	summary := Summarize(plan)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Label Sheet Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Label Mode", string(summary.Mode)},
		{"Identifiers", fmt.Sprintf("%d", summary.Identifiers)},
		{"Total Sheets", fmt.Sprintf("%d", summary.Sheets)},
		{"Large Labels", fmt.Sprintf("%d (%.0f x %.0f mm)", summary.LargeLabels, plan.Large.Width, plan.Large.Height)},
		{"Small Labels", fmt.Sprintf("%d (%.0f x %.0f mm)", summary.SmallLabels, plan.Small.Width, plan.Small.Height)},
		{"Margin / Gap", fmt.Sprintf("%.1f / %.1f mm", plan.Margin, plan.Gap)},
		{"Paper Utilization", fmt.Sprintf("%.1f%%", summary.Utilization)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 30, 30, 30, 30, 30, 35}
	headers := []string{"Sheet", "Large", "Filler", "Side", "Bottom", "Small", "Utilization"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, ss := range summary.PerSheet {
		// Continue the table on a new page when it runs off this one
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", ss.Index+1),
			fmt.Sprintf("%d", ss.Large),
			fmt.Sprintf("%d", ss.Filler),
			fmt.Sprintf("%d", ss.Side),
			fmt.Sprintf("%d", ss.Bottom),
			fmt.Sprintf("%d", ss.Small),
			fmt.Sprintf("%.1f%%", ss.Utilization),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by LabelSheet - plan "+plan.ID, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 7
	case minDim > 10:
		return 6
	default:
		return 5
	}
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
