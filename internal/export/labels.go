package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/LabelSheet/internal/input"
	"github.com/piwi3910/LabelSheet/internal/model"
)

// Large label content rows, in mm at the default 30mm label height.
const (
	labelPadding    = 1.0
	referenceHeight = 30.0
	brandRowHeight  = 3.4
	metaRowHeight   = 2.6
	codeTitleHeight = 2.2
	barcodeHeight   = 6.0
	codeTextHeight  = 2.6
	footerRowHeight = 2.6
	rowSpacing      = 0.4
	ptPerMM         = 72.0 / 25.4
)

// labelRenderer draws the labels of one plan into a PDF.
type labelRenderer struct {
	pdf      *fpdf.Fpdf
	settings model.LayoutSettings
	symbols  SymbolEncoder
	images   map[string]bool
}

// ExportPDF renders plan as printable label sheets, one PDF page per sheet.
func ExportPDF(path string, plan model.SheetPlan, settings model.LayoutSettings) error {
	pdf, err := renderLabels(plan, settings, DefaultSymbols{})
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF renders plan like ExportPDF and writes the document to w.
func WritePDF(w io.Writer, plan model.SheetPlan, settings model.LayoutSettings) error {
	pdf, err := renderLabels(plan, settings, DefaultSymbols{})
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func renderLabels(plan model.SheetPlan, settings model.LayoutSettings, symbols SymbolEncoder) (*fpdf.Fpdf, error) {
	if plan.IsEmpty() {
		return nil, ErrEmptyPlan
	}

	orientation := "P"
	if plan.Orientation == model.Landscape {
		orientation = "L"
	}
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(fmt.Sprintf("Labels %s", plan.ID), false)

	r := &labelRenderer{
		pdf:      pdf,
		settings: settings.Normalize(),
		symbols:  symbols,
		images:   make(map[string]bool),
	}

	for _, sheet := range plan.Sheets {
		pdf.AddPage()
		for _, p := range sheet.Placements {
			var err error
			if p.Kind == model.KindLarge {
				err = r.drawLarge(p)
			} else {
				err = r.drawSmall(p)
			}
			if err != nil {
				return nil, fmt.Errorf("sheet %d: label %q: %w", sheet.Index+1, p.Identifier, err)
			}
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}

// labelRow is one line of large label content.
type labelRow struct {
	height float64
	draw   func(x, y, w, h float64) error
}

// drawLarge draws one primary label: brand row, model/SN/website lines, QR
// code, barcode block and the install/warranty footer, each when enabled.
// Rows shrink together when they do not fit the label height.
func (r *labelRenderer) drawLarge(p model.Placement) error {
	s := r.settings
	vis := s.Visibility
	pdf := r.pdf

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(s.Border)
	pdf.Rect(p.X, p.Y, p.Width, p.Height, "D")

	ix, iy := p.X+labelPadding, p.Y+labelPadding
	iw, ih := p.Width-2*labelPadding, p.Height-2*labelPadding
	if iw <= 0 || ih <= 0 {
		return nil
	}

	showQR := s.CodeMode != model.CodeBarcode && vis.QR
	showBarcode := s.CodeMode != model.CodeQR && vis.Barcode
	scale := p.Height / referenceHeight

	var head, body []labelRow
	if vis.MainLogo || vis.Manufacturer {
		head = append(head, labelRow{brandRowHeight * scale, r.brandRow})
	}
	var meta []string
	if vis.Model {
		meta = append(meta, "Model: "+s.ModelName)
	}
	if vis.SerialNumber {
		meta = append(meta, "SN: "+input.SerialNumber(s.ModelName, p.Identifier))
	}
	if vis.Website {
		meta = append(meta, "Website: "+s.Website)
	}
	for _, line := range meta {
		head = append(head, labelRow{metaRowHeight * scale, func(x, y, w, h float64) error {
			r.text(x, y, w, h, line, "", "L")
			return nil
		}})
	}
	if showBarcode {
		if vis.IMEITitle {
			body = append(body, labelRow{codeTitleHeight * scale, func(x, y, w, h float64) error {
				r.text(x, y, w, h, "IMEI", "B", "L")
				return nil
			}})
		}
		body = append(body, labelRow{barcodeHeight * scale, func(x, y, w, h float64) error {
			return r.barcode(p.Identifier, x, y, w, h)
		}})
	}
	if vis.IMEINumber {
		body = append(body, labelRow{codeTextHeight * scale, func(x, y, w, h float64) error {
			r.text(x, y, w, h, p.Identifier, "", "L")
			return nil
		}})
	}
	if footer := footerText(vis, s.Warranty); footer != "" {
		body = append(body, labelRow{footerRowHeight * scale, func(x, y, w, h float64) error {
			r.text(x, y, w, h, footer, "", "L")
			return nil
		}})
	}

	// Shrink everything proportionally when content overflows.
	total := rowsHeight(head) + rowsHeight(body)
	fit := 1.0
	if total > ih {
		fit = ih / total
	}

	// The QR code sits top right beside the head rows.
	headW := iw
	if showQR {
		qrSize := math.Min(math.Max(rowsHeight(head)*fit, ih*0.45), iw*0.4)
		if err := r.qr(p.Identifier, ix+iw-qrSize, iy, qrSize); err != nil {
			return err
		}
		headW = iw - qrSize - labelPadding
	}

	y := iy
	for _, row := range head {
		h := row.height * fit
		if err := row.draw(ix, y, headW, h); err != nil {
			return err
		}
		y += h + rowSpacing*fit
	}
	// Body rows are anchored to the bottom edge.
	y = math.Max(y, iy+ih-rowsHeight(body)*fit)
	for _, row := range body {
		h := row.height * fit
		if err := row.draw(ix, y, iw, h); err != nil {
			return err
		}
		y += h + rowSpacing*fit
	}
	return nil
}

func (r *labelRenderer) brandRow(x, y, w, h float64) error {
	s := r.settings
	if s.Visibility.MainLogo {
		// Built-in logo: the manufacturer's initial in a filled disc.
		radius := h / 2
		r.pdf.SetFillColor(30, 30, 30)
		r.pdf.Circle(x+radius, y+radius, radius, "F")
		r.pdf.SetTextColor(255, 255, 255)
		r.text(x, y, h, h, initial(s.Manufacturer), "B", "C")
		r.pdf.SetTextColor(0, 0, 0)
		x += h + labelPadding
		w -= h + labelPadding
	}
	if s.Visibility.Manufacturer {
		r.text(x, y, w, h, s.Manufacturer, "B", "L")
	}
	return nil
}

// drawSmall draws one companion label: a symbol box above a text band.
func (r *labelRenderer) drawSmall(p model.Placement) error {
	s := r.settings
	pdf := r.pdf

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(s.SmallBorder)
	pdf.Rect(p.X, p.Y, p.Width, p.Height, "D")

	band := math.Min(s.SmallTextBand, p.Height/2)
	text := p.Identifier
	if s.SmallTextMode == model.SmallTextSerial {
		text = input.SerialNumber(s.ModelName, p.Identifier)
	}

	bx, by := p.X+labelPadding, p.Y+labelPadding
	bw, bh := p.Width-2*labelPadding, p.Height-band-2*labelPadding
	if bw > 0 && bh > 0 {
		if s.SmallCodeMode == model.CodeQR {
			size := math.Min(bw, bh)
			if err := r.qr(text, bx+(bw-size)/2, by+(bh-size)/2, size); err != nil {
				return err
			}
		} else if err := r.barcode(text, bx, by, bw, bh); err != nil {
			return err
		}
	}

	r.text(p.X, p.Y+p.Height-band, p.Width, band, text, "", "C")
	return nil
}

func (r *labelRenderer) qr(content string, x, y, size float64) error {
	name := "qr:" + content
	if !r.images[name] {
		png, err := r.symbols.QR(content)
		if err != nil {
			return err
		}
		r.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		r.images[name] = true
	}
	r.pdf.ImageOptions(name, x, y, size, size, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// barcode draws a CODE128 symbol. Content the symbology cannot carry is
// replaced by a short error note so the rest of the sheet still prints.
func (r *labelRenderer) barcode(content string, x, y, w, h float64) error {
	name := "bc:" + content
	if !r.images[name] {
		png, err := r.symbols.Barcode(content)
		if err != nil {
			r.text(x, y, w, h, "Code error", "I", "C")
			return nil
		}
		r.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
		r.images[name] = true
	}
	r.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// text writes one line sized to the row height, truncated to width.
func (r *labelRenderer) text(x, y, w, h float64, s, style, align string) {
	if w <= 0 || h <= 0 {
		return
	}
	pdf := r.pdf
	pdf.SetFont("Helvetica", style, h*ptPerMM*0.8)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, h, truncate(pdf, s, w), "", 0, align, false, 0, "")
}

// truncate shortens s with an ellipsis until it fits width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

func footerText(vis model.Visibility, warranty string) string {
	var parts []string
	if vis.Install {
		parts = append(parts, "Install: ________")
	}
	if vis.Warranty {
		parts = append(parts, "Warranty: "+warranty)
	}
	return strings.Join(parts, "   ")
}

func rowsHeight(rows []labelRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	total := rowSpacing * float64(len(rows)-1)
	for _, row := range rows {
		total += row.height
	}
	return total
}

func initial(name string) string {
	for _, r := range strings.ToUpper(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return string(r)
		}
	}
	return "?"
}
