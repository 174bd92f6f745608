package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/LabelSheet/internal/model"
)

// fakeSymbols returns a fixed PNG and records what it was asked to encode.
type fakeSymbols struct {
	qr, barcode []string
	failBarcode bool
}

func (f *fakeSymbols) QR(content string) ([]byte, error) {
	f.qr = append(f.qr, content)
	return DefaultSymbols{}.QR("x")
}

func (f *fakeSymbols) Barcode(content string) ([]byte, error) {
	f.barcode = append(f.barcode, content)
	if f.failBarcode {
		return nil, errors.New("unsupported")
	}
	return DefaultSymbols{}.Barcode("0")
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	plan, settings := buildTestPlan(model.ModeCombo, 30, 2)

	if err := ExportPDF(path, plan, settings); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestWritePDF_EmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	err := WritePDF(&buf, model.SheetPlan{}, model.DefaultSettings())
	if !errors.Is(err, ErrEmptyPlan) {
		t.Fatalf("expected ErrEmptyPlan, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an empty plan")
	}
}

func TestWritePDF_Header(t *testing.T) {
	plan, settings := buildTestPlan(model.ModeBig, 3, 1)
	var buf bytes.Buffer
	if err := WritePDF(&buf, plan, settings); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Error("output is not a PDF")
	}
}

func TestRenderLabels_OnePagePerSheet(t *testing.T) {
	for _, mode := range []model.LabelMode{model.ModeBig, model.ModeSmall, model.ModeCombo} {
		plan, settings := buildTestPlan(mode, 50, 2)
		pdf, err := renderLabels(plan, settings, &fakeSymbols{})
		if err != nil {
			t.Fatalf("%s: renderLabels returned error: %v", mode, err)
		}
		if pdf.PageCount() != len(plan.Sheets) {
			t.Errorf("%s: expected %d pages, got %d", mode, len(plan.Sheets), pdf.PageCount())
		}
	}
}

func TestRenderLabels_LandscapePages(t *testing.T) {
	s := model.DefaultSettings()
	s.Orientation = model.Landscape
	plan := model.SheetPlan{
		Orientation: model.Landscape,
		Page:        model.PageGeometry{Width: 297, Height: 210},
		Sheets: []model.Sheet{{Placements: []model.Placement{
			{Kind: model.KindLarge, Identifier: "356938035643809", X: 8, Y: 8, Width: 50, Height: 30},
		}}},
	}
	pdf, err := renderLabels(plan, s, &fakeSymbols{})
	if err != nil {
		t.Fatalf("renderLabels returned error: %v", err)
	}
	w, h := pdf.GetPageSize()
	if w <= h {
		t.Errorf("expected landscape page, got %.0f x %.0f", w, h)
	}
}

func TestRenderLabels_CodeModes(t *testing.T) {
	plan, settings := buildTestPlan(model.ModeBig, 2, 1)

	tests := []struct {
		mode            model.CodeMode
		wantQR, wantBar int
	}{
		{model.CodeBarcode, 0, 2},
		{model.CodeQR, 2, 0},
		{model.CodeBoth, 2, 2},
	}
	for _, tt := range tests {
		settings.CodeMode = tt.mode
		symbols := &fakeSymbols{}
		if _, err := renderLabels(plan, settings, symbols); err != nil {
			t.Fatalf("%s: renderLabels returned error: %v", tt.mode, err)
		}
		if len(symbols.qr) != tt.wantQR || len(symbols.barcode) != tt.wantBar {
			t.Errorf("%s: expected %d QR and %d barcodes, got %d and %d",
				tt.mode, tt.wantQR, tt.wantBar, len(symbols.qr), len(symbols.barcode))
		}
	}
}

func TestRenderLabels_VisibilityHidesSymbols(t *testing.T) {
	plan, settings := buildTestPlan(model.ModeBig, 1, 1)
	settings.CodeMode = model.CodeBoth
	settings.Visibility.QR = false
	settings.Visibility.Barcode = false

	symbols := &fakeSymbols{}
	if _, err := renderLabels(plan, settings, symbols); err != nil {
		t.Fatalf("renderLabels returned error: %v", err)
	}
	if len(symbols.qr)+len(symbols.barcode) != 0 {
		t.Errorf("hidden symbols were encoded: %v %v", symbols.qr, symbols.barcode)
	}
}

func TestRenderLabels_SmallLabelSerialText(t *testing.T) {
	plan, settings := buildTestPlan(model.ModeSmall, 1, 1)
	settings.SmallTextMode = model.SmallTextSerial
	settings.SmallCodeMode = model.CodeQR

	symbols := &fakeSymbols{}
	if _, err := renderLabels(plan, settings, symbols); err != nil {
		t.Fatalf("renderLabels returned error: %v", err)
	}
	if len(symbols.qr) != 1 || symbols.qr[0] != "VLPRO35600000" {
		t.Errorf("expected serial number QR content, got %v", symbols.qr)
	}
}

func TestRenderLabels_EncodesEachSymbolOnce(t *testing.T) {
	// Combo copies share the identifier, so the small barcode is reused
	plan, settings := buildTestPlan(model.ModeCombo, 1, 5)
	symbols := &fakeSymbols{}
	if _, err := renderLabels(plan, settings, symbols); err != nil {
		t.Fatalf("renderLabels returned error: %v", err)
	}
	if len(symbols.barcode) != 1 {
		t.Errorf("expected a single barcode encoding, got %d", len(symbols.barcode))
	}
}

func TestRenderLabels_BarcodeFailureDoesNotAbort(t *testing.T) {
	plan, settings := buildTestPlan(model.ModeBig, 2, 1)
	pdf, err := renderLabels(plan, settings, &fakeSymbols{failBarcode: true})
	if err != nil {
		t.Fatalf("barcode errors should be drawn, not returned: %v", err)
	}
	if pdf.PageCount() != 1 {
		t.Errorf("expected 1 page, got %d", pdf.PageCount())
	}
}

func TestTruncateAndFooter(t *testing.T) {
	if got := footerText(model.AllVisible(), "6 Months"); got != "Install: ________   Warranty: 6 Months" {
		t.Errorf("unexpected footer %q", got)
	}
	vis := model.AllVisible()
	vis.Install = false
	vis.Warranty = false
	if got := footerText(vis, "x"); got != "" {
		t.Errorf("expected empty footer, got %q", got)
	}
	if initial("  acme") != "A" {
		t.Errorf("expected initial A, got %q", initial("  acme"))
	}
}
