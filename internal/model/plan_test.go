package model

import (
	"math"
	"reflect"
	"testing"
)

func samplePlan() SheetPlan {
	return SheetPlan{
		Mode: ModeCombo,
		Page: PageGeometry{Width: 210, Height: 297},
		Sheets: []Sheet{
			{
				Index: 0,
				Placements: []Placement{
					{Kind: KindLarge, Identifier: "111", Zone: ZoneLarge, Width: 50, Height: 30},
					{Kind: KindLarge, Identifier: "222", Zone: ZoneLarge, Width: 50, Height: 30},
					{Kind: KindSmall, Identifier: "111", Zone: ZoneFiller, Width: 42, Height: 28},
				},
				Zones: []ZoneLayout{{Zone: ZoneLarge, Columns: 3, Rows: 1}},
			},
			{
				Index: 1,
				Placements: []Placement{
					{Kind: KindSmall, Identifier: "111", Copy: 1, Zone: ZoneBottom, Width: 42, Height: 28},
					{Kind: KindSmall, Identifier: "222", Zone: ZoneBottom, Width: 42, Height: 28},
				},
			},
		},
	}
}

func TestSheetPlanCounts(t *testing.T) {
	p := samplePlan()
	if p.IsEmpty() {
		t.Fatal("plan should not be empty")
	}
	if got := p.Count(KindLarge); got != 2 {
		t.Errorf("expected 2 large, got %d", got)
	}
	if got := p.Count(KindSmall); got != 3 {
		t.Errorf("expected 3 small, got %d", got)
	}
	if got := p.CountZone(ZoneBottom); got != 2 {
		t.Errorf("expected 2 bottom, got %d", got)
	}
	if got := len(p.Placements()); got != 5 {
		t.Errorf("expected 5 placements, got %d", got)
	}
}

func TestSheetPlanIdentifiers(t *testing.T) {
	p := samplePlan()
	if got := p.Identifiers(); !reflect.DeepEqual(got, []string{"111", "222"}) {
		t.Errorf("unexpected identifiers %v", got)
	}

	// Small-only plans report their small identifiers
	small := SheetPlan{Sheets: []Sheet{{Placements: []Placement{
		{Kind: KindSmall, Identifier: "9"},
		{Kind: KindSmall, Identifier: "8"},
		{Kind: KindSmall, Identifier: "9"},
	}}}}
	if got := small.Identifiers(); !reflect.DeepEqual(got, []string{"9", "8"}) {
		t.Errorf("unexpected identifiers %v", got)
	}
}

func TestSheetLayout(t *testing.T) {
	s := samplePlan().Sheets[0]
	z, ok := s.Layout(ZoneLarge)
	if !ok || z.Columns != 3 {
		t.Errorf("expected large layout with 3 columns, got %+v %v", z, ok)
	}
	if _, ok := s.Layout(ZoneSide); ok {
		t.Error("sheet has no side zone")
	}
}

func TestSheetPlanEfficiency(t *testing.T) {
	p := samplePlan()
	used := 2*50*30 + 3*42*28.0
	want := used / (2 * 210 * 297) * 100
	if math.Abs(p.Efficiency()-want) > 1e-9 {
		t.Errorf("expected efficiency %.4f, got %.4f", want, p.Efficiency())
	}

	if (SheetPlan{}).Efficiency() != 0 {
		t.Error("empty plan should have zero efficiency")
	}
}

func TestPlanEstimatePaper(t *testing.T) {
	p := samplePlan()
	est := EstimatePaper(p, 50, 0.25)

	if est.Sheets != 2 {
		t.Errorf("expected 2 sheets, got %d", est.Sheets)
	}
	if est.SheetsWithSpoilage != 3 {
		t.Errorf("expected 3 sheets with spoilage, got %d", est.SheetsWithSpoilage)
	}
	if math.Abs(est.EstimatedCost-0.75) > 1e-9 {
		t.Errorf("expected cost 0.75, got %v", est.EstimatedCost)
	}
	if math.Abs(est.PaperArea-2*210*297) > 1e-9 {
		t.Errorf("unexpected paper area %v", est.PaperArea)
	}
	if est.LabelArea <= 0 || est.Utilization <= 0 {
		t.Error("expected positive label area and utilization")
	}
}

func TestPlanEstimatePaperNegativeSpoilage(t *testing.T) {
	est := EstimatePaper(samplePlan(), -10, 1)
	if est.SpoilagePercent != 0 || est.SheetsWithSpoilage != 2 {
		t.Errorf("negative spoilage should be ignored, got %v %d", est.SpoilagePercent, est.SheetsWithSpoilage)
	}
}

func TestPlanEstimatePaperEmptyPlan(t *testing.T) {
	est := EstimatePaper(SheetPlan{}, 10, 1)
	if est.Sheets != 0 || est.SheetsWithSpoilage != 0 || est.EstimatedCost != 0 {
		t.Errorf("empty plan should need no paper, got %+v", est)
	}
}
