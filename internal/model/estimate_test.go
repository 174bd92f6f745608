package model

import (
	"math"
	"testing"
)

func TestEstimatePaper(t *testing.T) {
	p := samplePlan()
	est := EstimatePaper(p, 10, 0.2)

	if est.Sheets != 2 {
		t.Errorf("expected 2 sheets, got %d", est.Sheets)
	}
	// ceil(2 * 1.1) = 3
	if est.SheetsWithSpoilage != 3 {
		t.Errorf("expected 3 sheets with spoilage, got %d", est.SheetsWithSpoilage)
	}
	if math.Abs(est.EstimatedCost-0.6) > 1e-9 {
		t.Errorf("expected cost 0.6, got %f", est.EstimatedCost)
	}
	if math.Abs(est.LabelArea-6528) > 1e-9 {
		t.Errorf("expected label area 6528, got %f", est.LabelArea)
	}
	if math.Abs(est.PaperArea-2*210*297) > 1e-9 {
		t.Errorf("expected paper area %f, got %f", 2*210*297.0, est.PaperArea)
	}
	if math.Abs(est.Utilization-p.Efficiency()) > 1e-9 {
		t.Errorf("utilization %f does not match plan efficiency %f", est.Utilization, p.Efficiency())
	}
}

func TestEstimatePaperNoSpoilage(t *testing.T) {
	est := EstimatePaper(samplePlan(), 0, 0)
	if est.SheetsWithSpoilage != 2 {
		t.Errorf("expected 2 sheets, got %d", est.SheetsWithSpoilage)
	}
	if est.EstimatedCost != 0 {
		t.Errorf("expected zero cost without a price, got %f", est.EstimatedCost)
	}
}

func TestEstimatePaperNegativeSpoilage(t *testing.T) {
	est := EstimatePaper(samplePlan(), -25, 1)
	if est.SpoilagePercent != 0 {
		t.Errorf("expected negative spoilage to clamp to 0, got %f", est.SpoilagePercent)
	}
	if est.SheetsWithSpoilage != 2 {
		t.Errorf("expected 2 sheets, got %d", est.SheetsWithSpoilage)
	}
}

func TestEstimatePaperEmptyPlan(t *testing.T) {
	est := EstimatePaper(SheetPlan{}, 10, 1)
	if est.Sheets != 0 || est.SheetsWithSpoilage != 0 || est.EstimatedCost != 0 {
		t.Errorf("expected zero estimate for empty plan, got %+v", est)
	}
}
