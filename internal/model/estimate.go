package model

import "math"

// PaperEstimate holds the results of a label stock purchasing calculation.
type PaperEstimate struct {
	LabelArea          float64 `json:"label_area"`           // Total area of all placed labels (sq mm)
	PaperArea          float64 `json:"paper_area"`           // Total area of the sheets in the plan (sq mm)
	Sheets             int     `json:"sheets"`               // Sheets in the plan
	SheetsWithSpoilage int     `json:"sheets_with_spoilage"` // Recommended sheets including misprint allowance
	SpoilagePercent    float64 `json:"spoilage_percent"`     // Allowance applied (e.g., 5 for 5%)
	EstimatedCost      float64 `json:"estimated_cost"`       // Total cost if pricing available
	PricePerSheet      float64 `json:"price_per_sheet"`      // Price used for estimation
	Utilization        float64 `json:"utilization"`          // Label area as a percentage of paper area
}

// EstimatePaper computes how many label sheets to stock for a plan.
// A negative spoilage percentage counts as zero.
func EstimatePaper(plan SheetPlan, spoilagePercent, pricePerSheet float64) PaperEstimate {
	var labelArea float64
	for _, s := range plan.Sheets {
		labelArea += s.UsedArea()
	}

	sheets := len(plan.Sheets)
	spoilagePercent = math.Max(spoilagePercent, 0)

	withSpoilage := int(math.Ceil(float64(sheets) * (1.0 + spoilagePercent/100.0)))
	if withSpoilage < sheets {
		withSpoilage = sheets
	}

	return PaperEstimate{
		LabelArea:          labelArea,
		PaperArea:          plan.Page.Area() * float64(sheets),
		Sheets:             sheets,
		SheetsWithSpoilage: withSpoilage,
		SpoilagePercent:    spoilagePercent,
		EstimatedCost:      float64(withSpoilage) * pricePerSheet,
		PricePerSheet:      pricePerSheet,
		Utilization:        plan.Efficiency(),
	}
}
