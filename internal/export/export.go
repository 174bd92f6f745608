// Package export writes sheet plans to printable and machine-readable
// formats: label PDFs, layout reports, DXF cut guides and JSON.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/LabelSheet/internal/model"
)

// ErrEmptyPlan is returned when asked to export a plan with no sheets.
var ErrEmptyPlan = errors.New("no sheets to export")

// SheetSummary counts one sheet's placements by zone.
type SheetSummary struct {
	Index       int     `json:"index"`
	Large       int     `json:"large"`
	Filler      int     `json:"filler"`
	Side        int     `json:"side"`
	Bottom      int     `json:"bottom"`
	Small       int     `json:"small"` // uniform small mode only
	Utilization float64 `json:"utilization"`
}

// Summary is a compact report of a sheet plan.
type Summary struct {
	PlanID      string            `json:"plan_id"`
	Mode        model.LabelMode   `json:"mode"`
	Orientation model.Orientation `json:"orientation"`
	Identifiers int               `json:"identifiers"`
	Sheets      int               `json:"sheets"`
	LargeLabels int               `json:"large_labels"`
	SmallLabels int               `json:"small_labels"`
	Copies      int               `json:"copies,omitempty"`
	Utilization float64           `json:"utilization"` // placed area / paper area, percent
	PerSheet    []SheetSummary    `json:"per_sheet"`
}

// Summarize builds the Summary of plan.
func Summarize(plan model.SheetPlan) Summary {
	s := Summary{
		PlanID:      plan.ID,
		Mode:        plan.Mode,
		Orientation: plan.Orientation,
		Identifiers: len(plan.Identifiers()),
		Sheets:      len(plan.Sheets),
		LargeLabels: plan.Count(model.KindLarge),
		SmallLabels: plan.Count(model.KindSmall),
		Utilization: plan.Efficiency(),
		PerSheet:    make([]SheetSummary, 0, len(plan.Sheets)),
	}
	if plan.Mode == model.ModeCombo {
		s.Copies = plan.Copies
	}

	pageArea := plan.Page.Area()
	for _, sheet := range plan.Sheets {
		ss := SheetSummary{
			Index:  sheet.Index,
			Large:  sheet.CountZone(model.ZoneLarge),
			Filler: sheet.CountZone(model.ZoneFiller),
			Side:   sheet.CountZone(model.ZoneSide),
			Bottom: sheet.CountZone(model.ZoneBottom),
			Small:  sheet.CountZone(model.ZoneSmall),
		}
		if pageArea > 0 {
			ss.Utilization = sheet.UsedArea() / pageArea * 100.0
		}
		s.PerSheet = append(s.PerSheet, ss)
	}
	return s
}

// WriteSummaryText writes a human-readable table of s.
func WriteSummaryText(w io.Writer, s Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Plan:\t%s\n", s.PlanID)
	fmt.Fprintf(tw, "Mode:\t%s (%s)\n", s.Mode, s.Orientation)
	fmt.Fprintf(tw, "Identifiers:\t%d\n", s.Identifiers)
	fmt.Fprintf(tw, "Sheets:\t%d\n", s.Sheets)
	fmt.Fprintf(tw, "Labels:\t%d large, %d small\n", s.LargeLabels, s.SmallLabels)
	if s.Copies > 0 {
		fmt.Fprintf(tw, "Small copies:\t%d per identifier\n", s.Copies)
	}
	fmt.Fprintf(tw, "Utilization:\t%.1f%%\n", s.Utilization)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Sheet\tLarge\tFiller\tSide\tBottom\tSmall\tUsed")
	for _, ss := range s.PerSheet {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%.1f%%\n",
			ss.Index+1, ss.Large, ss.Filler, ss.Side, ss.Bottom, ss.Small, ss.Utilization)
	}
	return tw.Flush()
}

// WritePlanJSON writes plan as indented JSON.
func WritePlanJSON(w io.Writer, plan model.SheetPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return nil
}

// ReadPlanJSON decodes a plan written by WritePlanJSON.
func ReadPlanJSON(r io.Reader) (model.SheetPlan, error) {
	var plan model.SheetPlan
	if err := json.NewDecoder(r).Decode(&plan); err != nil {
		return model.SheetPlan{}, fmt.Errorf("failed to decode plan: %w", err)
	}
	return plan, nil
}
