package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LabelSheet/internal/export"
	"github.com/piwi3910/LabelSheet/internal/model"
)

func addInputFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Identifier file (.csv, .xlsx or text); stdin when omitted")
}

func newPlanCmd(opts *options) *cobra.Command {
	var (
		format   string
		spoilage float64
		price    float64
	)

	cmd := &cobra.Command{
		Use:   "plan [IDENTIFIER...]",
		Short: "Lay out identifiers and print the sheet plan.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "text" {
				return fmt.Errorf("unknown format %q (want json or text)", format)
			}

			_, plan, err := buildPlan(cmd, opts, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				return export.WritePlanJSON(out, plan)
			}

			if err := export.WriteSummaryText(out, export.Summarize(plan)); err != nil {
				return err
			}
			est := model.EstimatePaper(plan, spoilage, price)
			fmt.Fprintf(out, "\nSheets to stock: %d (%.0f%% spoilage)\n", est.SheetsWithSpoilage, est.SpoilagePercent)
			if est.PricePerSheet > 0 {
				fmt.Fprintf(out, "Estimated cost: %.2f\n", est.EstimatedCost)
			}
			return nil
		},
	}

	addInputFlag(cmd, opts)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: json or text")
	cmd.Flags().Float64Var(&spoilage, "spoilage", 0, "Misprint allowance in percent for the stock estimate")
	cmd.Flags().Float64Var(&price, "price", 0, "Price per sheet for the cost estimate")
	return cmd
}
