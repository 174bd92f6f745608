package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LabelSheet/internal/export"
)

func newRenderCmd(opts *options) *cobra.Command {
	var (
		output string
		report string
	)

	cmd := &cobra.Command{
		Use:   "render [IDENTIFIER...]",
		Short: "Render the label sheets as a printable PDF.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, plan, err := buildPlan(cmd, opts, args)
			if err != nil {
				return err
			}

			if err := export.ExportPDF(output, plan, cfg.Layout.Normalize()); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sheet(s) to %s\n", len(plan.Sheets), output)

			if report != "" {
				if err := export.ExportReport(report, plan); err != nil {
					return fmt.Errorf("write %s: %w", report, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote layout report to %s\n", report)
			}
			return nil
		},
	}

	addInputFlag(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "labels.pdf", "PDF file to write")
	cmd.Flags().StringVar(&report, "report", "", "Also write a layout report PDF to this path")
	return cmd
}

func newGuidesCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "guides [IDENTIFIER...]",
		Short: "Write a DXF cut guide with one rectangle per label.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, plan, err := buildPlan(cmd, opts, args)
			if err != nil {
				return err
			}

			if err := export.ExportGuides(output, plan); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote cut guide for %d sheet(s) to %s\n", len(plan.Sheets), output)
			return nil
		},
	}

	addInputFlag(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "guides.dxf", "DXF file to write")
	return cmd
}
