// LabelSheet packs device identifiers onto A4 label sheets.
//
// Usage:
//
//	labelsheet plan   --input imeis.csv --mode combo --copies 2
//	labelsheet render --input imeis.xlsx --output labels.pdf
//	labelsheet guides --input imeis.txt --output guides.dxf
//	labelsheet serve  --config labelsheet.yaml
//
// Build:
//
//	go build -o labelsheet ./cmd/labelsheet
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LabelSheet/internal/project"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configFile    string
	appConfigPath string
	presetPath    string
	preset        string
	logLevel      string
	input         string

	port           string
	rateLimitRPS   float64
	rateLimitBurst int

	mode        string
	orientation string
	labelWidth  float64
	labelHeight float64
	smallWidth  float64
	smallHeight float64
	margin      float64
	gap         float64
	copies      float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "labelsheet",
		Short: "Pack device identifiers onto printable A4 label sheets.",
		Long: `LabelSheet lays out one label per identifier (IMEI or serial number) ` +
			`on A4 sheets in big, small or combo mode, and renders the result ` +
			`as a label PDF, a layout report or a DXF cut guide.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "Path to YAML configuration file")
	pf.StringVar(&opts.appConfigPath, "app-config", project.DefaultConfigPath(), "Path to the user preferences file")
	pf.StringVar(&opts.presetPath, "presets", project.DefaultPresetPath(), "Path to the layout preset store")
	pf.StringVar(&opts.preset, "preset", "", "Layout preset (name or ID) to start from")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	pf.StringVar(&opts.mode, "mode", "", "Label mode: big, small or combo")
	pf.StringVar(&opts.orientation, "orientation", "", "Paper orientation: portrait or landscape")
	pf.Float64Var(&opts.labelWidth, "label-w", 0, "Large label width in mm")
	pf.Float64Var(&opts.labelHeight, "label-h", 0, "Large label height in mm")
	pf.Float64Var(&opts.smallWidth, "small-w", 0, "Small label symbol box width in mm")
	pf.Float64Var(&opts.smallHeight, "small-h", 0, "Small label symbol box height in mm")
	pf.Float64Var(&opts.margin, "margin", 0, "Page margin in mm")
	pf.Float64Var(&opts.gap, "gap", 0, "Gap between labels in mm")
	pf.Float64Var(&opts.copies, "copies", 0, "Small labels per identifier in combo mode (1-50, fractions truncate)")

	root.AddCommand(
		newPlanCmd(opts),
		newRenderCmd(opts),
		newGuidesCmd(opts),
		newServeCmd(opts),
		newPresetCmd(opts),
		newBackupCmd(opts),
	)
	return root
}

// warnf prints a non-fatal notice to the command's error stream.
func warnf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
}
