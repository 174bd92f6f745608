package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/LabelSheet/internal/model"
	"github.com/piwi3910/LabelSheet/internal/project"
)

func newPresetCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved layout presets.",
	}
	cmd.AddCommand(newPresetListCmd(opts), newPresetSaveCmd(opts), newPresetDeleteCmd(opts), newPresetDefaultCmd(opts))
	return cmd
}

func newPresetListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := project.LoadPresets(opts.presetPath)
			if err != nil {
				return fmt.Errorf("load presets: %w", err)
			}
			if len(store.Presets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No presets saved.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tMODE\tORIENTATION\tLABEL\tDESCRIPTION")
			for _, p := range store.Presets {
				s := p.Settings
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%gx%g\t%s\n",
					p.ID, p.Name, s.LabelMode, s.Orientation, s.LargeLabel.Width, s.LargeLabel.Height, p.Description)
			}
			return tw.Flush()
		},
	}
}

func newPresetSaveCmd(opts *options) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "save NAME",
		Short: "Save the resolved layout (config, preset and flags) as a preset.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}

			store, err := project.LoadPresets(opts.presetPath)
			if err != nil {
				return fmt.Errorf("load presets: %w", err)
			}
			p := model.NewLayoutPreset(args[0], description, cfg.Layout.Normalize())
			store.Put(p)
			if err := project.SavePresets(opts.presetPath, store); err != nil {
				return fmt.Errorf("save presets: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "Preset description")
	return cmd
}

func newPresetDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME|ID",
		Short: "Delete a preset.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := project.LoadPresets(opts.presetPath)
			if err != nil {
				return fmt.Errorf("load presets: %w", err)
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("preset %q not found", args[0])
			}
			if err := project.SavePresets(opts.presetPath, store); err != nil {
				return fmt.Errorf("save presets: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q\n", args[0])
			return nil
		},
	}
}

func newPresetDefaultCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "default [NAME]",
		Short: "Set the preset applied when --preset is absent; no name clears it.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := project.LoadAppConfig(opts.appConfigPath)
			if err != nil {
				return fmt.Errorf("load app config: %w", err)
			}

			name := ""
			if len(args) == 1 {
				store, err := project.LoadPresets(opts.presetPath)
				if err != nil {
					return fmt.Errorf("load presets: %w", err)
				}
				if store.FindByName(args[0]) == nil {
					return fmt.Errorf("preset %q not found", args[0])
				}
				name = args[0]
			}

			appCfg.DefaultPreset = name
			if err := project.SaveAppConfig(opts.appConfigPath, appCfg); err != nil {
				return fmt.Errorf("save app config: %w", err)
			}
			if name == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared default preset")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Default preset is now %q\n", name)
			}
			return nil
		},
	}
}

func newBackupCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import preferences and presets as one JSON file.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "export FILE",
		Short: "Write preferences and presets to FILE.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appCfg, err := project.LoadAppConfig(opts.appConfigPath)
			if err != nil {
				return fmt.Errorf("load app config: %w", err)
			}
			store, err := project.LoadPresets(opts.presetPath)
			if err != nil {
				return fmt.Errorf("load presets: %w", err)
			}
			if err := project.ExportAllData(args[0], appCfg, store); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d preset(s) to %s\n", len(store.Presets), args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import FILE",
		Short: "Replace preferences and presets with the contents of FILE.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(opts.appConfigPath, data.Config); err != nil {
				return fmt.Errorf("save app config: %w", err)
			}
			if err := project.SavePresets(opts.presetPath, data.Presets); err != nil {
				return fmt.Errorf("save presets: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d preset(s) from backup %s\n", len(data.Presets.Presets), data.Version)
			return nil
		},
	})
	return cmd
}
