package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/LabelSheet/internal/config"
	"github.com/piwi3910/LabelSheet/internal/engine"
	"github.com/piwi3910/LabelSheet/internal/input"
	"github.com/piwi3910/LabelSheet/internal/logging"
	"github.com/piwi3910/LabelSheet/internal/model"
	"github.com/piwi3910/LabelSheet/internal/project"
)

// resolveConfig layers defaults, environment, the YAML file, the selected
// preset and the explicitly set layout flags.
func resolveConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	overrides := &config.CLIOverrides{ConfigFile: opts.configFile}
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		overrides.LogLevel = &opts.logLevel
	}
	if flags.Changed("port") {
		overrides.Port = &opts.port
	}
	if flags.Changed("rate-limit-rps") {
		overrides.RateLimitRPS = &opts.rateLimitRPS
	}
	if flags.Changed("rate-limit-burst") {
		overrides.RateLimitBurst = &opts.rateLimitBurst
	}

	base, err := presetLayout(opts)
	if err != nil {
		return config.Config{}, err
	}
	overrides.BaseLayout = base

	if flags.Changed("mode") {
		overrides.Mode = &opts.mode
	}
	if flags.Changed("orientation") {
		overrides.Orientation = &opts.orientation
	}
	floats := []struct {
		name   string
		value  *float64
		target **float64
	}{
		{"label-w", &opts.labelWidth, &overrides.LabelWidth},
		{"label-h", &opts.labelHeight, &overrides.LabelHeight},
		{"small-w", &opts.smallWidth, &overrides.SmallWidth},
		{"small-h", &opts.smallHeight, &overrides.SmallHeight},
		{"margin", &opts.margin, &overrides.Margin},
		{"gap", &opts.gap, &overrides.Gap},
	}
	for _, f := range floats {
		if flags.Changed(f.name) {
			*f.target = f.value
		}
	}
	if flags.Changed("copies") {
		overrides.Copies = &opts.copies
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		return config.Config{}, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// presetLayout returns the settings of --preset, or of the user's default
// preset when the flag is absent. Nil means no preset applies.
func presetLayout(opts *options) (*model.LayoutSettings, error) {
	name := opts.preset
	if name == "" {
		appCfg, err := project.LoadAppConfig(opts.appConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load app config: %w", err)
		}
		name = appCfg.DefaultPreset
	}
	if name == "" {
		return nil, nil
	}

	store, err := project.LoadPresets(opts.presetPath)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	p := store.FindByName(name)
	if p == nil {
		p = store.FindByID(name)
	}
	if p == nil {
		return nil, fmt.Errorf("preset %q not found", name)
	}
	settings := p.Settings
	return &settings, nil
}

// readIdentifiers collects identifiers from positional args, the --input
// file, or stdin, in that order of preference.
func readIdentifiers(cmd *cobra.Command, opts *options, args []string) ([]string, error) {
	if len(args) > 0 {
		ids := input.ParseIdentifiers(strings.Join(args, "\n"))
		if len(ids) == 0 {
			return nil, input.ErrNoIdentifiers
		}
		return ids, nil
	}

	if opts.input == "" {
		ids, err := input.ReadIdentifiers(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return ids, nil
	}

	result := input.ImportFile(opts.input)
	for _, w := range result.Warnings {
		warnf(cmd, "%s", w)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("import %s: %w", opts.input, err)
	}
	rememberInput(cmd, opts)
	return result.Identifiers, nil
}

// rememberInput records the input file in the user's recent list. Failures
// only warn.
func rememberInput(cmd *cobra.Command, opts *options) {
	appCfg, err := project.LoadAppConfig(opts.appConfigPath)
	if err != nil {
		warnf(cmd, "cannot read app config: %v", err)
		return
	}
	appCfg.AddRecentInput(opts.input)
	if err := project.SaveAppConfig(opts.appConfigPath, appCfg); err != nil {
		warnf(cmd, "cannot update recent inputs: %v", err)
	}
}

// buildPlan resolves configuration, reads identifiers and runs the planner.
func buildPlan(cmd *cobra.Command, opts *options, args []string) (config.Config, model.SheetPlan, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return config.Config{}, model.SheetPlan{}, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return config.Config{}, model.SheetPlan{}, fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ids, err := readIdentifiers(cmd, opts, args)
	if err != nil {
		return config.Config{}, model.SheetPlan{}, err
	}

	plan := engine.New(cfg.Layout, engine.WithLogger(logger)).Plan(ids)
	logger.Debug("plan ready",
		zap.String("plan_id", plan.ID),
		zap.Int("identifiers", len(ids)),
		zap.Int("sheets", len(plan.Sheets)),
	)
	return cfg, plan, nil
}
