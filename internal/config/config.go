package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/LabelSheet/internal/model"
)

const (
	defaultPort           = "8080"
	defaultLogLevel       = "info"
	defaultRateLimitRPS   = 10.0
	defaultRateLimitBurst = 20
	defaultMaxIdentifiers = 10000
)

// Environment variable names.
const (
	EnvPort           = "LABELSHEET_PORT"
	EnvLogLevel       = "LABELSHEET_LOG_LEVEL"
	EnvRateLimitRPS   = "LABELSHEET_RATE_LIMIT_RPS"
	EnvRateLimitBurst = "LABELSHEET_RATE_LIMIT_BURST"
	EnvMode           = "LABELSHEET_MODE"
	EnvOrientation    = "LABELSHEET_ORIENTATION"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	LogLevel             string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	MaxIdentifiers       int

	// Layout is the base LayoutSettings every plan starts from.
	Layout model.LayoutSettings
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Server yamlServer           `yaml:"server"`
	Layout model.LayoutSettings `yaml:"layout"`
}

type yamlServer struct {
	Port                 string        `yaml:"port"`
	LogLevel             string        `yaml:"log_level"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	MaxIdentifiers       int           `yaml:"max_identifiers"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML. Nil means unset.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides. Nil pointers are unset.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	LogLevel       *string
	RateLimitRPS   *float64
	RateLimitBurst *int

	// BaseLayout replaces the resolved layout before the individual layout
	// flags below apply (used for --preset).
	BaseLayout *model.LayoutSettings

	Mode        *string
	Orientation *string
	LabelWidth  *float64
	LabelHeight *float64
	SmallWidth  *float64
	SmallHeight *float64
	Margin      *float64
	Gap         *float64
	Copies      *float64
}

// Load resolves configuration with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		if err := applyFile(&cfg, overrides.ConfigFile); err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		LogLevel:             defaultLogLevel,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         60 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		MaxIdentifiers:       defaultMaxIdentifiers,
		Layout:               model.DefaultSettings(),
	}
}

// applyFile decodes a YAML file onto cfg. The layout section is decoded on
// top of the layout resolved so far, so omitted keys keep their values.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	yamlCfg := yamlConfig{Layout: cfg.Layout}
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}

	return applyYAMLConfig(cfg, &yamlCfg)
}

func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	srv := yamlCfg.Server
	if srv.Port != "" {
		cfg.Port = srv.Port
	}
	if srv.LogLevel != "" {
		cfg.LogLevel = srv.LogLevel
	}

	durations := []struct {
		key    string
		raw    string
		target *time.Duration
	}{
		{"shutdown_grace_period", srv.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{"read_header_timeout", srv.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"write_timeout", srv.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", srv.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("server.%s: %w", d.key, err)
		}
		*d.target = parsed
	}

	if srv.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *srv.EnableRequestLogging
	}
	if srv.MaxIdentifiers > 0 {
		cfg.MaxIdentifiers = srv.MaxIdentifiers
	}
	if srv.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *srv.RateLimit.RPS
	}
	if srv.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *srv.RateLimit.Burst
	}

	cfg.Layout = yamlCfg.Layout
	return nil
}

func applyEnvConfig(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv(EnvPort)); port != "" {
		cfg.Port = port
	}

	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		cfg.LogLevel = level
	}

	if rps := strings.TrimSpace(os.Getenv(EnvRateLimitRPS)); rps != "" {
		value, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q", EnvRateLimitRPS, rps)
		}
		cfg.RateLimitRPS = value
	}

	if burst := strings.TrimSpace(os.Getenv(EnvRateLimitBurst)); burst != "" {
		value, err := strconv.Atoi(burst)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvRateLimitBurst, burst)
		}
		cfg.RateLimitBurst = value
	}

	if mode := strings.TrimSpace(os.Getenv(EnvMode)); mode != "" {
		cfg.Layout.LabelMode = model.LabelMode(strings.ToLower(mode))
	}

	if orientation := strings.TrimSpace(os.Getenv(EnvOrientation)); orientation != "" {
		cfg.Layout.Orientation = model.Orientation(strings.ToLower(orientation))
	}

	return nil
}

func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.RateLimitRPS != nil {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	if overrides.BaseLayout != nil {
		cfg.Layout = *overrides.BaseLayout
	}
	l := &cfg.Layout
	if overrides.Mode != nil {
		l.LabelMode = model.LabelMode(strings.ToLower(*overrides.Mode))
	}
	if overrides.Orientation != nil {
		l.Orientation = model.Orientation(strings.ToLower(*overrides.Orientation))
	}
	setFloat(&l.LargeLabel.Width, overrides.LabelWidth)
	setFloat(&l.LargeLabel.Height, overrides.LabelHeight)
	setFloat(&l.SmallBox.Width, overrides.SmallWidth)
	setFloat(&l.SmallBox.Height, overrides.SmallHeight)
	setFloat(&l.Margin, overrides.Margin)
	setFloat(&l.Gap, overrides.Gap)
	if overrides.Copies != nil {
		l.SmallCopies = *overrides.Copies
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit rps must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit burst must be >= 0")
	}

	switch cfg.Layout.LabelMode {
	case model.ModeBig, model.ModeSmall, model.ModeCombo:
	default:
		return fmt.Errorf("unknown label mode %q (want big, small or combo)", cfg.Layout.LabelMode)
	}
	switch cfg.Layout.Orientation {
	case model.Portrait, model.Landscape:
	default:
		return fmt.Errorf("unknown orientation %q (want portrait or landscape)", cfg.Layout.Orientation)
	}
	return nil
}
