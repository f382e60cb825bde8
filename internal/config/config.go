// Package config loads fanchart settings from .fanchart.yaml, FANCHART_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/palette"
	"github.com/papapumpkin/fanchart/internal/sector"
	"github.com/papapumpkin/fanchart/internal/textfit"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// FANCHART_CHART_GENERATIONS.
const EnvPrefix = "FANCHART"

// Generation limits accepted by Validate.
const (
	MinGenerations = 2
	MaxGenerations = 12
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// ChartConfig holds the chart appearance settings.
type ChartConfig struct {
	Generations  int     `mapstructure:"generations"`
	Form         string  `mapstructure:"form"`
	Background   string  `mapstructure:"background"`
	ChildRing    bool    `mapstructure:"child_ring"`
	FlipNames    bool    `mapstructure:"flip_names"`
	TwoLineNames bool    `mapstructure:"two_line_names"`
	RadialText   bool    `mapstructure:"radial_text"`
	FontFamily   string  `mapstructure:"font_family"`
	FontSize     float64 `mapstructure:"font_size"`
	GradStart    string  `mapstructure:"grad_start"`
	GradEnd      string  `mapstructure:"grad_end"`
	AlphaFilter  float64 `mapstructure:"alpha_filter"`
	SurnameFirst bool    `mapstructure:"surname_first"`
	// Surname, when set, highlights people carrying it and fades the rest.
	Surname string `mapstructure:"surname"`
}

// RenderConfig holds image export settings.
type RenderConfig struct {
	Scale float64 `mapstructure:"scale"`
}

// WatchConfig controls reloading the viewer when the database changes.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Config holds all runtime configuration of a fanchart invocation.
// Values are populated from .fanchart.yaml, FANCHART_* env vars, and CLI flags.
type Config struct {
	DBPath        string       `mapstructure:"db"`
	Verbose       bool         `mapstructure:"verbose"`
	TelemetryPath string       `mapstructure:"telemetry"`
	Chart         ChartConfig  `mapstructure:"chart"`
	Render        RenderConfig `mapstructure:"render"`
	Watch         WatchConfig  `mapstructure:"watch"`
}

// BindEnv makes viper read FANCHART_* variables, with nested keys joined by
// underscores.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags, and validates it.
func Load() (Config, error) {
	viper.SetDefault("db", "fanchart.db")
	viper.SetDefault("verbose", false)
	viper.SetDefault("telemetry", "")
	viper.SetDefault("chart.generations", 6)
	viper.SetDefault("chart.form", sector.FormCircle.String())
	viper.SetDefault("chart.background", palette.GradGen.String())
	viper.SetDefault("chart.child_ring", true)
	viper.SetDefault("chart.flip_names", true)
	viper.SetDefault("chart.two_line_names", true)
	viper.SetDefault("chart.radial_text", true)
	viper.SetDefault("chart.font_family", "Go")
	viper.SetDefault("chart.font_size", 8.0)
	viper.SetDefault("chart.grad_start", "#0000ff")
	viper.SetDefault("chart.grad_end", "#ff0000")
	viper.SetDefault("chart.alpha_filter", 0.5)
	viper.SetDefault("chart.surname_first", false)
	viper.SetDefault("chart.surname", "")
	viper.SetDefault("render.scale", 2.0)
	viper.SetDefault("watch.enabled", true)
	viper.SetDefault("watch.debounce", 250*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting out of range.
func (c Config) Validate() error {
	ch := c.Chart
	if ch.Generations < MinGenerations || ch.Generations > MaxGenerations {
		return fmt.Errorf("%w: chart.generations %d outside [%d, %d]", ErrInvalid, ch.Generations, MinGenerations, MaxGenerations)
	}
	if _, err := sector.ParseForm(ch.Form); err != nil {
		return fmt.Errorf("%w: chart.form: %w", ErrInvalid, err)
	}
	if _, err := palette.ParseMode(ch.Background); err != nil {
		return fmt.Errorf("%w: chart.background: %w", ErrInvalid, err)
	}
	if !textfit.KnownFamily(ch.FontFamily) {
		return fmt.Errorf("%w: chart.font_family %q (have %s)", ErrInvalid, ch.FontFamily, strings.Join(textfit.Families(), ", "))
	}
	if ch.FontSize <= 0 {
		return fmt.Errorf("%w: chart.font_size %g must be positive", ErrInvalid, ch.FontSize)
	}
	for key, hex := range map[string]string{"chart.grad_start": ch.GradStart, "chart.grad_end": ch.GradEnd} {
		if _, err := palette.ParseHex(hex); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
		}
	}
	if ch.AlphaFilter < 0 || ch.AlphaFilter > 1 {
		return fmt.Errorf("%w: chart.alpha_filter %g outside [0, 1]", ErrInvalid, ch.AlphaFilter)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("%w: render.scale %g must be positive", ErrInvalid, c.Render.Scale)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce %s is negative", ErrInvalid, c.Watch.Debounce)
	}
	return nil
}

// ChartOptions converts the chart settings to fan options for root. The
// config must have passed Validate.
func (c Config) ChartOptions(root genealogy.Handle) (fan.Options, error) {
	ch := c.Chart
	o := fan.DefaultOptions()
	o.Root = root
	o.Generations = ch.Generations
	o.ChildRing = ch.ChildRing
	o.FlipNames = ch.FlipNames
	o.TwoLineNames = ch.TwoLineNames
	o.RadialText = ch.RadialText
	o.FontFamily = ch.FontFamily
	o.FontSize = ch.FontSize
	o.AlphaFilter = ch.AlphaFilter

	var err error
	if o.Form, err = sector.ParseForm(ch.Form); err != nil {
		return fan.Options{}, fmt.Errorf("config: %w", err)
	}
	if o.Background, err = palette.ParseMode(ch.Background); err != nil {
		return fan.Options{}, fmt.Errorf("config: %w", err)
	}
	if o.GradStart, err = palette.ParseHex(ch.GradStart); err != nil {
		return fan.Options{}, fmt.Errorf("config: %w", err)
	}
	if o.GradEnd, err = palette.ParseHex(ch.GradEnd); err != nil {
		return fan.Options{}, fmt.Errorf("config: %w", err)
	}
	if ch.Surname != "" {
		o.Filter = genealogy.SurnameFilter{Surname: ch.Surname}
	}
	return o, nil
}

// Names returns the name displayer the settings ask for.
func (c Config) Names() genealogy.Displayer {
	return genealogy.Displayer{SurnameFirst: c.Chart.SurnameFirst}
}
