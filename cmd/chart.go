package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/fanchart/internal/fan"
	"github.com/papapumpkin/fanchart/internal/genealogy"
	"github.com/papapumpkin/fanchart/internal/telemetry"
)

// errNoPerson is returned when a handle names nobody in the database.
var errNoPerson = errors.New("no such person")

// chartFlags maps the chart flags shared by render, show and view to their
// config keys.
var chartFlags = map[string]string{
	"generations": "chart.generations",
	"form":        "chart.form",
	"background":  "chart.background",
	"surname":     "chart.surname",
}

func addChartFlags(c *cobra.Command) {
	c.Flags().String("root", "", "handle of the root person (see 'fanchart person list')")
	c.Flags().Int("generations", 0, "generations to show, 2 to 12")
	c.Flags().String("form", "", "chart form: circle, half-circle or quadrant")
	c.Flags().String("background", "", "background mode, e.g. grad-gen, grad-age, gender, white")
	c.Flags().String("surname", "", "highlight people with this surname")
	_ = c.MarkFlagRequired("root")
}

// applyChartFlags copies the chart flags the user set into viper, so they
// override the config file and environment.
func applyChartFlags(cmd *cobra.Command) {
	for name, key := range chartFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		viper.Set(key, f.Value.String())
	}
}

// openEmitter opens the configured telemetry file. It returns a nil emitter,
// which records nothing, when no file is configured.
func openEmitter(path string) (*telemetry.Emitter, error) {
	if path == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(path)
}

// buildChart resets a chart on the --root person with the configured
// options. Degraded alive estimates are recorded to events.
func buildChart(cmd *cobra.Command, e *env, events *telemetry.Emitter) (*fan.Chart, error) {
	ctx := commandContext(cmd)
	rootFlag, _ := cmd.Flags().GetString("root")
	root := genealogy.Handle(rootFlag)
	p, err := e.db.Person(ctx, root)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w %q", errNoPerson, root)
	}

	opts, err := e.cfg.ChartOptions(root)
	if err != nil {
		return nil, err
	}
	opts.OnDegraded = func(p *genealogy.Person, err error) {
		e.printer.Debug("alive estimate for %s: %v", p.Handle, err)
		_ = events.Record(telemetry.KindAliveDegraded, string(root), "", map[string]string{
			"person": string(p.Handle),
			"error":  err.Error(),
		})
	}

	chart := fan.NewChart(e.db, e.cfg.Names())
	chart.SetValues(opts)
	if err := chart.Reset(ctx); err != nil {
		return nil, err
	}
	return chart, nil
}
