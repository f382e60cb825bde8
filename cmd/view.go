package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/fanchart/internal/tui"
	"github.com/papapumpkin/fanchart/internal/watch"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore a fan chart in the terminal",
	Long: `Opens the interactive viewer on --root. Click a sector to expand or collapse
it, drag to rotate, drag the center dot to move the chart, and press m over a
person for the context menu. The chart reloads when the database file changes
unless watching is disabled.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	addChartFlags(viewCmd)
	viewCmd.Flags().Bool("read-only", false, "disable editing")
	viewCmd.Flags().Bool("no-watch", false, "do not reload when the database changes")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	applyChartFlags(cmd)
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	events, err := openEmitter(e.cfg.TelemetryPath)
	if err != nil {
		return err
	}
	defer events.Close()

	chart, err := buildChart(cmd, e, events)
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}

	opts := tui.Options{Chart: chart, DB: e.db, Writer: e.db, Events: events}
	if readOnly, _ := cmd.Flags().GetBool("read-only"); readOnly {
		opts.Writer = nil
	}

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); e.cfg.Watch.Enabled && !noWatch {
		w, err := watch.New(e.db.Path(), e.cfg.Watch.Debounce)
		if err != nil {
			return fmt.Errorf("view: watch %s: %w", e.db.Path(), err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("view: watch %s: %w", e.db.Path(), err)
		}
		defer w.Stop()
		opts.Changes = w.Changes
	}

	e.printer.Debug("viewing %s from %s", chart.Options().Root, e.db.Path())
	return tui.Run(commandContext(cmd), opts)
}
