package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List the ancestors of a person generation by generation",
	Long: `Prints the pedigree that 'render' would draw for --root, one generation per
block, each person behind a swatch of their box colour.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	addChartFlags(showCmd)
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	applyChartFlags(cmd)
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	chart, err := buildChart(cmd, e, nil)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	e.printer.Pedigree(chart)
	return nil
}
