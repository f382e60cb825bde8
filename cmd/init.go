package cmd

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the genealogical database",
	Long: `Creates the SQLite database named by --db (or the db config key) if it
does not exist yet, and reports how many people and families it holds.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	people, families, err := e.db.Counts(commandContext(cmd))
	if err != nil {
		return err
	}
	e.printer.Banner()
	e.printer.DatabaseReady(e.db.Path(), people, families)
	if people == 0 {
		e.printer.Info("add people with 'fanchart import' or 'fanchart person add'")
	}
	return nil
}
