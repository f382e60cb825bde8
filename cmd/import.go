package cmd

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <people.toml>",
	Short: "Import people, families and templates from a TOML file",
	Long: `Reads a TOML document of [[person]], [[family]] and [[template]] tables and
stores it in one transaction. Person ids in the document are local to it;
every imported person gets a fresh handle, listed with --verbose.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("import: read %s: %w", path, err)
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	res, err := e.db.Import(commandContext(cmd), data)
	if err != nil {
		return fmt.Errorf("import: %s: %w", path, err)
	}
	e.printer.Imported(path, res.People, res.Families, res.Templates)
	if res.People == 0 && res.Families == 0 && res.Templates == 0 {
		e.printer.Warn(path + " holds no [[person]], [[family]] or [[template]] tables")
	}

	for _, id := range slices.Sorted(maps.Keys(res.Handles)) {
		e.printer.Debug("%s -> %s", id, res.Handles[id])
	}
	return nil
}
