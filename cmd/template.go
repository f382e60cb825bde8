package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/fanchart/internal/srctemplate"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect and edit source citation templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List template names",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a template's elements and map",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateSetCmd = &cobra.Command{
	Use:   "set <name> <key> [value]",
	Short: "Set or delete a template map entry",
	Long: `Sets key to value in the map of the named template, creating the template
if it does not exist. With --delete the key is removed instead.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runTemplateSet,
}

func init() {
	templateSetCmd.Flags().Bool("delete", false, "remove the key")
	templateSetCmd.Flags().String("descr", "", "template description")
	templateCmd.AddCommand(templateListCmd, templateShowCmd, templateSetCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	names, err := e.db.TemplateNames(commandContext(cmd))
	if err != nil {
		return err
	}
	e.printer.TemplateNames(names)
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	t, err := e.db.Template(commandContext(cmd), args[0])
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("template show: no template %q", args[0])
	}
	e.printer.Template(t)
	return nil
}

func runTemplateSet(cmd *cobra.Command, args []string) error {
	name, key := args[0], args[1]
	del, _ := cmd.Flags().GetBool("delete")
	if del == (len(args) == 3) {
		return fmt.Errorf("template set: give either a value or --delete")
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := commandContext(cmd)
	t, err := e.db.Template(ctx, name)
	if err != nil {
		return err
	}
	if t == nil {
		if del {
			return fmt.Errorf("template set: no template %q", name)
		}
		t = srctemplate.New(name, "")
	}
	if cmd.Flags().Changed("descr") {
		t.Descr, _ = cmd.Flags().GetString("descr")
	}
	if del {
		t.Map.Delete(key)
	} else {
		t.Map.Set(key, args[2])
	}
	if err := e.db.SaveTemplate(ctx, t); err != nil {
		return fmt.Errorf("template set: %w", err)
	}
	e.printer.Success(fmt.Sprintf("template %s: %d entries", t.Name, t.Map.Len()))
	return nil
}
