package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/fanchart/internal/genealogy"
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "List and edit people",
	Long: `Adds people, children, partners and parents, renames people and lists
everyone with their handle. New handles are printed on stdout.`,
}

var personListCmd = &cobra.Command{
	Use:   "list",
	Short: "List everyone with their handle",
	Args:  cobra.NoArgs,
	RunE:  runPersonList,
}

var personAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a person without relatives",
	Args:  cobra.NoArgs,
	RunE:  runPersonAdd,
}

var personAddChildCmd = &cobra.Command{
	Use:   "add-child <family>",
	Short: "Add a child to a family",
	Long: `Adds a child to the family with the given handle. Without --surname the
child takes the father's surname.`,
	Args: cobra.ExactArgs(1),
	RunE: runPersonAddChild,
}

var personAddPartnerCmd = &cobra.Command{
	Use:   "add-partner <person>",
	Short: "Add a partner and a new family",
	Long: `Creates a partner of the given person and a family of the two. The roles
follow the genders: a male partner becomes the father, anyone else the
mother of a male person.`,
	Args: cobra.ExactArgs(1),
	RunE: runPersonAddPartner,
}

var personAddParentsCmd = &cobra.Command{
	Use:   "add-parents <person>",
	Short: "Add a father and a mother",
	Long: `Creates a parent family for the given person. The father takes the
person's surname unless --father-surname is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runPersonAddParents,
}

var personRenameCmd = &cobra.Command{
	Use:   "rename <person>",
	Short: "Change a person's name",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonRename,
}

func init() {
	for _, c := range []*cobra.Command{personAddCmd, personAddChildCmd, personAddPartnerCmd} {
		addPersonFlags(c)
	}
	personRenameCmd.Flags().String("given", "", "given name")
	personRenameCmd.Flags().String("surname", "", "surname")

	personAddParentsCmd.Flags().String("father-given", "", "father's given name")
	personAddParentsCmd.Flags().String("father-surname", "", "father's surname")
	personAddParentsCmd.Flags().String("mother-given", "", "mother's given name")
	personAddParentsCmd.Flags().String("mother-surname", "", "mother's surname")

	personCmd.AddCommand(personListCmd, personAddCmd, personAddChildCmd,
		personAddPartnerCmd, personAddParentsCmd, personRenameCmd)
	rootCmd.AddCommand(personCmd)
}

func addPersonFlags(c *cobra.Command) {
	c.Flags().String("given", "", "given name")
	c.Flags().String("surname", "", "surname")
	c.Flags().String("suffix", "", "name suffix, e.g. Jr.")
	c.Flags().String("gender", "", "male, female or unknown")
	c.Flags().Int("birth", 0, "birth year")
	c.Flags().Int("death", 0, "death year")
}

// personFromFlags builds the person described by the add flags.
func personFromFlags(cmd *cobra.Command) genealogy.Person {
	given, _ := cmd.Flags().GetString("given")
	surname, _ := cmd.Flags().GetString("surname")
	suffix, _ := cmd.Flags().GetString("suffix")
	gender, _ := cmd.Flags().GetString("gender")
	birth, _ := cmd.Flags().GetInt("birth")
	death, _ := cmd.Flags().GetInt("death")
	return genealogy.Person{
		Gender:    genealogy.ParseGender(gender),
		Name:      genealogy.Name{Given: given, Surname: surname, Suffix: suffix},
		BirthYear: birth,
		DeathYear: death,
	}
}

// mustPerson loads the person with handle h, failing when there is none.
func (e *env) mustPerson(cmd *cobra.Command, h string) (*genealogy.Person, error) {
	p, err := e.db.Person(commandContext(cmd), genealogy.Handle(h))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w %q", errNoPerson, h)
	}
	return p, nil
}

func runPersonList(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	people, err := e.db.People(commandContext(cmd))
	if err != nil {
		return err
	}
	e.printer.People(people, e.cfg.Names())
	return nil
}

func runPersonAdd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p := personFromFlags(cmd)
	h, err := e.db.AddPerson(commandContext(cmd), p)
	if err != nil {
		return fmt.Errorf("person add: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
	e.printer.Success("added " + e.cfg.Names().Display(&p))
	return nil
}

func runPersonAddChild(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := commandContext(cmd)
	fam, err := e.db.Family(ctx, genealogy.Handle(args[0]))
	if err != nil {
		return err
	}
	if fam == nil {
		return fmt.Errorf("person add-child: family %q: %w", args[0], genealogy.ErrNotFound)
	}
	var father *genealogy.Person
	if fam.Father != "" {
		if father, err = e.db.Person(ctx, fam.Father); err != nil {
			return err
		}
	}

	child := personFromFlags(cmd)
	if !cmd.Flags().Changed("surname") {
		preset := genealogy.PresetChildName(father, child.Name.Given)
		child.Name.Surname = preset.Surname
	}
	h, err := e.db.AddChild(ctx, fam.Handle, child)
	if err != nil {
		return fmt.Errorf("person add-child: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), h)
	e.printer.Success("added child " + e.cfg.Names().Display(&child))
	return nil
}

func runPersonAddPartner(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.mustPerson(cmd, args[0])
	if err != nil {
		return fmt.Errorf("person add-partner: %w", err)
	}
	partner := personFromFlags(cmd)
	fam, err := e.db.AddPartner(commandContext(cmd), p.Handle, partner)
	if err != nil {
		return fmt.Errorf("person add-partner: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), fam)
	names := e.cfg.Names()
	e.printer.Success(fmt.Sprintf("added %s as partner of %s", names.Display(&partner), names.Display(p)))
	return nil
}

func runPersonAddParents(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.mustPerson(cmd, args[0])
	if err != nil {
		return fmt.Errorf("person add-parents: %w", err)
	}
	flag := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}
	father := &genealogy.Person{
		Gender: genealogy.GenderMale,
		Name:   genealogy.Name{Given: flag("father-given"), Surname: p.Name.Surname},
	}
	if cmd.Flags().Changed("father-surname") {
		father.Name.Surname = flag("father-surname")
	}
	mother := &genealogy.Person{
		Gender: genealogy.GenderFemale,
		Name:   genealogy.Name{Given: flag("mother-given"), Surname: flag("mother-surname")},
	}

	fam, err := e.db.AddParents(commandContext(cmd), p.Handle, father, mother)
	if err != nil {
		return fmt.Errorf("person add-parents: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), fam)
	e.printer.Success("added parents of " + e.cfg.Names().Display(p))
	return nil
}

func runPersonRename(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.mustPerson(cmd, args[0])
	if err != nil {
		return fmt.Errorf("person rename: %w", err)
	}
	if !cmd.Flags().Changed("given") && !cmd.Flags().Changed("surname") {
		return fmt.Errorf("person rename: nothing to change (use --given or --surname)")
	}
	old := e.cfg.Names().Display(p)
	if cmd.Flags().Changed("given") {
		p.Name.Given, _ = cmd.Flags().GetString("given")
	}
	if cmd.Flags().Changed("surname") {
		p.Name.Surname, _ = cmd.Flags().GetString("surname")
	}
	if err := e.db.UpdatePerson(commandContext(cmd), *p); err != nil {
		return fmt.Errorf("person rename: %w", err)
	}
	e.printer.Success(fmt.Sprintf("renamed %s to %s", old, e.cfg.Names().Display(p)))
	return nil
}
