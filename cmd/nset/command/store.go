package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"nestedset/pkg/nset"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage named sets",
}

var storePutCmd = &cobra.Command{
	Use:   "put <name> <set|expression>",
	Short: "Store a set under a name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := current.evaluator().Eval(args[1])
		if err != nil {
			return err
		}
		if res.IsBool {
			return fmt.Errorf("expression %q is not a set", args[1])
		}
		return current.store.Put(args[0], res.Set)
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print a stored set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := current.store.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range current.store.Names() {
			s, err := current.store.Get(name)
			if err != nil {
				continue // deleted meanwhile
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", name, s.Size(), s)
		}
		return nil
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return current.store.Delete(args[0])
	},
}

var storeAddCmd = &cobra.Command{
	Use:   "add <name> <element>...",
	Short: "Add integers or sets to a stored set",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		elements, err := parseElements(args[1:])
		if err != nil {
			return err
		}
		return current.store.Update(args[0], func(s *nset.Set) error {
			for _, e := range elements {
				s.Add(e)
			}
			return nil
		})
	},
}

var storeRemoveCmd = &cobra.Command{
	Use:   "remove <name> <element>...",
	Short: "Remove integers or sets from a stored set",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		elements, err := parseElements(args[1:])
		if err != nil {
			return err
		}
		return current.store.Update(args[0], func(s *nset.Set) error {
			for _, e := range elements {
				if !s.Remove(e) {
					current.logger.Debug("element not present", "set", args[0], "element", e.String())
				}
			}
			return nil
		})
	},
}

func init() {
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeListCmd, storeDeleteCmd, storeAddCmd, storeRemoveCmd)
}

func parseElements(args []string) ([]nset.Element, error) {
	elements := make([]nset.Element, 0, len(args))
	for _, arg := range args {
		e, err := current.parser.ParseElement(arg)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, nil
}
