package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nestedset/pkg/expr"
	"nestedset/pkg/nset"
)

var showSizeFlag bool

var parseCmd = &cobra.Command{
	Use:   "parse <set>...",
	Short: "Parse sets and print them in normal form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			s, err := current.parser.Parse(arg)
			if err != nil {
				return err
			}
			if showSizeFlag {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", s, s.Size())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
		}
		return nil
	},
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a set expression, e.g. 'A + B', 'A * {1,2}', 'P(A)', '{1} in A'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := current.evaluator().Eval(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}

var powersetCmd = &cobra.Command{
	Use:   "powerset <set|name>",
	Short: "Print the powerset of a set literal or a stored set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolve(args[0])
		if err != nil {
			return err
		}
		if err := expr.CheckPowerset(s, current.cfg.Eval.MaxPowerset); err != nil {
			return err
		}

		p := s.Powerset()
		if showSizeFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", p, p.Size())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVar(&showSizeFlag, "size", false, "print the cardinality after each set")
	powersetCmd.Flags().BoolVar(&showSizeFlag, "size", false, "print the cardinality after the powerset")
}

// resolve reads arg as a set literal when it starts with '{', as a stored
// set name otherwise.
func resolve(arg string) (*nset.Set, error) {
	if strings.HasPrefix(strings.TrimSpace(arg), "{") {
		return current.parser.Parse(arg)
	}
	return current.store.Get(arg)
}
