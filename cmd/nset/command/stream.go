package command

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"nestedset/pkg/nset"
)

var readCmd = &cobra.Command{
	Use:   "read [file]",
	Short: "Read one set per line from a file or stdin, skipping malformed lines",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open input")
			}
			defer f.Close()
			in = f
		}

		sc := nset.NewScanner(in, current.parser, current.logger)
		out := cmd.OutOrStdout()
		count := 0
		for sc.Scan() {
			count++
			fmt.Fprintln(out, sc.Set())
		}
		if err := sc.Err(); err != nil {
			return errors.Wrap(err, "read input")
		}
		current.logger.Info("read finished", "sets", count, "skipped", sc.Failures())
		return nil
	},
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate expressions line by line; 'name = expr' stores a set",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func repl(in io.Reader, out io.Writer) error {
	ev := current.evaluator()
	lines := bufio.NewScanner(in)
	for lines.Scan() {
		line := strings.TrimSpace(lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res, err := ev.Eval(line)
		if err != nil {
			current.logger.Warn("evaluation failed", "input", line, "error", err)
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, res)
	}
	return lines.Err()
}
