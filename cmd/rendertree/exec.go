package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rendertree/pkg/render"
)

func newExecCmd(a *app) *cobra.Command {
	var skipScripts bool
	cmd := &cobra.Command{
		Use:   "exec <file> <source>",
		Short: "Evaluate a script against a loaded document",
		Long: "exec loads the document, runs its own scripts unless --no-scripts is given, " +
			"then evaluates source and prints its completion value followed by the box tree.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem := render.NewMemory()
			p, err := a.loadPage(args[0], mem)
			if err != nil {
				return err
			}
			if !skipScripts {
				if err := a.runScripts(p); err != nil {
					return err
				}
			}
			result, err := p.Eval("(exec)", args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result)
			_, err = fmt.Fprint(out, mem.Current().String())
			return err
		},
	}
	cmd.Flags().BoolVar(&skipScripts, "no-scripts", false, "do not run the document's scripts first")
	return cmd
}
