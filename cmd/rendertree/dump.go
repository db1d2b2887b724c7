package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"rendertree/pkg/render"
)

func newDumpCmd(a *app) *cobra.Command {
	var (
		asJSON  bool
		scripts bool
	)
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the box tree of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mem := render.NewMemory()
			p, err := a.loadPage(args[0], mem)
			if err != nil {
				return err
			}
			if scripts {
				if err := a.runScripts(p); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(mem.Current().Outline())
			}
			_, err = fmt.Fprint(out, mem.Current().String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON outline instead of a tree")
	cmd.Flags().BoolVar(&scripts, "scripts", false, "run the document's scripts before dumping")
	return cmd
}
