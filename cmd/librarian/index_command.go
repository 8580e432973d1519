package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"librarian/internal/indexing"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "index <folder>",
		Short: "Generate a README.md index for a library folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.openRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			count, err := indexing.Generate(cmd.Context(), rt.store, rt.remote, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if count == 0 {
				fmt.Fprintf(out, "No processed records filed under %s\n", args[0])
				return nil
			}
			fmt.Fprintf(out, "Indexed %d records into %s/README.md\n", count, args[0])
			return nil
		},
	}
}
