package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"librarian/internal/catalog"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var showErrors bool
	var limit int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show catalog record counts per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			summary, err := store.CountByStatus(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderStatusTable(summary))

			if !showErrors {
				return nil
			}
			failed, err := store.ListByStatus(cmd.Context(), catalog.StatusError, limit)
			if err != nil {
				return err
			}
			if len(failed) == 0 {
				fmt.Fprintln(out, "No error records")
				return nil
			}
			fmt.Fprintln(out, renderErrorTable(failed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showErrors, "errors", false, "List records in error status with their messages")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of error records to list")
	return cmd
}
