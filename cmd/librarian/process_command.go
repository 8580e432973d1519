package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"librarian/internal/pipeline"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var workers, batchSize int

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run one batch over pending catalog records",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.Close()

			applyBatchOverrides(rt, workers, batchSize)
			return runBatch(cmd, rt)
		},
	}
	addBatchFlags(cmd, &workers, &batchSize)
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var workers, batchSize int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sync the inbox, then process one batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.openRuntime(true)
			if err != nil {
				return err
			}
			defer rt.Close()

			count, err := rt.newPipeline().Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synchronized %d inbox entries\n", count)

			applyBatchOverrides(rt, workers, batchSize)
			return runBatch(cmd, rt)
		},
	}
	addBatchFlags(cmd, &workers, &batchSize)
	return cmd
}

func addBatchFlags(cmd *cobra.Command, workers, batchSize *int) {
	cmd.Flags().IntVar(workers, "workers", 0, "Override the configured worker count")
	cmd.Flags().IntVar(batchSize, "batch-size", 0, "Override the configured batch size")
}

func applyBatchOverrides(rt *runtime, workers, batchSize int) {
	if workers > 0 {
		rt.cfg.Processing.Workers = workers
	}
	if batchSize > 0 {
		rt.cfg.Processing.BatchSize = batchSize
	}
}

func runBatch(cmd *cobra.Command, rt *runtime) error {
	out := cmd.OutOrStdout()
	printer := newEventPrinter(out)

	p := rt.newPipeline(pipeline.WithEventHandler(printer.print))
	summary, err := p.RunBatch(cmd.Context())
	if err != nil {
		return err
	}

	if summary.Dispatched == 0 {
		fmt.Fprintln(out, "Nothing to process")
		return nil
	}
	fmt.Fprintf(out, "Batch %s: %d processed, %d failed of %d dispatched\n",
		summary.BatchID, summary.Processed, summary.Failed, summary.Dispatched)
	return nil
}

type eventPrinter struct {
	out   io.Writer
	color bool
}

func newEventPrinter(out io.Writer) *eventPrinter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &eventPrinter{out: out, color: color}
}

func (p *eventPrinter) print(event pipeline.Event) {
	if event.Success {
		fmt.Fprintf(p.out, "%s %s (%s)\n", p.paint("✔", "32"), event.FileName, event.RemoteID)
		return
	}
	fmt.Fprintf(p.out, "%s %s (%s): %s\n", p.paint("✘", "31"), event.FileName, event.RemoteID, event.Error)
}

func (p *eventPrinter) paint(symbol, code string) string {
	if !p.color {
		return symbol
	}
	return "\x1b[" + code + "m" + symbol + "\x1b[0m"
}
