package main

import (
	"context"

	"github.com/jonathan/emergence/internal/embox"
	"github.com/jonathan/emergence/internal/repl"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var emboxCmd = &cobra.Command{
	Use:   "embox",
	Short: "Query interactively with results delivered to a local embox listener",
	Long: `Start the embox listener on the configured port, then read queries one per
line from standard input. Each query is submitted with the embox callback URL
and disco pushes the result to the listener, which prints it. The listener
stops when input ends.`,
	Args: cobra.NoArgs,
	RunE: runEmbox,
}

func init() {
	rootCmd.AddCommand(emboxCmd)
}

func runEmbox(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	ctx, stop := interruptible(cmd)
	defer stop()

	// Ending the loop cancels runCtx, which stops the listener.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	srv := embox.New(s.cfg.EmboxListenAddr(), s.printer, s.log)
	loop := repl.New(cmd.InOrStdin(), s.client, s.printer, repl.Options{
		Mode:     repl.ModeAsync,
		EmboxURL: s.cfg.EmboxURL,
		Ready:    srv.Ready(),
		Logger:   s.log,
	})

	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return loop.Run(gctx)
	})

	return quietOnInterrupt(ctx, g.Wait())
}
