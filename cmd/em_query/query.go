package main

import (
	"strings"

	"github.com/jonathan/emergence/internal/observability"
	"github.com/jonathan/emergence/internal/repl"
	"github.com/spf13/cobra"
)

const (
	// showConfigArg, as the only argument, prints the effective configuration.
	showConfigArg = "--show-config"
	// endOfOptions before the query keeps its first word from naming a subcommand.
	endOfOptions = "--"
)

func runQuery(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	if len(args) == 1 && args[0] == showConfigArg {
		observability.NewPrinter(cmd.OutOrStdout()).PrintConfig(s.cfg)
		return nil
	}
	if len(args) > 0 && args[0] == endOfOptions {
		args = args[1:]
	}

	ctx, stop := interruptible(cmd)
	defer stop()

	if len(args) > 0 {
		query := strings.Join(args, " ")
		s.log.Debug().Str("query", query).Msg("query.once")
		return quietOnInterrupt(ctx, repl.QueryOnce(ctx, s.client, s.printer, query))
	}

	loop := repl.New(cmd.InOrStdin(), s.client, s.printer, repl.Options{
		Mode:   repl.ModeSync,
		Logger: s.log,
	})
	return quietOnInterrupt(ctx, loop.Run(ctx))
}
