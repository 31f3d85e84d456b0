package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/emergence/internal/config"
	"github.com/jonathan/emergence/internal/disco"
	"github.com/jonathan/emergence/internal/observability"
	"github.com/jonathan/emergence/internal/rendering"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// session holds what every command needs once configuration is resolved.
type session struct {
	cfg     config.EffectiveConfig
	log     zerolog.Logger
	printer *rendering.Printer
	client  *disco.Client
}

func newSession(cmd *cobra.Command) (*session, error) {
	logger := observability.NewLogger(cmd.ErrOrStderr(), appName)

	cfg, path, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("config_file", path).
		Str("disco_url", cfg.DiscoURL).
		Str("embox_url", cfg.EmboxURL).
		Int("embox_port", cfg.EmboxPort).
		Msg("config.loaded")

	out := cmd.OutOrStdout()
	formatter := rendering.NewFormatter(outputWidth(out))

	return &session{
		cfg:     cfg,
		log:     logger,
		printer: rendering.NewPrinter(out, cmd.ErrOrStderr(), formatter),
		client:  disco.NewClient(cfg.QueryURL(), &disco.Options{Logger: logger}),
	}, nil
}

func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		return rendering.TerminalWidth(f)
	}
	return rendering.TerminalWidth(nil)
}

// interruptible returns a context cancelled on SIGINT or SIGTERM.
func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// quietOnInterrupt drops the cancellation error caused by an interrupt.
func quietOnInterrupt(ctx context.Context, err error) error {
	if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
