// Package repl runs the interactive read-query loop against the disco server.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/emergence/internal/decode"
	"github.com/jonathan/emergence/internal/disco"
	"github.com/jonathan/emergence/internal/rendering"
	"github.com/rs/zerolog"
)

// DefaultPrompt is printed before each line is read.
const DefaultPrompt = "> "

// Mode selects how queries are delivered.
type Mode int

const (
	// ModeSync waits for each response and prints it inline.
	ModeSync Mode = iota
	// ModeAsync submits each query with the embox callback URL and returns
	// immediately; results are printed by the embox listener.
	ModeAsync
)

func (m Mode) String() string {
	if m == ModeAsync {
		return "async"
	}
	return "sync"
}

// ErrNoReadiness is returned when async mode is started without a readiness signal.
var ErrNoReadiness = errors.New("async mode requires an embox readiness signal")

// Querier sends queries to disco. *disco.Client satisfies it.
type Querier interface {
	Query(ctx context.Context, text string) (decode.Result, error)
	Submit(ctx context.Context, text, emboxURL string) error
}

// Options configures a Loop.
type Options struct {
	Mode     Mode
	EmboxURL string
	// Ready is closed by the embox listener once it is bound. Async mode
	// blocks on it before reading the first query.
	Ready  <-chan struct{}
	Prompt string
	Logger zerolog.Logger
}

// Loop reads one query per line and dispatches it.
type Loop struct {
	reader  *bufio.Reader
	querier Querier
	printer *rendering.Printer
	opts    Options
	log     zerolog.Logger
}

// New creates a Loop reading from in.
func New(in io.Reader, querier Querier, printer *rendering.Printer, opts Options) *Loop {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	return &Loop{
		reader:  bufio.NewReader(in),
		querier: querier,
		printer: printer,
		opts:    opts,
		log:     opts.Logger,
	}
}

// Run reads queries until end of input or until ctx ends. Blank lines are
// skipped. A failed query is reported and the loop continues. In async mode
// Run first waits for the listener's readiness, returning ctx.Err() if ctx
// ends first.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Debug().Stringer("mode", l.opts.Mode).Msg("repl.start")

	if l.opts.Mode == ModeAsync {
		if err := l.awaitReady(ctx); err != nil {
			return err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.printer.Prompt(l.opts.Prompt)
		line, err := l.readLine(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if query := strings.TrimSpace(line); query != "" {
			l.dispatch(ctx, query)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				l.log.Debug().Msg("repl.eof")
				return nil
			}
			return fmt.Errorf("read query: %w", err)
		}
	}
}

type readResult struct {
	line string
	err  error
}

// readLine returns the next line, or ctx.Err() if ctx ends while the read is
// blocked. The abandoned read is left to finish on its own; Run never reads again
// after that.
func (l *Loop) readLine(ctx context.Context) (string, error) {
	ch := make(chan readResult, 1)
	go func() {
		line, err := l.reader.ReadString('\n')
		ch <- readResult{line: line, err: err}
	}()
	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (l *Loop) awaitReady(ctx context.Context) error {
	if l.opts.Ready == nil {
		return ErrNoReadiness
	}
	select {
	case <-l.opts.Ready:
		l.log.Debug().Msg("repl.embox_ready")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) dispatch(ctx context.Context, query string) {
	if l.opts.Mode == ModeAsync {
		if err := l.querier.Submit(ctx, query, l.opts.EmboxURL); err != nil {
			l.report(err)
		}
		return
	}

	res, err := l.querier.Query(ctx, query)
	if err != nil {
		l.report(err)
		return
	}
	l.printer.PrintResult(res)
}

func (l *Loop) report(err error) {
	l.printer.Errorf("query failed: %v", err)
}

// QueryOnce runs a single sync query and prints the result. Transport
// failures are returned; a non-2xx status is reported and not returned.
func QueryOnce(ctx context.Context, querier Querier, printer *rendering.Printer, query string) error {
	res, err := querier.Query(ctx, query)
	if err != nil {
		var statusErr *disco.StatusError
		if errors.As(err, &statusErr) {
			printer.Errorf("query failed: %v", err)
			return nil
		}
		return err
	}
	printer.PrintResult(res)
	return nil
}
