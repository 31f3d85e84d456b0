// Package embox is the local callback listener that receives query results
// pushed by the disco server in async mode.
package embox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/jonathan/emergence/internal/decode"
	"github.com/jonathan/emergence/internal/rendering"
	"github.com/rs/zerolog"
)

const (
	// Route is the only path the listener serves.
	Route = "/embox"
	// AckBody is the fixed acknowledgement returned for every push.
	AckBody = "ok"

	maxPushBodyBytes = 10 << 20 // 10 MiB
	shutdownTimeout  = 5 * time.Second
)

// Server accepts pushed results on POST /embox and prints them.
type Server struct {
	addr       string
	printer    *rendering.Printer
	log        zerolog.Logger
	ready      *Readiness
	httpServer *http.Server
	bound      net.Addr
}

// New creates a server that will bind addr when Run is called.
func New(addr string, printer *rendering.Printer, logger zerolog.Logger) *Server {
	s := &Server{
		addr:    addr,
		printer: printer,
		log:     logger,
		ready:   NewReadiness(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+Route, s.handlePush)

	s.httpServer = &http.Server{
		Handler:           s.withLogging(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Ready is closed once the listener is bound and about to serve.
func (s *Server) Ready() <-chan struct{} {
	return s.ready.Done()
}

// Addr returns the bound address. Only valid after Ready is closed.
func (s *Server) Addr() string {
	if s.bound == nil {
		return ""
	}
	return s.bound.String()
}

// Handler exposes the routes for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run binds the address, signals readiness, and serves until ctx is done.
// A bind failure returns a *BindError without signalling readiness.
// Run must be called at most once.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return &BindError{Addr: s.addr, Cause: err}
	}
	s.bound = ln.Addr()
	s.ready.Signal()
	s.log.Info().Str("addr", s.Addr()).Msg("embox.listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("embox serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("embox shutdown: %w", err)
	}
	s.log.Info().Msg("embox.stopped")
	return nil
}

// handlePush decodes a pushed result and prints it. It always acknowledges
// with 200 so disco never retries a delivery.
func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPushBodyBytes)
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.log.Warn().Err(err).Int("bytes", len(body)).Msg("embox.read_failed")
	}

	res := decode.Decode(body)
	s.log.Debug().Stringer("kind", res.Kind).Int("records", len(res.Records)).Msg("embox.received")
	s.printer.PrintResult(res)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, AckBody)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("embox.request")
	})
}
