// Package observability builds the diagnostic logger shared by the client and the embox listener.
package observability

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Environment variables read by NewLogger.
const (
	EnvLogLevel   = "EM_LOG_LEVEL"
	EnvLogNoColor = "EM_LOG_NOCOLOR"
)

// DefaultLevel keeps interactive sessions quiet unless asked otherwise.
const DefaultLevel = zerolog.WarnLevel

// NewLogger returns a console logger on out, configured from EM_LOG_LEVEL and
// EM_LOG_NOCOLOR, and installs it as the zerolog global logger.
func NewLogger(out io.Writer, app string) zerolog.Logger {
	level, ok := ParseLevel(os.Getenv(EnvLogLevel))
	if !ok {
		level = DefaultLevel
	}
	noColor, _ := parseBool(os.Getenv(EnvLogNoColor))

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", app).Logger()
	log.Logger = logger
	return logger
}

// ParseLevel maps a level name to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return DefaultLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return DefaultLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
