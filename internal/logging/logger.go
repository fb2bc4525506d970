package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // Enable pretty console output
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a structured logger writing to stderr, leaving stdout to reports.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a structured logger writing to w.
func NewWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339

	output := w
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(output).
		With().
		Timestamp().
		Logger()
}

// SetGlobalLogger sets the package-level logger
func SetGlobalLogger(l zerolog.Logger) {
	log.Logger = l
}

// EngineLogger adapts a zerolog.Logger to the printf-style logger the
// calculation engine accepts.
type EngineLogger struct {
	zl zerolog.Logger
}

// NewEngineLogger wraps l, tagging every event with the component name.
func NewEngineLogger(l zerolog.Logger, component string) *EngineLogger {
	return &EngineLogger{zl: l.With().Str("component", component).Logger()}
}

func (e *EngineLogger) Debugf(format string, args ...any) { e.zl.Debug().Msgf(format, args...) }
func (e *EngineLogger) Infof(format string, args ...any)  { e.zl.Info().Msgf(format, args...) }
func (e *EngineLogger) Warnf(format string, args ...any)  { e.zl.Warn().Msgf(format, args...) }
func (e *EngineLogger) Errorf(format string, args ...any) { e.zl.Error().Msgf(format, args...) }
