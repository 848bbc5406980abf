// Package logging configures the zerolog logger shared by the CLI and the
// pagination stage.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel is a level name as accepted by --log-level.
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Component names attached to log entries.
const (
	ComponentCLI       = "cli"
	ComponentGenerator = "paginate"
)

var levels = map[LogLevel]zerolog.Level{
	LevelDebug: zerolog.DebugLevel,
	LevelInfo:  zerolog.InfoLevel,
	LevelWarn:  zerolog.WarnLevel,
	LevelError: zerolog.ErrorLevel,
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level written.
	Level LogLevel

	// Pretty switches from JSON lines to zerolog's console writer.
	Pretty bool

	// Output defaults to os.Stderr when nil.
	Output io.Writer
}

// DefaultConfig returns JSON logging at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Setup installs a logger built from cfg as the global zerolog logger and
// returns it. Unknown levels fall back to info.
func Setup(cfg Config) zerolog.Logger {
	level := zerologLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out}
	}

	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return log.Logger
}

// ParseLevel validates a level name given by the user. "warning" is
// accepted for warn and an empty name means info.
func ParseLevel(s string) (LogLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "":
		return LevelInfo, nil
	case "warning":
		return LevelWarn, nil
	}
	if _, ok := levels[LogLevel(name)]; !ok {
		return "", fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
	return LogLevel(name), nil
}

func zerologLevel(level LogLevel) zerolog.Level {
	l, err := ParseLevel(string(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return levels[l]
}

// NewLogger derives a logger tagged with the given component from the
// global logger.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Warnings logs one warning per entry, e.g. deprecated configuration keys.
func Warnings[W fmt.Stringer](logger zerolog.Logger, msg string, warnings []W) {
	for _, w := range warnings {
		logger.Warn().Str("detail", w.String()).Msg(msg)
	}
}

// Levels in use:
//
// Debug: disabled pagination, empty sites, per-worker batch statistics.
// Info: completed runs with template, items and pages; CLI summary.
// Warn: skipped runs, deprecated or malformed configuration keys, plan
// cache unavailable, template pages shared by several runs.
// Error: aborted builds.
//
// Fields: component, run ("default" or "category <name>"), template, path,
// pages, items.
