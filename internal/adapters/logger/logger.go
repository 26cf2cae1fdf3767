package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/researchlog/internal/util"
)

// StderrTarget selects console logging on stderr instead of a log file.
const StderrTarget = "-"

const logFileName = "rlog.log"

// Logger implements domain.Logger on top of zerolog.
type Logger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
}

// Open creates a logger for target. An empty target logs to rlog.log in the
// XDG data directory, StderrTarget logs human-readable lines to stderr and
// anything else is a file path.
func Open(target, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	if target == StderrTarget {
		w := zerolog.ConsoleWriter{Out: os.Stderr}
		return &Logger{zl: zerolog.New(w).Level(lvl).With().Timestamp().Logger()}, nil
	}

	if target == "" {
		dir, err := util.GetXDGDataDir()
		if err != nil {
			return nil, err
		}
		target = filepath.Join(dir, logFileName)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		zl:     zerolog.New(f).Level(lvl).With().Timestamp().Logger(),
		closer: f,
	}, nil
}

// ParseLevel maps a level name to zerolog. Empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

func (l *Logger) Debug(message string) { l.zl.Debug().Msg(message) }

func (l *Logger) Info(message string) { l.zl.Info().Msg(message) }

func (l *Logger) Error(message string) { l.zl.Error().Msg(message) }

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
