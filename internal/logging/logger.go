package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Output formats accepted by New.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Options configures New.
type Options struct {
	Level  slog.Level
	Format string
	// Output defaults to os.Stderr so plans printed on stdout stay clean.
	Output io.Writer
}

// New creates a configured application logger.
// It standardizes common keys (e.g., "error" -> "err").
func New(options Options) *slog.Logger {
	output := options.Output
	if output == nil {
		output = os.Stderr
	}

	switch options.Format {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level:       options.Level,
			ReplaceAttr: standardizeKeys,
		}))
	case FormatPretty:
		return slog.New(tint.NewHandler(output, &tint.Options{
			Level:      options.Level,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(output),
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a = standardizeKeys(groups, a)
				if a.Value.Kind() == slog.KindAny {
					if _, ok := a.Value.Any().(error); ok {
						return tint.Attr(9, a)
					}
				}
				return a
			},
		}))
	default:
		return slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
			Level:       options.Level,
			ReplaceAttr: standardizeKeys,
		}))
	}
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// ValidFormat reports whether format is accepted by New.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatPretty:
		return true
	}
	return false
}

// isTerminal reports whether output is an interactive terminal. Colour codes
// are only written to terminals.
func isTerminal(output io.Writer) bool {
	file, ok := output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func standardizeKeys(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
