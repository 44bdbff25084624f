package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerConfig selects level, format and an optional rotated file sink.
type LoggerConfig struct {
	Level  string
	Format string
	File   string
}

// NewLogger builds the process logger. The returned close func flushes and
// closes the file sink when one is configured.
func NewLogger(cfg LoggerConfig) (*slog.Logger, func() error) {
	var (
		out     io.Writer = os.Stdout
		closeFn           = func() error { return nil }
	)
	if path := strings.TrimSpace(cfg.File); path != "" {
		sink := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     14,
		}
		out = io.MultiWriter(os.Stdout, sink)
		closeFn = sink.Close
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var base slog.Handler
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		base = slog.NewJSONHandler(out, opts)
	} else {
		base = slog.NewTextHandler(out, opts)
	}
	return slog.New(WrapSlogHandler(base)), closeFn
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
