package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fibjs/fibhost/internal"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap/zapcore"
)

const (

	// Default time between background flushes of the sink.
	DefaultFlushInterval = time.Second

	// Output formats.
	FormatText = "text"
	FormatJSON = "json"
)

// Logger settings.
type Options struct {
	Level         slog.Level    // Minimum level emitted.
	Format        string        // FormatText, FormatJSON, or empty to pick by terminal.
	FlushInterval time.Duration // Background flush period. Zero uses DefaultFlushInterval.
}

// A slog.Logger writing through an asynchronous buffered sink.
//
// Records are encoded synchronously and appended to an in-memory buffer that
// a background goroutine flushes periodically or when it fills. [Logger.Stop]
// must be called before the process exits or buffered records are lost.
type Logger struct {
	*slog.Logger

	sink *zapcore.BufferedWriteSyncer // Buffered destination.
}

// Creates a logger writing to out.
//
// With an empty format, text is used when out is a terminal and JSON
// otherwise.
func New(out io.Writer, opts Options) *Logger {
	interval := opts.FlushInterval
	if interval <= 0 {
		interval = DefaultFlushInterval
	}

	sink := &zapcore.BufferedWriteSyncer{
		WS:            zapcore.AddSync(out),
		FlushInterval: interval,
	}

	handlerOpts := &slog.HandlerOptions{Level: opts.Level}

	var handler slog.Handler
	if resolveFormat(out, opts.Format) == FormatJSON {
		handler = slog.NewJSONHandler(sink, handlerOpts)
	} else {
		handler = slog.NewTextHandler(sink, handlerOpts)
	}

	return &Logger{
		Logger: slog.New(handler.WithGroup(internal.Name)),
		sink:   sink,
	}
}

// Writes buffered records to the destination.
//
// Call before writing to the same destination directly so that earlier
// records appear first.
func (l *Logger) Sync() error {
	return l.sink.Sync()
}

// Flushes buffered records and stops the background flusher.
func (l *Logger) Stop() error {
	return l.sink.Stop()
}

// Returns the level derived from build-time modes.
//
// Debug builds log at debug level, quiet builds at warn, others at info.
func Level(debug, quiet bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	if quiet {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

func resolveFormat(out io.Writer, format string) string {
	if format != "" {
		return format
	}
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		return FormatText
	}
	return FormatJSON
}

// Whether the given file is an interactive terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
