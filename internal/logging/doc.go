// Builds the process logger.
//
// The logger is a log/slog logger whose handler writes into a buffered sink
// flushed in the background, so logging from hot paths (such as engine
// consistency-check failures) does not block on the terminal. Text output is
// chosen for terminals and JSON otherwise.
//
// Example usage:
//
//	logger := logging.New(os.Stderr, logging.Options{
//	    Level: logging.Level(internal.IsDebug(), internal.IsQuiet()),
//	})
//	defer logger.Stop()
//	slog.SetDefault(logger.Logger)
package logging
