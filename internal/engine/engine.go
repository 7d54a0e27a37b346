package engine

import (
	"fmt"
	"log/slog"
	"sync"
)

// Receives failures of the engine's internal consistency checks.
type DcheckHandler func(file string, line int, message string)

// Host-side view of the embedded engine's startup surface.
//
// It owns the engine flags and the consistency-check failure handler. The
// engine itself (isolates, compilation, execution) lives outside this
// package.
type Engine struct {
	Flags *Flags // Native engine flags.

	mu     sync.RWMutex  // Guards dcheck.
	dcheck DcheckHandler // Installed failure handler, or nil.
}

// Creates an engine with default flags and no failure handler.
func New() *Engine {
	return &Engine{Flags: NewFlags()}
}

// Returns the engine's flag help, printed by --v8-options.
func (e *Engine) Usage() string {
	return e.Flags.Usage()
}

// Installs the handler called on consistency-check failures.
func (e *Engine) SetDcheckHandler(h DcheckHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dcheck = h
}

// Reports a consistency-check failure.
//
// With a handler installed the failure is passed to it and execution
// continues. Without one the failure is fatal and Dcheck panics.
func (e *Engine) Dcheck(file string, line int, message string) {
	e.mu.RLock()
	h := e.dcheck
	e.mu.RUnlock()

	if h == nil {
		panic(FormatDcheck(file, line, message))
	}
	h(file, line, message)
}

// Formats a consistency-check failure for logging.
func FormatDcheck(file string, line int, message string) string {
	return fmt.Sprintf("Assert(DCheck) in %s, line %d: %s", file, line, message)
}

// Returns a handler that logs failures at debug level.
//
// The logger is expected to write through an asynchronous sink so that a
// failing check on a hot path does not block on output.
func LogDcheck(logger *slog.Logger) DcheckHandler {
	return func(file string, line int, message string) {
		logger.Debug(FormatDcheck(file, line, message))
	}
}

// Passes the parsed argument list to the engine.
//
// Only args[:hostLen], the program path and the unconsumed host-region
// tokens, are offered to the engine's flag parser; args[hostLen:] is appended
// unchanged. The engine does its own validation: flags it does not know are
// left for the script. In debug builds the consistency-check handler is
// installed, logging through logger.
//
// The returned list is always usable. A non-nil error reports engine flags
// whose values were rejected.
func Forward(e *Engine, args []string, hostLen int, debug bool, logger *slog.Logger) ([]string, error) {
	hostLen = min(max(hostLen, 0), len(args))

	out, err := e.Flags.SetFromCommandLine(args[:hostLen])
	out = append(out, args[hostLen:]...)

	if debug {
		e.SetDcheckHandler(LogDcheck(logger))
	}

	logger.Debug("forwarded to engine",
		"args", out,
		"max_old_space_size", e.Flags.MaxOldSpaceSize,
		"stack_size", e.Flags.StackSize,
	)

	return out, err
}
