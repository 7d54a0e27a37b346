package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fibjs/fibhost/internal/engine"
	"github.com/fibjs/fibhost/internal/memtune"
	"github.com/fibjs/fibhost/internal/options"
	"github.com/fibjs/fibhost/internal/tools"
	"github.com/jonboulle/clockwork"
)

// Exit code for a tool invocation the tool's grammar rejects.
const exitUsage = 1

// A request to terminate the process with a specific exit code.
type ExitError struct {
	Code    int    // Process exit code.
	Message string // Diagnostic for standard error. May be empty.
}

// Implements the error interface.
func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// Startup dependencies. Zero fields fall back to the process defaults.
type Runner struct {
	Stdout io.Writer       // Destination for help and version output.
	Logger *slog.Logger    // Diagnostics, including engine check failures in debug builds.
	Engine *engine.Engine  // Engine whose flags are tuned and parsed.
	Tools  *tools.Registry // External tools recognised on the command line.
	Probe  memtune.Probe   // Physical memory reading.
	Clock  clockwork.Clock // Clock for generated coverage file names.
	Dir    string          // Directory relative coverage paths resolve against.
	Debug  bool            // Debug build behaviour.
}

// What the script runtime should start.
type Launch struct {
	Config     options.Config    // Frozen runtime configuration.
	Memory     memtune.Result    // Engine memory limits applied.
	Args       []string          // Arguments left after host and engine flags.
	Script     string            // Script path, or empty when none was given.
	ScriptArgs []string          // Arguments after the script path.
	Tool       *tools.Invocation // Tool call, or nil.
}

// Returns ctx carrying the launch configuration.
func (l *Launch) Context(ctx context.Context) context.Context {
	return options.WithConfig(ctx, l.Config)
}

// Runs the startup sequence over args, where args[0] is the program path.
//
// Memory tuning happens first so that engine flags on the command line can
// override it. Help, version and engine help output is written to Stdout and
// reported as an [*ExitError] with code 0, as is a coverage file that cannot
// be opened (its diagnostic also goes to Stdout). A tool invocation that its
// grammar rejects is an [*ExitError] with code 1.
func (r *Runner) Run(args []string) (*Launch, error) {
	r.defaults()

	cfg := options.Default()
	mem := memtune.Tune(r.Engine.Flags, r.Probe, cfg.StackSize, r.Debug, r.Logger)

	parser := &options.Parser{
		Tools:  r.Tools,
		Engine: r.Engine,
		Clock:  r.Clock,
		Dir:    r.Dir,
		Logger: r.Logger,
	}

	res, err := parser.Parse(cfg, args)
	if err != nil {
		var exit *options.Exit
		if !errors.As(err, &exit) {
			return nil, err
		}
		if exit.Err != nil {
			r.Logger.Debug("terminating", "error", exit.Err)
		}
		fmt.Fprint(r.Stdout, exit.Message)
		return nil, &ExitError{Code: exit.Code}
	}

	forwarded, err := engine.Forward(r.Engine, res.Args, len(res.HostArgs()), r.Debug, r.Logger)
	if err != nil {
		r.Logger.Warn("ignored engine flags", "error", err)
	}

	launch := &Launch{
		Config: res.Config,
		Memory: mem,
		Args:   forwarded,
	}

	tail := res.Tail()
	inv, isTool, err := r.Tools.Find(tail)
	switch {
	case err != nil:
		res.Config.Coverage.Close()
		return nil, &ExitError{Code: exitUsage, Message: err.Error()}
	case isTool:
		launch.Tool = inv
	case len(tail) > 0:
		launch.Script = tail[0]
		launch.ScriptArgs = tail[1:]
	}

	r.Logger.Debug("launch",
		"script", launch.Script,
		"tool", toolName(launch.Tool),
		"use_thread", launch.Config.UseThread,
		"prof", launch.Config.Prof,
		"coverage", coverageName(launch.Config.Coverage),
	)

	return launch, nil
}

func (r *Runner) defaults() {
	if r.Stdout == nil {
		r.Stdout = os.Stdout
	}
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	if r.Engine == nil {
		r.Engine = engine.New()
	}
	if r.Tools == nil {
		r.Tools = tools.Builtin()
	}
	if r.Probe == nil {
		r.Probe = memtune.TotalMemoryMB
	}
	if r.Clock == nil {
		r.Clock = clockwork.NewRealClock()
	}
}

func toolName(inv *tools.Invocation) string {
	if inv == nil {
		return ""
	}
	return inv.Tool
}

func coverageName(s *options.CoverageSink) string {
	if s == nil {
		return ""
	}
	return s.Name
}
