package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fibjs/fibhost/internal"
	"github.com/fibjs/fibhost/internal/cli"
	"github.com/fibjs/fibhost/internal/logging"
	"github.com/fibjs/fibhost/internal/paths"
	"github.com/fibjs/fibhost/internal/tools"
)

// The entry point for the fibjs host.
//
// Runs the startup sequence and exits with the code it produces.
func main() {
	os.Exit(run(os.Stdout, os.Stderr, os.Args, ""))
}

// Runs the startup sequence over args and returns the process exit code.
//
// Help and version output goes to stdout, diagnostics to stderr. toolsDir
// overrides the user tools directory when non-empty.
func run(stdout, stderr io.Writer, args []string, toolsDir string) int {
	logger := logging.New(stderr, logging.Options{
		Level: logging.Level(internal.IsDebug() || internal.IsVerbose(), internal.IsQuiet()),
	})
	defer logger.Stop()

	slog.SetDefault(logger.Logger)

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("fibjs is starting",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", args,
	)

	if toolsDir == "" {
		toolsDir = paths.ToolsDir()
	}

	registry := tools.Builtin()
	if n, err := registry.Discover(toolsDir); err != nil {
		slog.Warn("user tools unavailable", "dir", toolsDir, "error", err)
	} else if n > 0 {
		slog.Debug("user tools registered", "dir", toolsDir, "count", n, "tools", registry.Names())
	}

	runner := &cli.Runner{
		Stdout: stdout,
		Logger: logger.Logger,
		Tools:  registry,
		Debug:  internal.IsDebug(),
	}

	launch, err := runner.Run(args)
	if err != nil {
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			if exit.Message != "" {
				logger.Sync()
				fmt.Fprintln(stderr, exit.Message)
			}
			return exit.Code
		}
		slog.Error(err.Error())
		return 1
	}
	defer launch.Config.Coverage.Close()

	slog.Info("ready",
		"script", launch.Script,
		"args", launch.ScriptArgs,
	)

	return 0
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
