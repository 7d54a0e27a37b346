package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fibjs/fibhost/internal/options"
	"github.com/fibjs/fibhost/internal/tools"
	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
)

func newTestRunner(t *testing.T, out io.Writer) *Runner {
	t.Helper()
	return &Runner{
		Stdout: out,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Probe:  func() (int64, error) { return 4096, nil },
		Clock:  clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 12, 0, 0, 0, time.Local)),
		Dir:    t.TempDir(),
	}
}

func TestRunScript(t *testing.T) {
	r := newTestRunner(t, io.Discard)

	launch, err := r.Run([]string{"fibjs", "--use-thread", "--expose-gc", "--keep", "main.js", "--tcpdump", "x"})
	if err != nil {
		t.Fatal(err)
	}

	if !launch.Config.UseThread {
		t.Fatal("UseThread = false, want true")
	}
	if launch.Config.TCPDump {
		t.Fatal("script argument applied as a host flag")
	}
	if launch.Script != "main.js" {
		t.Fatalf("Script = %q, want main.js", launch.Script)
	}
	if diff := cmp.Diff([]string{"--tcpdump", "x"}, launch.ScriptArgs); diff != "" {
		t.Fatalf("ScriptArgs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"fibjs", "--keep", "main.js", "--tcpdump", "x"}, launch.Args); diff != "" {
		t.Fatalf("Args mismatch (-want +got):\n%s", diff)
	}
	if !r.Engine.Flags.ExposeGC {
		t.Fatal("engine flag not forwarded")
	}
	if launch.Tool != nil {
		t.Fatalf("Tool = %+v, want nil", launch.Tool)
	}
}

func TestRunTunesBeforeEngineFlags(t *testing.T) {
	r := newTestRunner(t, io.Discard)

	launch, err := r.Run([]string{"fibjs", "main.js"})
	if err != nil {
		t.Fatal(err)
	}
	if launch.Memory.HeapLimitMB != 2048 || r.Engine.Flags.MaxOldSpaceSize != 2048 {
		t.Fatalf("heap limit = %d / %d, want 2048", launch.Memory.HeapLimitMB, r.Engine.Flags.MaxOldSpaceSize)
	}
	if r.Engine.Flags.WasmAsyncCompilation {
		t.Fatal("WasmAsyncCompilation = true, want false")
	}

	r = newTestRunner(t, io.Discard)
	if _, err := r.Run([]string{"fibjs", "--max-old-space-size=128", "main.js"}); err != nil {
		t.Fatal(err)
	}
	if r.Engine.Flags.MaxOldSpaceSize != 128 {
		t.Fatalf("MaxOldSpaceSize = %d, want command-line value 128", r.Engine.Flags.MaxOldSpaceSize)
	}
}

func TestRunDebugGuard(t *testing.T) {
	r := newTestRunner(t, io.Discard)
	r.Debug = true

	launch, err := r.Run([]string{"fibjs"})
	if err != nil {
		t.Fatal(err)
	}
	if want := options.Default().StackSize - 32; launch.Memory.StackSize != want {
		t.Fatalf("StackSize = %d, want %d", launch.Memory.StackSize, want)
	}
}

func TestRunExitRequests(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want string
	}{
		{"help", "--help", "Usage: fibjs"},
		{"version", "-v", "fibjs (development build)"},
		{"engine options", "--v8-options", "--max-old-space-size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := newTestRunner(t, &out).Run([]string{"fibjs", tt.arg, "main.js"})

			var exit *ExitError
			if !errors.As(err, &exit) {
				t.Fatalf("error = %v, want *ExitError", err)
			}
			if exit.Code != 0 {
				t.Fatalf("Code = %d, want 0", exit.Code)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRunCoverage(t *testing.T) {
	r := newTestRunner(t, io.Discard)

	launch, err := r.Run([]string{"fibjs", "--cov", "main.js"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { launch.Config.Coverage.Close() })

	want := filepath.Join(r.Dir, "fibjs-20261018.lcov")
	if launch.Config.Coverage.Name != want {
		t.Fatalf("Coverage = %q, want %q", launch.Config.Coverage.Name, want)
	}
}

func TestRunCoverageFailureExitsZero(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, &out)

	_, err := r.Run([]string{"fibjs", "--cov=no/such/dir/x.lcov", "main.js"})

	var exit *ExitError
	if !errors.As(err, &exit) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exit.Code != 0 {
		t.Fatalf("Code = %d, want 0", exit.Code)
	}
	if out.String() != "Invalid filename: no/such/dir/x.lcov\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunTool(t *testing.T) {
	r := newTestRunner(t, io.Discard)

	launch, err := r.Run([]string{"fibjs", "--prof", "--install", "-S", "left-pad"})
	if err != nil {
		t.Fatal(err)
	}

	if !launch.Config.Prof {
		t.Fatal("Prof = false, want true")
	}
	if launch.Tool == nil || launch.Tool.Tool != "install" {
		t.Fatalf("Tool = %+v, want install", launch.Tool)
	}
	if launch.Script != "" {
		t.Fatalf("Script = %q, want empty", launch.Script)
	}

	args, ok := launch.Tool.Options.(*tools.InstallArgs)
	if !ok || !args.Save {
		t.Fatalf("Options = %+v, want Save", launch.Tool.Options)
	}
}

func TestRunToolUsageError(t *testing.T) {
	_, err := newTestRunner(t, io.Discard).Run([]string{"fibjs", "--prof-process"})

	var exit *ExitError
	if !errors.As(err, &exit) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exit.Code != 1 {
		t.Fatalf("Code = %d, want 1", exit.Code)
	}
	if !strings.Contains(exit.Message, "prof-process") {
		t.Fatalf("Message = %q", exit.Message)
	}
}

func TestLaunchContext(t *testing.T) {
	launch, err := newTestRunner(t, io.Discard).Run([]string{"fibjs", "--ssldump"})
	if err != nil {
		t.Fatal(err)
	}

	cfg, ok := options.FromContext(launch.Context(context.Background()))
	if !ok || !cfg.SSLDump {
		t.Fatalf("config from context = %+v, %v", cfg, ok)
	}
}

func TestExitErrorMessage(t *testing.T) {
	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Fatalf("Error() = %q", got)
	}
	if got := (&ExitError{Code: 1, Message: "bad"}).Error(); got != "bad" {
		t.Fatalf("Error() = %q", got)
	}
}
