package options

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(time.Date(2026, time.October, 18, 9, 30, 0, 0, time.Local))
}

func TestCoverageFileName(t *testing.T) {
	got := CoverageFileName(time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC))
	if got != "fibjs-20240305.lcov" {
		t.Fatalf("CoverageFileName = %q, want fibjs-20240305.lcov", got)
	}
}

func TestParseCoverageDefault(t *testing.T) {
	p := newTestParser(t)
	want := filepath.Join(p.Dir, "fibjs-20261018.lcov")

	for i, line := range []string{"first\n", "second\n"} {
		res := mustParse(t, p, "fibjs", "--cov", "main.js")

		sink := res.Config.Coverage
		if sink == nil {
			t.Fatalf("run %d: Coverage = nil", i)
		}
		if sink.Name != want {
			t.Fatalf("run %d: Name = %q, want %q", i, sink.Name, want)
		}
		if _, err := sink.File.WriteString(line); err != nil {
			t.Fatalf("run %d: write: %v", i, err)
		}
		if err := sink.Close(); err != nil {
			t.Fatalf("run %d: close: %v", i, err)
		}
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first\nsecond\n" {
		t.Fatalf("contents = %q, want appended lines", data)
	}
}

func TestParseCoverageFile(t *testing.T) {
	p := newTestParser(t)

	res := mustParse(t, p, "fibjs", "--cov=out/../cov.lcov", "--tcpdump", "main.js")

	sink := res.Config.Coverage
	if sink == nil {
		t.Fatal("Coverage = nil")
	}
	if sink.Name != filepath.Join(p.Dir, "cov.lcov") {
		t.Fatalf("Name = %q", sink.Name)
	}
	if res.Dropped != 2 {
		t.Fatalf("Dropped = %d, want 2", res.Dropped)
	}
	if _, err := os.Stat(sink.Name); err != nil {
		t.Fatalf("coverage file not created: %v", err)
	}
}

func TestParseCoverageAbsolutePath(t *testing.T) {
	name := filepath.Join(t.TempDir(), "abs.lcov")

	res := mustParse(t, newTestParser(t), "fibjs", "--cov="+name)
	if res.Config.Coverage.Name != name {
		t.Fatalf("Name = %q, want %q", res.Config.Coverage.Name, name)
	}
}

func TestParseCoverageReplaced(t *testing.T) {
	p := newTestParser(t)

	res := mustParse(t, p, "fibjs", "--cov=a.lcov", "--cov=b.lcov", "main.js")

	if got := filepath.Base(res.Config.Coverage.Name); got != "b.lcov" {
		t.Fatalf("Coverage = %q, want b.lcov", got)
	}
	if res.Dropped != 2 {
		t.Fatalf("Dropped = %d, want 2", res.Dropped)
	}
}

func TestParseCoverageInvalidFilename(t *testing.T) {
	p := newTestParser(t)
	bad := filepath.Join("missing", "dir", "cov.lcov")

	res, err := p.Parse(Default(), []string{"fibjs", "--cov=" + bad, "main.js"})
	if res != nil {
		t.Fatalf("Result = %+v, want nil", res)
	}

	var exit *Exit
	if !errors.As(err, &exit) {
		t.Fatalf("error = %v, want *Exit", err)
	}
	if exit.Code != 0 {
		t.Fatalf("Code = %d, want 0", exit.Code)
	}
	if exit.Message != "Invalid filename: "+bad+"\n" {
		t.Fatalf("Message = %q", exit.Message)
	}
	if !errors.Is(err, ErrCoverage) {
		t.Fatalf("error = %v, want ErrCoverage", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("error = %v, want os.ErrNotExist", err)
	}
}

func TestParseCoverageEmptyFilename(t *testing.T) {
	_, err := newTestParser(t).Parse(Default(), []string{"fibjs", "--cov="})

	var exit *Exit
	if !errors.As(err, &exit) {
		t.Fatalf("error = %v, want *Exit", err)
	}
	if exit.Message != "Invalid filename: \n" {
		t.Fatalf("Message = %q", exit.Message)
	}
}

func TestParseCoverageDefaultOpenFailure(t *testing.T) {
	p := newTestParser(t)
	p.Dir = filepath.Join(p.Dir, "does-not-exist")

	_, err := p.Parse(Default(), []string{"fibjs", "--cov"})

	var exit *Exit
	if !errors.As(err, &exit) {
		t.Fatalf("error = %v, want *Exit", err)
	}
	if exit.Code != 0 {
		t.Fatalf("Code = %d, want 0", exit.Code)
	}
	if exit.Message != "Can't open file: fibjs-20261018.lcov, please try again" {
		t.Fatalf("Message = %q", exit.Message)
	}
}

func TestParseExitClosesCoverage(t *testing.T) {
	d := &dispatch{parser: newTestParser(t), cfg: Default()}

	var sinks []*CoverageSink
	for _, arg := range []string{"--cov=a.lcov", "--cov=b.lcov"} {
		if _, err := d.apply(arg); err != nil {
			t.Fatalf("apply(%q): %v", arg, err)
		}
		sinks = append(sinks, d.cfg.Coverage)
	}

	if _, err := sinks[0].File.WriteString("x"); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("write to replaced sink: error = %v, want os.ErrClosed", err)
	}
	if _, err := sinks[1].File.WriteString("x"); err != nil {
		t.Fatalf("write to current sink: %v", err)
	}

	_, err := d.apply("--help")
	var exit *Exit
	if !errors.As(err, &exit) {
		t.Fatalf("error = %v, want *Exit", err)
	}
	d.closeOpened()

	for _, s := range sinks {
		if _, err := s.File.WriteString("x"); !errors.Is(err, os.ErrClosed) {
			t.Fatalf("write to %s after exit: error = %v, want os.ErrClosed", s.Name, err)
		}
	}
	if d.cfg.Coverage != nil || len(d.opened) != 0 {
		t.Fatalf("dispatch still holds sinks: %+v, %v", d.cfg.Coverage, d.opened)
	}
}

func TestParseExitAfterCoverage(t *testing.T) {
	p := newTestParser(t)

	_, err := p.Parse(Default(), []string{"fibjs", "--cov=a.lcov", "--cov=b.lcov", "--version"})

	var exit *Exit
	if !errors.As(err, &exit) {
		t.Fatalf("error = %v, want *Exit", err)
	}

	// Both files are created before the exit request is seen.
	for _, name := range []string{"a.lcov", "b.lcov"} {
		if _, err := os.Stat(filepath.Join(p.Dir, name)); err != nil {
			t.Fatalf("coverage file missing: %v", err)
		}
	}
}

func TestParseClosesPresetCoverage(t *testing.T) {
	p := newTestParser(t)

	f, err := os.Create(filepath.Join(p.Dir, "preset.lcov"))
	if err != nil {
		t.Fatal(err)
	}
	preset := &CoverageSink{Name: f.Name(), File: f}

	cfg := Default()
	cfg.Coverage = preset

	res, err := p.Parse(cfg, []string{"fibjs", "--cov=a.lcov", "main.js"})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { res.Config.Coverage.Close() })

	if _, err := preset.File.WriteString("x"); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("write to replaced sink: error = %v, want os.ErrClosed", err)
	}
	if want := filepath.Join(p.Dir, "a.lcov"); res.Config.Coverage.Name != want {
		t.Fatalf("Coverage = %q, want %q", res.Config.Coverage.Name, want)
	}
}

func TestAtoi(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"0", 0},
		{"42", 42},
		{"+42", 42},
		{"-42", -42},
		{"  7", 7},
		{"12abc", 12},
		{"abc", 0},
		{"-", 0},
		{"99999999999", 2147483647},
		{"-99999999999", -2147483648},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := atoi(tt.in); got != tt.want {
				t.Fatalf("atoi(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfigContext(t *testing.T) {
	cfg := Default()
	cfg.TCPDump = true

	ctx := WithConfig(context.Background(), cfg)
	cfg.TCPDump = false

	got, ok := FromContext(ctx)
	if !ok {
		t.Fatal("FromContext reported no config")
	}
	if !got.TCPDump {
		t.Fatal("context observed a later change to the caller's copy")
	}

	got, ok = FromContext(context.Background())
	if ok {
		t.Fatal("FromContext reported a config on an empty context")
	}
	if got.ProfInterval != DefaultProfInterval {
		t.Fatalf("ProfInterval = %d, want default", got.ProfInterval)
	}
}

func TestDefaultStackSize(t *testing.T) {
	got := Default().StackSize
	if got != 512 && got != 256 {
		t.Fatalf("StackSize = %d, want 512 or 256", got)
	}
	if !strings.Contains(Usage(), "default: 1000") {
		t.Fatal("usage does not state the default interval")
	}
}
