package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (

	// Engine default for the usable native stack, in KB.
	DefaultStackSize = 984
)

// Native engine flags.
//
// Fields are bound to the underlying flag set, so assigning a field directly
// and setting the flag by name are equivalent. Command-line values applied by
// [Flags.SetFromCommandLine] override earlier assignments.
type Flags struct {
	MaxOldSpaceSize      int  // Old generation heap limit in MB. Zero leaves the engine heuristic.
	MaxSemiSpaceSize     int  // Young generation semi-space limit in MB. Zero leaves the engine heuristic.
	StackSize            int  // Usable native stack in KB.
	WasmAsyncCompilation bool // Compile WebAssembly modules off the main thread.
	ExposeGC             bool // Expose gc() to scripts.
	Jitless              bool // Interpret only; never allocate executable memory.
	Harmony              bool // Enable staged language features.
	UseStrict            bool // Force strict mode.
	TraceGC              bool // Print a line after each garbage collection.
	AllowNativesSyntax   bool // Allow %Name() natives syntax in scripts.

	fs *pflag.FlagSet
}

// Creates the engine flag set with engine defaults.
func NewFlags() *Flags {
	f := &Flags{}

	fs := pflag.NewFlagSet("v8", pflag.ContinueOnError)
	fs.SortFlags = true
	fs.SetNormalizeFunc(normalizeName)

	fs.IntVar(&f.MaxOldSpaceSize, "max-old-space-size", 0, "max size of the old space (in Mbytes)")
	fs.IntVar(&f.MaxSemiSpaceSize, "max-semi-space-size", 0, "max size of a semi-space (in MBytes), the new space consists of two semi-spaces")
	fs.IntVar(&f.StackSize, "stack-size", DefaultStackSize, "default size of stack region v8 is allowed to use (in kBytes)")
	fs.BoolVar(&f.WasmAsyncCompilation, "wasm-async-compilation", true, "enable actual asynchronous compilation for WebAssembly.compile")
	fs.BoolVar(&f.ExposeGC, "expose-gc", false, "expose gc extension")
	fs.BoolVar(&f.Jitless, "jitless", false, "disable runtime allocation of executable memory")
	fs.BoolVar(&f.Harmony, "harmony", false, "enable all completed harmony features")
	fs.BoolVar(&f.UseStrict, "use-strict", false, "enforce strict mode")
	fs.BoolVar(&f.TraceGC, "trace-gc", false, "print one trace line following each garbage collection")
	fs.BoolVar(&f.AllowNativesSyntax, "allow-natives-syntax", false, "allow natives syntax")

	f.fs = fs
	return f
}

// Treats "_" and "-" in flag names as the same character.
func normalizeName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// Sets a flag by name. Underscores and dashes in name are interchangeable.
func (f *Flags) Set(name, value string) error {
	if err := f.fs.Set(name, value); err != nil {
		return fmt.Errorf("%w: %w", ErrEngine, err)
	}
	return nil
}

// Returns the engine's flag help, printed by --v8-options.
func (f *Flags) Usage() string {
	return "Options:\n" + f.fs.FlagUsages()
}

// Applies engine flags from the leading dashed region of args.
//
// args[0] is the program path and is kept. Scanning stops at the first token
// that does not start with "-", at a lone "-", or at "--"; that token and the
// rest are returned untouched. Within the region, recognised flags are
// applied and removed. Unknown flags, flags missing a value, and flags whose
// value is rejected stay in place. Rejected values are reported in the
// returned error; every other flag is still applied.
func (f *Flags) SetFromCommandLine(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, nil
	}

	out := []string{args[0]}
	var errs []error

	i := 1
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" || arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		name, value, hasValue := splitFlag(arg)
		fl, negated := f.lookup(name)
		if fl == nil || (negated && hasValue) {
			out = append(out, arg)
			continue
		}

		kept := []string{arg}
		switch {
		case negated:
			value = "false"
		case hasValue:
		case isBool(fl):
			value = "true"
		case i+1 < len(args):
			i++
			value = args[i]
			kept = append(kept, value)
		default:
			out = append(out, arg)
			continue
		}

		if err := f.fs.Set(fl.Name, value); err != nil {
			errs = append(errs, err)
			out = append(out, kept...)
		}
	}

	out = append(out, args[i:]...)

	if err := errors.Join(errs...); err != nil {
		return out, fmt.Errorf("%w: %w", ErrEngine, err)
	}
	return out, nil
}

// Resolves a flag name, falling back to "no-" negation of a boolean flag.
func (f *Flags) lookup(name string) (*pflag.Flag, bool) {
	if fl := f.fs.Lookup(name); fl != nil {
		return fl, false
	}
	if base, ok := strings.CutPrefix(name, "no-"); ok {
		if fl := f.fs.Lookup(base); fl != nil && isBool(fl) {
			return fl, true
		}
	}
	if base, ok := strings.CutPrefix(name, "no_"); ok {
		if fl := f.fs.Lookup(base); fl != nil && isBool(fl) {
			return fl, true
		}
	}
	return nil, false
}

// Splits "--name=value" or "-name" into its parts.
func splitFlag(arg string) (name, value string, hasValue bool) {
	name = strings.TrimPrefix(arg, "-")
	name = strings.TrimPrefix(name, "-")
	name, value, hasValue = strings.Cut(name, "=")
	return name, value, hasValue
}

func isBool(fl *pflag.Flag) bool {
	return fl.Value.Type() == "bool"
}
