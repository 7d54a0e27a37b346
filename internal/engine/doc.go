// Models the embedded engine's native flags and forwards arguments to them.
//
// The engine accepts its own dashed flags on the command line, spelled the
// way V8 spells them: "--name=value" or "--name value", a single leading dash
// is accepted, "_" and "-" are interchangeable, and "--no-name" turns a
// boolean flag off. [Flags] holds those values behind a pflag.FlagSet and
// renders the --v8-options help text.
//
// [Forward] hands the argument list produced by host flag parsing to the
// engine. Recognised engine flags in the host region are applied and
// removed; everything else, including unknown dashed tokens, reaches the
// script unchanged. In debug builds it also installs a handler for the
// engine's internal consistency checks that logs the failure instead of
// aborting.
//
// Example usage:
//
//	eng := engine.New()
//	args, err := engine.Forward(eng, res.Args, len(res.HostArgs()), internal.IsDebug(), logger)
//	if err != nil {
//	    logger.Warn("engine flags", "error", err)
//	}
package engine
