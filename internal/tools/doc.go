// Registers the external tools reachable through "--name" on the command
// line.
//
// A tool is a script shipped with the host (init, install, prof-process,
// cov-process) or dropped by the user into the tools directory. When the
// host flag scanner meets "--name" and the registry knows "opt_tools/name",
// scanning stops: that token and everything after it belong to the tool.
//
// Built-in tools declare their arguments as kong grammars so that a bad
// invocation is reported before the engine starts. User tools take their
// arguments as-is.
//
// Example usage:
//
//	reg := tools.Builtin()
//	if _, err := reg.Discover(paths.ToolsDir()); err != nil {
//	    return err
//	}
//	inv, err := reg.Parse("install", []string{"-S", "left-pad"})
//	if err != nil {
//	    return err
//	}
package tools
