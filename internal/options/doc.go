// Parses the host command line and builds the process runtime configuration.
//
// The fibjs command line mixes three kinds of arguments: host flags that
// this package interprets (help, version, thread mode, packet tracing, the
// socket backend, profiling and coverage), flags that belong to the embedded
// engine, and the script path followed by the script's own arguments.
//
// Parsing runs in two phases. [Scan] finds the boundary between the leading
// dashed region and everything after it. The boundary is the first token at
// or after index 1 that does not start with "-", or the first "--name" token
// that names a registered external tool ("opt_tools/name"). The dispatcher
// then matches every token in [1, boundary) against a fixed table of host
// flags, applying each flag's effect to a [Config] and marking the token as
// consumed. Consumed tokens are filtered out; the remaining host-region
// tokens keep their relative order and are followed by the untouched tail of
// the argument list. Index 0, the program path, is never interpreted.
//
// Requests for help, version or engine flag help, and failures to open the
// coverage file, do not exit the process. They are returned as an [*Exit]
// error carrying the exit code and the text to print, and the entry point
// decides how to terminate.
//
// Example usage:
//
//	p := &options.Parser{Tools: registry, Engine: flags}
//	res, err := p.Parse(options.Default(), os.Args)
//	var exit *options.Exit
//	if errors.As(err, &exit) {
//	    fmt.Print(exit.Message)
//	    os.Exit(exit.Code)
//	}
//	cfg := res.Config // frozen from here on
package options
