// Runs the host startup sequence for the fibjs command.
//
// A [Runner] performs the whole bootstrap in order: it tunes engine memory
// limits from physical memory, applies host flags to a fresh runtime
// configuration, forwards the remaining arguments to the engine's flag
// parser, and resolves a tool call when the command line names one. The
// result is a [Launch] describing what the script runtime should start.
//
// Host flags:
//
//	-h, --help                 Print usage and exit.
//	-v, --version              Print the version and exit.
//	--use-thread               Run fibers on native threads.
//	--tcpdump, --ssldump       Print TCP or SSL packet contents.
//	--use-uv-socket[=on|off]   Select the libuv socket backend.
//	--prof, --prof-interval=n  Statistical profiling.
//	--cov[=filename]           Collect code coverage.
//	--v8-options               Print engine flags and exit.
//
// The runner never exits the process. Requests to terminate come back as an
// [*ExitError] and the command's main function performs the exit.
package cli
