package internal

import "strconv"

var (
	quietMode   bool // Warn-level logging.
	debugBuild  bool // Debug build: larger stack guard, engine check handler, debug logging.
	verboseMode bool // Debug-level logging without debug build behaviour.
)

// Parses the linker flags into build-time modes.
//
// The rawQuiet, rawDebug, and rawVerbose variables should be set via ldflags
// during the build process. Unset or malformed values leave the mode off.
func init() {
	quietMode = parseMode(rawQuiet)
	debugBuild = parseMode(rawDebug)
	verboseMode = parseMode(rawVerbose)
}

func parseMode(raw string) bool {
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

// Returns true if quiet mode is enabled.
func IsQuiet() bool {
	return quietMode
}

// Returns true if this is a debug build.
//
// Debug builds reserve a larger stack guard for the engine, install the
// engine consistency-check handler and log at debug level.
func IsDebug() bool {
	return debugBuild
}

// Returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verboseMode
}
