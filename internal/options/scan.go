package options

import "strings"

// Namespace prepended to a long flag's name when asking whether it names an
// external tool.
const ToolNamespace = "opt_tools/"

// Reports whether a namespaced key names a registered external tool.
type ToolLookup interface {
	Lookup(key string) bool
}

// Returns the end of the host flag region of args (exclusive).
//
// Scanning starts at index 1 and advances while tokens start with "-". It
// stops at the first token that does not, or at a "--name" token for which
// tools reports a match on "opt_tools/name"; that token and everything after
// it belong to the script or the tool. A nil tools matches nothing.
func Scan(args []string, tools ToolLookup) int {
	if len(args) == 0 {
		return 0
	}

	pos := 1
	for ; pos < len(args) && strings.HasPrefix(args[pos], "-"); pos++ {
		if tools == nil || !strings.HasPrefix(args[pos], "--") {
			continue
		}
		if tools.Lookup(ToolNamespace + args[pos][2:]) {
			break
		}
	}
	return pos
}
