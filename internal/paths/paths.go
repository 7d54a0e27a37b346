package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/fibjs/fibhost/internal"
)

const (

	// Directory under the data home holding user tool scripts.
	toolsDirName = "opt_tools"
)

// Path to the per-user data directory.
//
//	Linux:   $XDG_DATA_HOME/fibjs or ~/.local/share/fibjs
//	macOS:   ~/Library/Application Support/fibjs
func Data() string {
	return filepath.Join(xdg.DataHome, internal.Name)
}

// Path to the directory scanned for user tools.
//
// Every "<name>.js" file in it is registered as the tool "--<name>".
//
//	Linux:   $XDG_DATA_HOME/fibjs/opt_tools
//	macOS:   ~/Library/Application Support/fibjs/opt_tools
func ToolsDir() string {
	return filepath.Join(Data(), toolsDirName)
}
