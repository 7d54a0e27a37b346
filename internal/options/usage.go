package options

import (
	"strings"

	"github.com/fibjs/fibhost/internal"
)

const usageTemplate = `Usage: %NAME% [options] [script.js] [arguments]

Options:
  -h, --help           print %NAME% command line options.
  -v, --version        print %NAME% version.

  --use-thread         run %NAME% in thread mode.
  --tcpdump            print out the contents of the tcp package.
  --ssldump            print out the contents of the ssl package.

  --use-uv-socket[=on|off]
                       use uv as socket backend.

  --init               write a package.json file.
  --install [opt] foo  install the dependencies in the local node_modules folder.
    -S, --save         save package config to dependencies.
    -D, --save-dev     save package config to devDependencies.

  --prof               log statistical profiling information.
  --prof-interval=n    interval for --prof samples (in microseconds, default: 1000).
  --prof-process       process log file generated by profiler.start.

  --cov[=filename]     collect code coverage information (only work on the main Worker).
  --cov-process        generate code coverage analysis report.

  --v8-options         print v8 command line options.

Documentation can be found at http://fibjs.org

`

// Returns the help text printed by --help.
func Usage() string {
	return strings.ReplaceAll(usageTemplate, "%NAME%", internal.Name)
}
