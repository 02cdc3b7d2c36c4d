// Package trace is the debug-tracing facility the CLI gates behind
// --debug, modeled directly on the teacher repo's package-level
// debugPrint/debugMode pair (dBitech-timeline2svg/main.go): a plain
// fmt.Fprintf to stderr behind a bool, not a structured logging library —
// the teacher never reaches for one either, so neither does this repo's
// CLI. See DESIGN.md for why no ecosystem logger was substituted.
package trace

import (
	"fmt"
	"os"
)

// Enabled gates Printf. The CLI's --debug flag sets this once at startup;
// nothing else in the module ever reads or writes it.
var Enabled bool

// Printf writes a "[trace] "-prefixed line to stderr when Enabled is true,
// and is a no-op otherwise.
func Printf(format string, args ...interface{}) {
	if Enabled {
		fmt.Fprintf(os.Stderr, "[trace] "+format+"\n", args...)
	}
}
