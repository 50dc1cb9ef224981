/*package error contains simple functions for reporting fatal lpadiag errors.
*/
package error

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
)

// exit is replaced in tests.
var exit = os.Exit

// External reports an error and kills the program. It should be used when an
// error is something a user could reasonably be expected to fix through
// changes in configuration/data/environment. It has the same signature as
// the standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	slog.Error("lpadiag exited early with the following error: " +
		fmt.Sprintf(format, a...))
	exit(1)
}

// Internal reports an error along with a stack trace and kills the program.
// It should be used when the error requires a code dive to fix. It has the
// same signature as the standard fmt.*printf() functions.
func Internal(format string, a ...interface{}) {
	slog.Error("lpadiag exited early with the following internal error: " +
		fmt.Sprintf(format, a...), "stack", string(debug.Stack()))
	exit(1)
}
