// Package debug gates tracing output on the EPAPER_DEBUG environment variable.
//
// The variable is read on every call, so commands may enable tracing after
// start up with [os.Setenv].
package debug

import (
	"log"
	"os"
)

// Env is the environment variable that enables tracing.
const Env = "EPAPER_DEBUG"

// Enabled reports if tracing is enabled.
func Enabled() bool {
	return os.Getenv(Env) != ""
}

// Printf logs to the standard logger if tracing is enabled.
func Printf(format string, args ...interface{}) {
	if Enabled() {
		log.Printf(format, args...)
	}
}
