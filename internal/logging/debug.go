package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DebugEnvVar turns on the plain debug trace when set to any non-empty value
const DebugEnvVar = "TM_DEBUG"

var debugOutput io.Writer = os.Stderr

// DebugEnabled returns true if debug mode is enabled via TM_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnvVar) != ""
}

// Debugf prints a formatted debug line only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOutput, strings.TrimSuffix(format, "\n")+"\n", args...)
	}
}

