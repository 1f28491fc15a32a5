// Package logging holds the process-wide logger. Everything goes to stderr:
// stdout is reserved for the dialog payload.
package logging

import (
	"fmt"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper functions
// below; L is exported for the rare case where structured fields are needed.
var L = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: false,
})

func init() {
	L.SetLevel(clog.WarnLevel)
	if os.Getenv("PLACARD_DEBUG") != "" {
		L.SetLevel(clog.DebugLevel)
	}
}

// SetDebug lowers the level so Debugf/Infof become visible.
func SetDebug(on bool) {
	if on {
		L.SetLevel(clog.DebugLevel)
	} else {
		L.SetLevel(clog.WarnLevel)
	}
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
