// Package debug routes the package debug hooks to the standard logger.
package debug

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/recera/rbgview/pkg/graphviewer"
	"github.com/recera/rbgview/pkg/live"
)

var enabled atomic.Bool

// EnableLogging enables debug logging for the viewer and live packages
func EnableLogging() {
	logFn := func(args ...any) {
		log.Println(append([]any{"[debug]"}, args...)...)
	}

	enabled.Store(true)
	graphviewer.SetDebugLog(logFn)
	live.SetDebugLog(logFn)
}

// DisableLogging turns debug logging back off
func DisableLogging() {
	enabled.Store(false)
	graphviewer.SetDebugLog(nil)
	live.SetDebugLog(nil)
}

// Enabled reports whether debug logging is on
func Enabled() bool {
	return enabled.Load()
}

// Logf logs a formatted message when debug logging is on
func Logf(format string, args ...any) {
	if !enabled.Load() {
		return
	}
	log.Print("[debug] " + fmt.Sprintf(format, args...))
}
