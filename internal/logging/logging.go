// Package logging is the application's leveled wrapper around the standard
// logger.
package logging

import (
	"io"
	"log"
)

var debugEnabled bool

// SetDebug controls whether calls to Debugf emit output.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

// SetOutput redirects all log output.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Debugf is a no-op unless debug logging is enabled.
func Debugf(format string, v ...any) {
	if debugEnabled {
		log.Printf("DEBUG "+format, v...)
	}
}

func Infof(format string, v ...any) {
	log.Printf("INFO "+format, v...)
}

func Errorf(format string, v ...any) {
	log.Printf("ERROR "+format, v...)
}
