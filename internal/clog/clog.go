// Package clog provides leveled logging for linecraft.
//
// It generalizes the teacher's DebugEnabled/Debug pair into the four levels
// every other package in this module reaches for via ad hoc log.Printf
// prefixes ("DEBUG:", "WARN:", "ERROR:").
package clog

import "log"

// DebugEnabled controls whether Debug() produces output.
// The linecraft command sets it from its -debug flag.
var DebugEnabled bool

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG: "+format, args...)
	}
}

// Info logs an informational message unconditionally.
func Info(format string, args ...any) {
	log.Printf("INFO: "+format, args...)
}

// Warn logs a warning unconditionally.
func Warn(format string, args ...any) {
	log.Printf("WARN: "+format, args...)
}

// Error logs an error unconditionally.
func Error(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}

// Once returns a function that logs the given message via Warn only on its
// first call; every subsequent call is silent. Used by ioqueue's warn
// close-mode, which must log at most once per stream instance.
func Once() func(format string, args ...any) {
	var logged bool
	return func(format string, args ...any) {
		if logged {
			return
		}
		logged = true
		Warn(format, args...)
	}
}
