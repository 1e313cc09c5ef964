package ioqueue

import "github.com/stlalpha/linecraft/internal/clog"

func defaultClogOnce() func(format string, args ...any) {
	return clog.Once()
}
