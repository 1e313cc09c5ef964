package ioqueue

import "errors"

// ErrClosedStream is returned for an access made to a stream under strict
// close-mode policy after Close, and to a writer that was blocked on a full
// ring when Close was called, regardless of policy.
var ErrClosedStream = errors.New("ioqueue: stream closed")

// ErrInterrupted is returned when a Write blocked on a full ring is
// abandoned because Shutdown was called on the pump. Blocked reads are not
// interrupted by Shutdown.
var ErrInterrupted = errors.New("ioqueue: interrupted by shutdown")
