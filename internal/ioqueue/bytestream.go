package ioqueue

import (
	"time"

	"github.com/stlalpha/linecraft/internal/lcconfig"
)

// ByteStream is a non-blocking byte source: read(), read(timeout),
// peek(timeout), read_buffered(...), close(), shutdown(), per spec.md §4.2.
type ByteStream interface {
	// Read blocks until a byte is available, the timeout elapses, or the
	// stream closes. It returns the byte value (0-255), or the EOF or
	// ReadExpired sentinel. A zero timeout blocks indefinitely.
	Read(timeout time.Duration) (int, error)
	// Peek behaves like Read but does not consume the byte.
	Peek(timeout time.Duration) (int, error)
	// ReadBuffered fills buf[off:off+length] with up to length bytes,
	// returning the count actually read, or the EOF or ReadExpired sentinel
	// when no byte arrived.
	ReadBuffered(buf []byte, off, length int, timeout time.Duration) (int, error)
	// Close marks the stream closed.
	Close() error
	// Shutdown requests any background feeder to stop; idempotent.
	Shutdown()
}

// BytePump is a ByteStream backed by a Pump[byte].
type BytePump struct {
	pump *Pump[byte]
}

// NewBytePump returns a BytePump with the given ring capacity and
// close-mode policy.
func NewBytePump(capacity int, mode lcconfig.CloseMode) *BytePump {
	return &BytePump{pump: NewPump[byte](capacity, mode)}
}

// Pump exposes the backing Pump for a feeder goroutine to Write into.
func (s *BytePump) Pump() *Pump[byte] { return s.pump }

func (s *BytePump) Read(timeout time.Duration) (int, error) {
	v, sentinel, err := s.pump.Read(timeout)
	if err != nil || sentinel != 0 {
		return sentinel, err
	}
	return int(v), nil
}

func (s *BytePump) Peek(timeout time.Duration) (int, error) {
	v, sentinel, err := s.pump.Peek(timeout)
	if err != nil || sentinel != 0 {
		return sentinel, err
	}
	return int(v), nil
}

// ReadBuffered fills buf[off:off+length], blocking for the first byte with
// timeout, then draining any further immediately-available bytes with a
// 1ms timeout so the call returns promptly instead of waiting for a full
// buffer. If timeout is infinite (0), it returns immediately after the
// first byte per spec.md §4.2.
func (s *BytePump) ReadBuffered(buf []byte, off, length int, timeout time.Duration) (int, error) {
	if length <= 0 {
		return 0, nil
	}
	first, err := s.Read(timeout)
	if err != nil {
		return 0, err
	}
	if first == EOF || first == ReadExpired {
		return first, nil
	}
	buf[off] = byte(first)
	n := 1
	if timeout == InfiniteTimeout {
		return n, nil
	}
	for n < length {
		v, err := s.Read(1 * time.Millisecond)
		if err != nil {
			return n, err
		}
		if v == ReadExpired || v == EOF {
			break
		}
		buf[off+n] = byte(v)
		n++
	}
	return n, nil
}

func (s *BytePump) Close() error { return s.pump.Close() }

func (s *BytePump) Shutdown() { s.pump.Shutdown() }
