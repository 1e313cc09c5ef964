package ioqueue

import (
	"time"

	"github.com/stlalpha/linecraft/internal/lcconfig"
)

// CharStream is the char-stream twin of ByteStream, operating on whole
// Unicode code points. spec.md §4.2 describes this in terms of 16-bit code
// units and warns against splitting a surrogate pair across reads; a Go
// rune already is a full code point (not a UTF-16 code unit), so no
// surrogate pair ever exists to split at this layer.
type CharStream interface {
	Read(timeout time.Duration) (int, error)
	Peek(timeout time.Duration) (int, error)
	ReadBuffered(buf []rune, off, length int, timeout time.Duration) (int, error)
	Close() error
	Shutdown()
}

// CharPump is a CharStream backed by a Pump[rune].
type CharPump struct {
	pump *Pump[rune]
}

// NewCharPump returns a CharPump with the given ring capacity and
// close-mode policy.
func NewCharPump(capacity int, mode lcconfig.CloseMode) *CharPump {
	return &CharPump{pump: NewPump[rune](capacity, mode)}
}

// Pump exposes the backing Pump for a feeder goroutine to Write into.
func (s *CharPump) Pump() *Pump[rune] { return s.pump }

func (s *CharPump) Read(timeout time.Duration) (int, error) {
	v, sentinel, err := s.pump.Read(timeout)
	if err != nil || sentinel != 0 {
		return sentinel, err
	}
	return int(v), nil
}

func (s *CharPump) Peek(timeout time.Duration) (int, error) {
	v, sentinel, err := s.pump.Peek(timeout)
	if err != nil || sentinel != 0 {
		return sentinel, err
	}
	return int(v), nil
}

func (s *CharPump) ReadBuffered(buf []rune, off, length int, timeout time.Duration) (int, error) {
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
	buf[off] = rune(first)
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
		buf[off+n] = rune(v)
		n++
	}
	return n, nil
}

func (s *CharPump) Close() error { return s.pump.Close() }

func (s *CharPump) Shutdown() { s.pump.Shutdown() }
