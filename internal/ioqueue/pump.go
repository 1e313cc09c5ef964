package ioqueue

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stlalpha/linecraft/internal/lcconfig"
)

// Pump is a fixed-capacity, single-producer/single-consumer ring buffer over
// T (byte or rune), with timeout-bearing reads and a close-mode policy
// governing access after Close. One mutex guards the ring; a read-ready and
// a write-ready condition variable wake blocked readers and writers
// independently, grounded on spec.md §4.2's "single monitor" pump design.
type Pump[T any] struct {
	mu         sync.Mutex
	readCond   *sync.Cond
	writeCond  *sync.Cond
	ring       ring[T]
	closed     atomic.Bool
	shutdown   atomic.Bool
	closeMode  lcconfig.CloseMode
	warnOnce   func(format string, args ...any)
}

// NewPump returns a Pump with the given ring capacity and close-mode policy.
func NewPump[T any](capacity int, mode lcconfig.CloseMode) *Pump[T] {
	p := &Pump[T]{
		ring:      newRing[T](capacity),
		closeMode: mode,
		warnOnce:  clogOnce(),
	}
	p.readCond = sync.NewCond(&p.mu)
	p.writeCond = sync.NewCond(&p.mu)
	return p
}

// clogOnce is a seam so tests can substitute a capturing logger; it delegates
// to clog.Once in production.
var clogOnce = defaultClogOnce

func (p *Pump[T]) closedAccessErr(op string) error {
	switch p.closeMode {
	case lcconfig.CloseStrict:
		return fmt.Errorf("%w: %s after close", ErrClosedStream, op)
	case lcconfig.CloseWarn:
		p.warnOnce("ioqueue: %s after close (set close-mode=strict to fail fast instead)", op)
		return nil
	default: // lcconfig.CloseLenient, or an unset/unknown mode
		return nil
	}
}

// Read blocks until a value is available, the timeout expires, or the
// stream closes. It returns (value, 0, nil) on success, or (zero, EOF|
// ReadExpired, nil) for the sentinel cases, or (zero, 0, err) when strict
// close-mode policy rejects the access.
func (p *Pump[T]) Read(timeout time.Duration) (T, int, error) {
	return p.read(timeout, true)
}

// Peek behaves like Read but does not consume the value.
func (p *Pump[T]) Peek(timeout time.Duration) (T, int, error) {
	return p.read(timeout, false)
}

func (p *Pump[T]) read(timeout time.Duration, consume bool) (T, int, error) {
	var zero T
	deadline := effectiveDeadline(timeout)

	p.mu.Lock()
	defer p.mu.Unlock()

	enteredClosed := p.closed.Load()
	for p.ring.empty() {
		if p.closed.Load() {
			if enteredClosed {
				if err := p.closedAccessErr("read"); err != nil {
					return zero, 0, err
				}
			}
			return zero, EOF, nil
		}
		if deadline.IsZero() {
			p.readCond.Wait()
			continue
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return zero, ReadExpired, nil
		}
		timer := time.AfterFunc(remaining, func() {
			p.mu.Lock()
			p.readCond.Broadcast()
			p.mu.Unlock()
		})
		p.readCond.Wait()
		timer.Stop()
	}

	if consume {
		v := p.ring.pop()
		p.writeCond.Broadcast()
		return v, 0, nil
	}
	return p.ring.peek(), 0, nil
}

// Write blocks until space is available or the stream closes.
func (p *Pump[T]) Write(v T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed.Load() {
		return p.closedAccessErr("write")
	}
	for p.ring.full() {
		if p.closed.Load() {
			// Closed while this writer was blocked: fail regardless of policy.
			return fmt.Errorf("%w: write blocked at close", ErrClosedStream)
		}
		if p.shutdown.Load() {
			return ErrInterrupted
		}
		p.writeCond.Wait()
	}
	p.ring.push(v)
	p.readCond.Broadcast()
	return nil
}

// WriteSlice writes each element of vs in turn, blocking as needed, and
// returns the number written before an error (if any) was hit.
func (p *Pump[T]) WriteSlice(vs []T) (int, error) {
	for i, v := range vs {
		if err := p.Write(v); err != nil {
			return i, err
		}
	}
	return len(vs), nil
}

// Close marks the pump closed: blocked readers wake with EOF, blocked
// writers wake and fail, and further access follows the close-mode policy.
// Idempotent.
func (p *Pump[T]) Close() error {
	p.mu.Lock()
	p.closed.Store(true)
	p.mu.Unlock()
	p.readCond.Broadcast()
	p.writeCond.Broadcast()
	return nil
}

// Shutdown requests any goroutine feeding this pump in the background to
// stop, without itself marking the stream closed to readers. Idempotent.
func (p *Pump[T]) Shutdown() {
	p.shutdown.Store(true)
	p.mu.Lock()
	p.mu.Unlock()
	p.readCond.Broadcast()
	p.writeCond.Broadcast()
}

// ShutdownRequested reports whether Shutdown has been called, for a
// feeder goroutine to poll between reads of its upstream source.
func (p *Pump[T]) ShutdownRequested() bool { return p.shutdown.Load() }

// Closed reports whether Close has been called.
func (p *Pump[T]) Closed() bool { return p.closed.Load() }

// Readable reports the number of values currently buffered.
func (p *Pump[T]) Readable() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ring.count
}
