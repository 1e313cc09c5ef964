package ioqueue

import (
	"sync"
	"time"

	"golang.org/x/text/encoding"
)

// Transcoder is a ByteStream view over a CharStream: it encodes each rune
// read from the underlying char stream into bytes using enc, substituting
// the encoding's replacement byte for any rune enc cannot represent (policy
// REPLACE on unmappable input, per spec.md §4.2). Grounded on the teacher's
// writeWithCP437Encoding (internal/terminal/writer.go), which runs every
// outbound byte through charmap.CodePage437's encoder; generalized here into
// a pull-based stream instead of a whole-buffer pass, and onto any
// golang.org/x/text/encoding.Encoding rather than CP437 alone.
type Transcoder struct {
	chars   CharStream
	encoder encoding.Encoder

	mu  sync.Mutex
	buf []byte
	pos int
}

// NewTranscoder wraps chars, encoding runes with enc. Unmappable runes are
// replaced rather than rejected, via encoding.ReplaceUnsupported.
func NewTranscoder(chars CharStream, enc encoding.Encoding) *Transcoder {
	return &Transcoder{
		chars:   chars,
		encoder: *encoding.ReplaceUnsupported(enc).NewEncoder(),
	}
}

func (t *Transcoder) encodeRune(r rune) ([]byte, error) {
	src := []byte(string(r))
	dst := make([]byte, 8)
	n, _, err := t.encoder.Transform(dst, src, true)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

func (t *Transcoder) Read(timeout time.Duration) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.readLocked(timeout)
}

func (t *Transcoder) readLocked(timeout time.Duration) (int, error) {
	if t.pos < len(t.buf) {
		b := t.buf[t.pos]
		t.pos++
		return int(b), nil
	}
	for {
		cv, err := t.chars.Read(timeout)
		if err != nil {
			return 0, err
		}
		if cv == EOF || cv == ReadExpired {
			return cv, nil
		}
		encoded, encErr := t.encodeRune(rune(cv))
		if encErr != nil || len(encoded) == 0 {
			// ReplaceUnsupported should make this unreachable in practice;
			// skip the rune rather than fail the whole stream.
			continue
		}
		t.buf = encoded
		t.pos = 0
		b := t.buf[t.pos]
		t.pos++
		return int(b), nil
	}
}

// Peek reveals the next byte without consuming it. When the transcoder's
// byte buffer is empty, it peeks (not reads) the underlying char and
// encodes it speculatively; since the char stays unconsumed, a later Read
// re-derives the same byte sequence deterministically.
func (t *Transcoder) Peek(timeout time.Duration) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pos < len(t.buf) {
		return int(t.buf[t.pos]), nil
	}
	cv, err := t.chars.Peek(timeout)
	if err != nil {
		return 0, err
	}
	if cv == EOF || cv == ReadExpired {
		return cv, nil
	}
	encoded, encErr := t.encodeRune(rune(cv))
	if encErr != nil || len(encoded) == 0 {
		return EOF, nil
	}
	return int(encoded[0]), nil
}

func (t *Transcoder) ReadBuffered(buf []byte, off, length int, timeout time.Duration) (int, error) {
	if length <= 0 {
		return 0, nil
	}
	first, err := t.Read(timeout)
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
		v, err := t.Read(1 * time.Millisecond)
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

func (t *Transcoder) Close() error { return t.chars.Close() }

func (t *Transcoder) Shutdown() { t.chars.Shutdown() }

// AvailableEstimate reports an estimate of readable bytes: buffered bytes
// plus the underlying char stream's readable rune count times
// averageBytesPerChar, rounded down, per spec.md §4.2's available().
func (t *Transcoder) AvailableEstimate(readableChars int, averageBytesPerChar float64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	buffered := len(t.buf) - t.pos
	return buffered + int(float64(readableChars)*averageBytesPerChar)
}
