package ioqueue

import (
	"testing"
	"time"

	"github.com/stlalpha/linecraft/internal/lcconfig"
)

func TestCharPumpRoundTripsWideRunes(t *testing.T) {
	cp := NewCharPump(8, lcconfig.CloseStrict)
	go func() {
		for _, r := range "日本語" {
			cp.Pump().Write(r)
		}
	}()

	var out []rune
	for i := 0; i < 3; i++ {
		v, err := cp.Read(time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, rune(v))
	}
	if string(out) != "日本語" {
		t.Fatalf("expected %q, got %q", "日本語", string(out))
	}
}

func TestCharPumpReadBufferedInfiniteTimeoutReturnsAfterFirstRune(t *testing.T) {
	cp := NewCharPump(8, lcconfig.CloseStrict)
	cp.Pump().Write('a')
	cp.Pump().Write('b')

	buf := make([]rune, 4)
	n, err := cp.ReadBuffered(buf, 0, 4, InfiniteTimeout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected an infinite-timeout buffered read to return after the first rune, got n=%d", n)
	}
}
