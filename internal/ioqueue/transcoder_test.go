package ioqueue

import (
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/stlalpha/linecraft/internal/lcconfig"
)

func TestTranscoderEncodesASCIIPassthrough(t *testing.T) {
	cp := NewCharPump(8, lcconfig.CloseStrict)
	go func() {
		for _, r := range "hi" {
			cp.Pump().Write(r)
		}
	}()

	tr := NewTranscoder(cp, charmap.CodePage437)
	var out []byte
	for i := 0; i < 2; i++ {
		v, err := tr.Read(time.Second)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, byte(v))
	}
	if string(out) != "hi" {
		t.Fatalf("expected %q, got %q", "hi", string(out))
	}
}

func TestTranscoderReplacesUnmappableRunes(t *testing.T) {
	cp := NewCharPump(8, lcconfig.CloseStrict)
	go func() {
		cp.Pump().Write('☃') // snowman: not in CP437's repertoire
	}()

	tr := NewTranscoder(cp, charmap.CodePage437)
	v, err := tr.Read(time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == EOF || v == ReadExpired {
		t.Fatalf("expected a replacement byte, got sentinel %d", v)
	}
}

func TestTranscoderPropagatesEOF(t *testing.T) {
	cp := NewCharPump(8, lcconfig.CloseLenient)
	cp.Close()

	tr := NewTranscoder(cp, charmap.CodePage437)
	v, err := tr.Read(time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != EOF {
		t.Fatalf("expected EOF, got %d", v)
	}
}
