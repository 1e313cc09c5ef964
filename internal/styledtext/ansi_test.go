package styledtext

import (
	"strings"
	"testing"
)

func TestToANSIPlainTextHasNoEscapes(t *testing.T) {
	txt := Plain("hello")
	out := string(ToANSI(txt, DefaultCapabilities()))
	if out != "hello" {
		t.Fatalf("expected plain passthrough, got %q", out)
	}
}

func TestToANSIBoldAndRedMatchesExample(t *testing.T) {
	b := NewBuilder()
	b.Append("Hello, ")
	b.StyleFunc(func(s Style) Style { return s.Set(AttrBold).WithForeground(Indexed(1)) })
	b.Append("world")
	txt := b.Build()

	out := string(ToANSI(txt, DefaultCapabilities()))
	want := "Hello, \x1b[1;31mworld\x1b[0m"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestToANSIEmitsNoEscapeWhenStyleUnchanged(t *testing.T) {
	b := NewBuilder()
	b.SetStyle(Style{}.Set(AttrBold))
	b.Append("ab")
	txt := b.Build()

	out := string(ToANSI(txt, DefaultCapabilities()))
	if strings.Count(out, "\x1b[") != 1 {
		t.Fatalf("expected exactly one SGR group for a uniformly styled run, got %q", out)
	}
}

func TestToANSIReEmitsBoldOnForegroundChangeWhileBoldActive(t *testing.T) {
	b := NewBuilder()
	b.SetStyle(Style{}.Set(AttrBold).WithForeground(Indexed(1)))
	b.Append("a")
	b.SetStyle(Style{}.Set(AttrBold).WithForeground(Indexed(2)))
	b.Append("b")
	txt := b.Build()

	out := string(ToANSI(txt, DefaultCapabilities()))
	if !strings.Contains(out, "32;1") && !strings.Contains(out, "1;32") {
		t.Fatalf("expected bold to be re-emitted alongside the foreground change, got %q", out)
	}
}

func TestToANSITrueColorEmitsDirectRGB(t *testing.T) {
	b := NewBuilder()
	b.SetStyle(Style{}.WithForeground(RGB(10, 20, 30)))
	b.Append("x")
	txt := b.Build()

	caps := Capabilities{Colors: 1 << 24}
	out := string(ToANSI(txt, caps))
	want := "\x1b[38;2;10;20;30mx\x1b[0m"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestToANSILowColorRoundsRGBToIndexed(t *testing.T) {
	b := NewBuilder()
	b.SetStyle(Style{}.WithForeground(RGB(255, 0, 0)))
	b.Append("x")
	txt := b.Build()

	caps := Capabilities{Colors: 256}
	out := string(ToANSI(txt, caps))
	if strings.Contains(out, "38;2") {
		t.Fatalf("expected RGB to be rounded to an indexed form at 256 colors, got %q", out)
	}
}

func TestToANSIAltCharsetSubstitution(t *testing.T) {
	txt := Plain("─│")
	caps := Capabilities{Colors: 256, AltCharsetIn: "\x1b(0", AltCharsetOut: "\x1b(B"}
	out := string(ToANSI(txt, caps))
	want := "\x1b(0qx\x1b(B"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestToANSIAltCharsetDisabled(t *testing.T) {
	txt := Plain("─")
	caps := Capabilities{Colors: 256, AltCharsetIn: "\x1b(0", AltCharsetOut: "\x1b(B", DisableAltCharset: true}
	out := string(ToANSI(txt, caps))
	if out != "─" {
		t.Fatalf("expected substitution suppressed, got %q", out)
	}
}

func TestToANSIResetColorsEmitDefaultCodes(t *testing.T) {
	b := NewBuilder()
	b.SetStyle(Style{}.WithForeground(Indexed(1)))
	b.Append("a")
	b.SetStyle(Style{})
	b.Append("b")
	txt := b.Build()

	out := string(ToANSI(txt, DefaultCapabilities()))
	if !strings.Contains(out, "39") {
		t.Fatalf("expected default-foreground reset code 39 on dropping back to unset, got %q", out)
	}
}
