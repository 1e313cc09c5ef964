package styledtext

import "testing"

func TestDisplayWidthASCII(t *testing.T) {
	if w := displayWidth('a', Style{}); w != 1 {
		t.Fatalf("expected width 1, got %d", w)
	}
}

func TestDisplayWidthWide(t *testing.T) {
	if w := displayWidth('日', Style{}); w != 2 {
		t.Fatalf("expected width 2 for East Asian wide rune, got %d", w)
	}
}

func TestDisplayWidthCombiningMark(t *testing.T) {
	// U+0301 COMBINING ACUTE ACCENT
	if w := displayWidth('́', Style{}); w != 0 {
		t.Fatalf("expected width 0 for combining mark, got %d", w)
	}
}

func TestDisplayWidthHidden(t *testing.T) {
	s := Style{}.WithHidden(true)
	if w := displayWidth('a', s); w != 0 {
		t.Fatalf("expected width 0 for hidden rune, got %d", w)
	}
}

func TestDisplayWidthNewline(t *testing.T) {
	if w := displayWidth('\n', Style{}); w != 0 {
		t.Fatalf("expected width 0 for newline, got %d", w)
	}
}
