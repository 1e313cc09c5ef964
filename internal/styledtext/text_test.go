package styledtext

import "testing"

func TestPlainAndString(t *testing.T) {
	txt := Plain("hello")
	if txt.Len() != 5 {
		t.Fatalf("expected length 5, got %d", txt.Len())
	}
	if txt.String() != "hello" {
		t.Fatalf("expected %q, got %q", "hello", txt.String())
	}
}

func TestSubstringIsZeroCopy(t *testing.T) {
	b := NewBuilder()
	b.Append("hello world")
	txt := b.Build()

	sub := txt.Substring(6, 11)
	if sub.String() != "world" {
		t.Fatalf("expected %q, got %q", "world", sub.String())
	}

	// Mutating the builder's own backing arrays afterward must not be
	// observable through sub or txt, since Build copies into fresh arrays.
	b.Append("!!!")
	if sub.String() != "world" || txt.String() != "hello world" {
		t.Fatalf("published Text must be immune to later builder mutation")
	}
}

func TestSubstringInvalidBoundsPanics(t *testing.T) {
	txt := Plain("hello")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on invalid substring bounds")
		}
	}()
	_ = txt.Substring(3, 10)
}

func TestRuneAtOutOfRangePanics(t *testing.T) {
	txt := Plain("hi")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range index")
		}
	}()
	_ = txt.RuneAt(5)
}

func TestColumnLengthWideAndHidden(t *testing.T) {
	b := NewBuilder()
	b.Append("a")
	b.StyleFunc(func(s Style) Style { return s.WithHidden(true) })
	b.Append("b")
	b.SetStyle(Style{})
	b.Append("日") // East Asian wide, 2 columns
	txt := b.Build()

	if got := txt.ColumnLength(); got != 1+0+2 {
		t.Fatalf("expected column length 3, got %d", got)
	}
}

func TestColumnSubsequenceClipsAtNewline(t *testing.T) {
	txt := Plain("abc\ndef")
	sub := txt.ColumnSubsequence(0, 100)
	if sub.String() != "abc" {
		t.Fatalf("expected clip at newline, got %q", sub.String())
	}
}

func TestColumnSubsequenceNeverSplitsWideChar(t *testing.T) {
	txt := Plain("a日b") // columns: a=col 0, 日=cols 1-2, b=col 3
	// Asking for columns [0,2) straddles the wide rune's second column; since
	// it cannot be cut in half, the whole rune is included rather than
	// truncated mid-character.
	sub := txt.ColumnSubsequence(0, 2)
	if sub.String() != "a日" {
		t.Fatalf("expected the wide rune included whole, got %q", sub.String())
	}

	// A request that lands exactly on the rune's own column boundaries gets
	// exactly that rune, with no overflow into neighboring columns.
	exact := txt.ColumnSubsequence(1, 3)
	if exact.String() != "日" {
		t.Fatalf("expected exactly %q, got %q", "日", exact.String())
	}
}

func TestColumnSplitWrapsAtWidth(t *testing.T) {
	txt := Plain("abcdefgh")
	segs := txt.ColumnSplit(3, false, false)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segs), segs)
	}
	want := []string{"abc", "def", "gh"}
	for i, w := range want {
		if segs[i].Text.String() != w {
			t.Fatalf("segment %d: expected %q, got %q", i, w, segs[i].Text.String())
		}
	}
}

func TestColumnSplitHardNewlines(t *testing.T) {
	txt := Plain("ab\ncd")
	segs := txt.ColumnSplit(10, true, false)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if !segs[0].HardNewline {
		t.Fatalf("first segment should end on a hard newline")
	}
	if segs[0].Text.String() != "ab" || segs[1].Text.String() != "cd" {
		t.Fatalf("unexpected segment contents: %+v", segs)
	}
}

func TestColumnSplitIsEagerlyMaterialized(t *testing.T) {
	txt := Plain("abcdef")
	segs := txt.ColumnSplit(2, false, false)
	// Calling it twice should produce independently usable, identical
	// results — it is not a single-use iterator.
	again := txt.ColumnSplit(2, false, false)
	if len(segs) != len(again) {
		t.Fatalf("expected repeatable results, got %d vs %d", len(segs), len(again))
	}
	for i := range segs {
		if segs[i].Text.String() != again[i].Text.String() {
			t.Fatalf("segment %d differs between calls", i)
		}
	}
}
