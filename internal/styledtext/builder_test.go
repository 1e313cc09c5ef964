package styledtext

import "testing"

func TestBuilderAppendInheritsCurrentStyle(t *testing.T) {
	b := NewBuilder()
	b.SetStyle(Style{}.Set(AttrBold))
	b.Append("hi")
	txt := b.Build()

	for i := 0; i < txt.Len(); i++ {
		if !txt.StyleAt(i).Has(AttrBold) {
			t.Fatalf("rune %d should have inherited bold", i)
		}
	}
}

func TestBuilderStyledScopeRestoresOnReturn(t *testing.T) {
	b := NewBuilder()
	b.Append("a")
	b.Styled(Style{}.Set(AttrBold), func(b *Builder) {
		b.Append("b")
	})
	b.Append("c")
	txt := b.Build()

	if txt.StyleAt(0).Has(AttrBold) || txt.StyleAt(2).Has(AttrBold) {
		t.Fatalf("bold must not leak outside the Styled scope")
	}
	if !txt.StyleAt(1).Has(AttrBold) {
		t.Fatalf("the character appended inside Styled should be bold")
	}
}

func TestBuilderStyledScopeRestoresOnPanic(t *testing.T) {
	b := NewBuilder()
	func() {
		defer func() { recover() }()
		b.Styled(Style{}.Set(AttrBold), func(b *Builder) {
			panic("boom")
		})
	}()
	b.Append("x")
	txt := b.Build()
	if txt.StyleAt(0).Has(AttrBold) {
		t.Fatalf("a panic inside Styled must still restore the prior style")
	}
}

func TestBuilderAppendTextCombinesWithBuilderStyle(t *testing.T) {
	inner := NewBuilder().SetStyle(Style{}.Set(AttrItalic)).Append("x").Build()

	b := NewBuilder()
	b.SetStyle(Style{}.Set(AttrBold))
	b.AppendText(inner)
	txt := b.Build()

	s := txt.StyleAt(0)
	if !s.Has(AttrBold) {
		t.Fatalf("builder's bold should act as a fallback under the appended text")
	}
	if !s.Has(AttrItalic) {
		t.Fatalf("appended text's own italic should be preserved")
	}
}

func TestSetTabsAfterAppendPanics(t *testing.T) {
	b := NewBuilder()
	b.Append("x")
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic from SetTabs after content was appended")
		}
	}()
	b.SetTabs([]int{4, 8})
}

func TestSetTabsBeforeAppendSucceeds(t *testing.T) {
	b := NewBuilder()
	b.SetTabs([]int{4, 8})
	b.Append("x")
	if len(b.Tabs()) != 2 {
		t.Fatalf("expected 2 tab stops, got %d", len(b.Tabs()))
	}
}

func TestBuildCopiesSoLaterAppendsDontLeak(t *testing.T) {
	b := NewBuilder()
	b.Append("ab")
	txt := b.Build()
	b.Append("cd")
	if txt.Len() != 2 {
		t.Fatalf("Build should have frozen the length at 2, got %d", txt.Len())
	}
}
