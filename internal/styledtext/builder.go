package styledtext

// Builder accumulates a styled character sequence. It is single-threaded;
// the conventional lifecycle is to append content, then call Build once to
// publish an immutable Text, grounded on spec.md §3: "builders are
// single-threaded and transition to an immutable string by publishing their
// buffer."
type Builder struct {
	runes  []rune
	styles []Style
	cur    Style

	tabStops  []int
	tabsFixed bool // true once any character has been appended
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Style returns the builder's current style, inherited by subsequent
// plain-text appends.
func (b *Builder) Style() Style { return b.cur }

// SetStyle replaces the builder's current style outright.
func (b *Builder) SetStyle(s Style) *Builder {
	b.cur = s
	return b
}

// StyleFunc replaces the builder's current style with f applied to it,
// supporting scoped functional updates like b.StyleFunc(func(s Style) Style
// { return s.Set(AttrBold) }).
func (b *Builder) StyleFunc(f func(Style) Style) *Builder {
	b.cur = f(b.cur)
	return b
}

// Styled pushes style on top of the current style (via Combine), runs fn,
// then restores the previous style — on every exit path, including a panic
// propagating out of fn, per spec.md §4.1's builder contract.
func (b *Builder) Styled(style Style, fn func(*Builder)) *Builder {
	prev := b.cur
	b.cur = Combine(b.cur, style)
	defer func() { b.cur = prev }()
	fn(b)
	return b
}

// Append appends plain text, each rune taking the builder's current style.
func (b *Builder) Append(s string) *Builder {
	b.tabsFixed = true
	for _, r := range s {
		b.runes = append(b.runes, r)
		b.styles = append(b.styles, b.cur)
	}
	return b
}

// AppendText appends a styled sequence, combining each of its runes' styles
// with the builder's current style (so the builder's style acts as a
// fallback for anything t leaves unset), per spec.md §4.1: "append of styled
// sequences (preserves their styles modulo current mask)".
func (b *Builder) AppendText(t Text) *Builder {
	b.tabsFixed = true
	for i := 0; i < t.Len(); i++ {
		b.runes = append(b.runes, t.RuneAt(i))
		b.styles = append(b.styles, Combine(b.cur, t.StyleAt(i)))
	}
	return b
}

// SetTabs fixes the builder's tab stops. It panics if any character has
// already been appended, per spec.md §4.1: "Tab stops are fixed at
// construction: setting or changing tabs after any character has been
// appended fails."
func (b *Builder) SetTabs(stops []int) *Builder {
	if b.tabsFixed {
		panic("styledtext: SetTabs called after content was appended")
	}
	b.tabStops = append([]int(nil), stops...)
	return b
}

// Tabs returns the builder's fixed tab stops.
func (b *Builder) Tabs() []int { return b.tabStops }

// Build publishes an immutable Text from the builder's current contents.
// The builder's backing arrays are copied so that further appends to b
// cannot affect the returned Text, per spec.md §4.1's lifecycle contract.
func (b *Builder) Build() Text {
	runes := make([]rune, len(b.runes))
	styles := make([]Style, len(b.styles))
	copy(runes, b.runes)
	copy(styles, b.styles)
	return Text{runes: runes, styles: styles, length: len(runes)}
}

// Len returns the number of code points appended so far.
func (b *Builder) Len() int { return len(b.runes) }
