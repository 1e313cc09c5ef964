// Package styledtext implements the attributed character sequence and its
// ANSI renderer: an immutable styled string, a single-threaded builder, and
// conversion to and from ANSI SGR escape sequences.
//
// It is grounded on the teacher's internal/terminal (ArtRenderer, ANSIParser,
// CharsetHandler) and internal/ansi packages, generalized from "render a CP437
// art file for a BBS session" into "render an attributed character sequence
// for any terminal capability."
package styledtext

// Attr is one of the eight boolean text attributes a Style can carry.
type Attr int

const (
	AttrBold Attr = iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrConceal
	AttrCrossedOut
	numAttrs
)

// ColorMode identifies how a color slot (foreground or background) is set.
type ColorMode uint8

const (
	ColorUnset ColorMode = iota
	ColorIndexed
	ColorRGB
)

// Color is one foreground or background color slot.
type Color struct {
	Mode  ColorMode
	Index uint8 // valid when Mode == ColorIndexed, 0..255
	R, G, B uint8 // valid when Mode == ColorRGB
}

// Unset is the zero Color: ColorMode ColorUnset.
var Unset = Color{}

// Indexed builds an indexed color in [0,255].
func Indexed(i uint8) Color { return Color{Mode: ColorIndexed, Index: i} }

// RGB builds a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// mask bits, one per Attr plus one each for Hidden, Foreground and
// Background. A set mask bit means the field is explicit in this Style
// rather than inherited/default, per spec.md §3.
const (
	maskHidden = 1 << iota
	maskFG
	maskBG
	maskAttrBase // attribute mask bits start here, one per Attr
)

// Style packs the eight text attributes, the hidden flag, and the two color
// slots, plus a mask of which fields are explicitly set. Only one of
// {attribute off, attribute on} can be true for a bit; "off" is represented
// as mask-set + style-bit-clear, "default" as mask-clear (spec.md §3's style
// algebra: set / off / default).
type Style struct {
	attrs uint16 // bit i set => attribute Attr(i) is ON
	mask  uint16 // bit i set => attribute Attr(i) is explicit (on or off)

	hidden   bool
	fg, bg   Color
}

// Set returns a copy of s with attribute a turned on and marked explicit.
func (s Style) Set(a Attr) Style {
	s.attrs |= 1 << uint(a)
	s.mask |= maskAttrBase << uint(a)
	return s
}

// Off returns a copy of s with attribute a explicitly turned off.
func (s Style) Off(a Attr) Style {
	s.attrs &^= 1 << uint(a)
	s.mask |= maskAttrBase << uint(a)
	return s
}

// Default returns a copy of s with attribute a reverted to inherited/default
// (mask bit cleared).
func (s Style) Default(a Attr) Style {
	s.attrs &^= 1 << uint(a)
	s.mask &^= maskAttrBase << uint(a)
	return s
}

// Has reports whether attribute a is ON in s (regardless of whether it was
// explicitly set or inherited as on by Combine).
func (s Style) Has(a Attr) bool {
	return s.attrs&(1<<uint(a)) != 0
}

// IsExplicit reports whether attribute a is explicit (set or off) in s.
func (s Style) IsExplicit(a Attr) bool {
	return s.mask&(maskAttrBase<<uint(a)) != 0
}

// Hidden reports whether the hidden flag is set. Hidden does not affect
// ANSI attribute emission but suppresses the character's display width.
func (s Style) Hidden() bool { return s.hidden }

// WithHidden returns a copy of s with the hidden flag set explicitly.
func (s Style) WithHidden(hidden bool) Style {
	s.hidden = hidden
	s.mask |= maskHidden
	return s
}

// Foreground returns the explicit foreground color slot, or Unset.
func (s Style) Foreground() Color { return s.fg }

// WithForeground returns a copy of s with an explicit foreground color.
// Only one color mode may be set at a time per spec.md §3's invariant; c
// itself always satisfies that (Color has one Mode).
func (s Style) WithForeground(c Color) Style {
	s.fg = c
	s.mask |= maskFG
	return s
}

// Background returns the explicit background color slot, or Unset.
func (s Style) Background() Color { return s.bg }

// WithBackground returns a copy of s with an explicit background color.
func (s Style) WithBackground(c Color) Style {
	s.bg = c
	s.mask |= maskBG
	return s
}

// Equal reports whether two styles have identical (code, mask) pairs, per
// spec.md §3: "styles compare by equal (code,mask) pairs."
func (s Style) Equal(o Style) bool {
	return s.attrs == o.attrs && s.mask == o.mask &&
		s.hidden == o.hidden && s.mask&maskHidden == o.mask&maskHidden &&
		s.fg == o.fg && s.bg == o.bg
}

// Combine resolves two styles per-bit as described in spec.md §3:
// (a & ~b.mask) | (b.style & b.mask) — wherever b is explicit, b wins;
// otherwise a's bits pass through unchanged. Combine is used when a run of
// plain text inherits the builder's current style, and when an appended
// styled sequence's own style is layered on top of the surrounding style.
func Combine(a, b Style) Style {
	// Attribute mask bits sit maskAttrBase places above their attrs bits.
	bAttrMask := b.mask / maskAttrBase
	out := Style{
		attrs: (a.attrs &^ bAttrMask) | (b.attrs & bAttrMask),
		mask:  a.mask | b.mask,
	}
	if b.mask&maskHidden != 0 {
		out.hidden = b.hidden
	} else {
		out.hidden = a.hidden
	}
	if b.mask&maskFG != 0 {
		out.fg = b.fg
	} else {
		out.fg = a.fg
	}
	if b.mask&maskBG != 0 {
		out.bg = b.bg
	} else {
		out.bg = a.bg
	}
	return out
}
