package styledtext

import (
	"fmt"
	"strconv"
	"strings"
)

// ForceMode overrides the color form to_ansi would otherwise pick from the
// terminal's capability, per spec.md §4.1.
type ForceMode int

const (
	ForceNone ForceMode = iota
	ForceIndexed256
	ForceTrueColor
)

// Capabilities describes the terminal to_ansi renders for.
type Capabilities struct {
	// Colors is the number of colors the terminal advertises (e.g. 8, 256,
	// 1<<24 for true color).
	Colors int
	// Force overrides automatic color-form selection.
	Force ForceMode
	// AltCharsetIn/AltCharsetOut are the capability strings (e.g. smacs/rmacs
	// from terminfo) used to enter/exit the alternate (box-drawing) charset.
	// Alt-charset substitution is skipped entirely when either is empty.
	AltCharsetIn, AltCharsetOut string
	// DisableAltCharset suppresses alt-charset substitution even when
	// AltCharsetIn/Out are set, per the disable-alternate-charset config key.
	DisableAltCharset bool
}

// DefaultCapabilities returns the 256-color capability set most terminal
// emulators advertise, with alt-charset substitution disabled (callers that
// know their terminfo smacs/rmacs strings should set AltCharsetIn/Out
// themselves).
func DefaultCapabilities() Capabilities {
	return Capabilities{Colors: 256}
}

// boxToAlt maps box-drawing code points to their alternate-charset letters,
// grounded on the teacher's internal/terminal/charset.go VT100LineDrawingTable.
var boxToAlt = map[rune]byte{
	'┘': 'j',
	'┐': 'k',
	'┌': 'l',
	'└': 'm',
	'┼': 'n',
	'─': 'q',
	'├': 't',
	'┤': 'u',
	'┴': 'v',
	'┬': 'w',
	'│': 'x',
}

// ToANSI renders t as ANSI bytes for the given terminal capabilities. SGR
// groups are emitted only when the style changes from the previously
// emitted one, in the fixed order from spec.md §4.1: bold/faint delta,
// italic, underline, blink, inverse, conceal, crossed-out, foreground
// change, background change — plus the legacy re-emit of bold whenever the
// foreground changes while bold is (and remains) active.
func ToANSI(t Text, caps Capabilities) []byte {
	var out strings.Builder
	var last Style
	first := true
	inAlt := false

	useAlt := caps.AltCharsetIn != "" && caps.AltCharsetOut != "" && !caps.DisableAltCharset

	for i := 0; i < t.Len(); i++ {
		r := t.RuneAt(i)
		s := t.StyleAt(i)

		if first || !s.Equal(last) {
			emitSGR(&out, last, s, first, caps)
		}

		if useAlt {
			if alt, ok := boxToAlt[r]; ok {
				if !inAlt {
					out.WriteString(caps.AltCharsetIn)
					inAlt = true
				}
				out.WriteByte(alt)
			} else {
				if inAlt {
					out.WriteString(caps.AltCharsetOut)
					inAlt = false
				}
				out.WriteRune(r)
			}
		} else {
			out.WriteRune(r)
		}

		last = s
		first = false
	}

	if useAlt && inAlt {
		out.WriteString(caps.AltCharsetOut)
	}
	if !first && !last.Equal(Style{}) {
		out.WriteString("\x1b[0m")
	}
	return []byte(out.String())
}

func emitSGR(out *strings.Builder, last, cur Style, first bool, caps Capabilities) {
	var params []string

	boldDelta := first && cur.Has(AttrBold) ||
		!first && cur.Has(AttrBold) != last.Has(AttrBold)
	faintDelta := first && cur.Has(AttrFaint) ||
		!first && cur.Has(AttrFaint) != last.Has(AttrFaint)
	if boldDelta || faintDelta {
		switch {
		case cur.Has(AttrBold):
			params = append(params, "1")
		case cur.Has(AttrFaint):
			params = append(params, "2")
		default:
			params = append(params, "22")
		}
	}

	addBool := func(code int, offCode int, attr Attr) {
		was := !first && last.Has(attr)
		is := cur.Has(attr)
		if was == is {
			return
		}
		if is {
			params = append(params, strconv.Itoa(code))
		} else {
			params = append(params, strconv.Itoa(offCode))
		}
	}
	addBool(3, 23, AttrItalic)
	addBool(4, 24, AttrUnderline)
	addBool(5, 25, AttrBlink)
	addBool(7, 27, AttrInverse)
	addBool(8, 28, AttrConceal)
	addBool(9, 29, AttrCrossedOut)

	fgChanged := first && cur.Foreground() != Unset || !first && cur.Foreground() != last.Foreground()
	if fgChanged {
		params = append(params, colorParams(cur.Foreground(), true, caps)...)
		if !boldDelta && cur.Has(AttrBold) {
			params = append(params, "1")
		}
	}
	if first && cur.Background() != Unset || !first && cur.Background() != last.Background() {
		params = append(params, colorParams(cur.Background(), false, caps)...)
	}

	if len(params) == 0 {
		return
	}
	out.WriteString("\x1b[")
	out.WriteString(strings.Join(params, ";"))
	out.WriteByte('m')
}

// colorParams resolves the SGR parameter(s) for one color slot according to
// spec.md §4.1's negotiation rules.
func colorParams(c Color, fg bool, caps Capabilities) []string {
	if c.Mode == ColorUnset {
		if fg {
			return []string{"39"}
		}
		return []string{"49"}
	}

	if c.Mode == ColorRGB {
		if caps.Colors >= 1<<24 {
			if fg {
				return []string{"38", "2", itoa(c.R), itoa(c.G), itoa(c.B)}
			}
			return []string{"48", "2", itoa(c.R), itoa(c.G), itoa(c.B)}
		}
		idx := NearestIndex(c.R, c.G, c.B)
		return indexedParams(idx, fg, caps)
	}

	return indexedParams(c.Index, fg, caps)
}

func indexedParams(idx uint8, fg bool, caps Capabilities) []string {
	if caps.Force == ForceTrueColor && caps.Colors >= 1<<24 {
		rgb := PaletteRGB(idx)
		if fg {
			return []string{"38", "2", itoa(rgb.R), itoa(rgb.G), itoa(rgb.B)}
		}
		return []string{"48", "2", itoa(rgb.R), itoa(rgb.G), itoa(rgb.B)}
	}
	if caps.Force == ForceIndexed256 || idx >= 16 {
		if fg {
			return []string{"38", "5", itoa(idx)}
		}
		return []string{"48", "5", itoa(idx)}
	}
	if idx >= 8 {
		n := int(idx) - 8
		if fg {
			return []string{strconv.Itoa(90 + n)}
		}
		return []string{strconv.Itoa(100 + n)}
	}
	if fg {
		return []string{strconv.Itoa(30 + int(idx))}
	}
	return []string{strconv.Itoa(40 + int(idx))}
}

func itoa(v uint8) string { return fmt.Sprintf("%d", v) }
