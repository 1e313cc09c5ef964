package styledtext

import "strconv"

// FromANSI parses a byte stream containing SGR escape sequences into a
// styled Text, the inverse of ToANSI. Unknown or malformed escape sequences
// are passed through as literal text rather than rejected, per spec.md
// §4.1's "malformed escape sequence (parse failure policy)" edge case: a
// best-effort terminal emulator does not abort on input it cannot parse.
func FromANSI(data []byte) Text {
	b := NewBuilder()
	runes := []rune(string(data))
	i := 0
	for i < len(runes) {
		r := runes[i]
		if r != 0x1b {
			b.Append(string(r))
			i++
			continue
		}
		if i+1 >= len(runes) || runes[i+1] != '[' {
			// Lone ESC or an unsupported control sequence introducer: pass
			// through literally.
			b.Append(string(r))
			i++
			continue
		}
		j := i + 2
		for j < len(runes) && !isSGRFinal(runes[j]) {
			j++
		}
		if j >= len(runes) {
			// Truncated escape sequence with no terminator at all: pass the
			// remainder through unparsed.
			b.Append(string(runes[i:]))
			i = len(runes)
			continue
		}
		if runes[j] != 'm' {
			// Not a recognized SGR terminator (e.g. a cursor-movement
			// sequence): pass the whole introducer through unparsed.
			b.Append(string(runes[i : j+1]))
			i = j + 1
			continue
		}
		params := parseParams(string(runes[i+2 : j]))
		applySGR(b, params)
		i = j + 1
	}
	return b.Build()
}

func isSGRFinal(r rune) bool {
	return r >= 0x40 && r <= 0x7e
}

func parseParams(s string) []int {
	if s == "" {
		return []int{0}
	}
	var out []int
	start := 0
	for k := 0; k <= len(s); k++ {
		if k == len(s) || s[k] == ';' {
			tok := s[start:k]
			if tok == "" {
				out = append(out, 0)
			} else if v, err := strconv.Atoi(tok); err == nil {
				out = append(out, v)
			} else {
				out = append(out, -1)
			}
			start = k + 1
		}
	}
	return out
}

func applySGR(b *Builder, params []int) {
	s := b.Style()
	i := 0
	for i < len(params) {
		p := params[i]
		switch {
		case p == 0:
			s = Style{}
		case p == 1:
			s = s.Set(AttrBold)
		case p == 2:
			s = s.Set(AttrFaint)
		case p == 22:
			s = s.Off(AttrBold).Off(AttrFaint)
		case p == 3:
			s = s.Set(AttrItalic)
		case p == 23:
			s = s.Off(AttrItalic)
		case p == 4:
			s = s.Set(AttrUnderline)
		case p == 24:
			s = s.Off(AttrUnderline)
		case p == 5:
			s = s.Set(AttrBlink)
		case p == 25:
			s = s.Off(AttrBlink)
		case p == 7:
			s = s.Set(AttrInverse)
		case p == 27:
			s = s.Off(AttrInverse)
		case p == 8:
			s = s.Set(AttrConceal)
		case p == 28:
			s = s.Off(AttrConceal)
		case p == 9:
			s = s.Set(AttrCrossedOut)
		case p == 29:
			s = s.Off(AttrCrossedOut)
		case p == 39:
			s = s.WithForeground(Unset)
		case p == 49:
			s = s.WithBackground(Unset)
		case p >= 30 && p <= 37:
			s = s.WithForeground(Indexed(uint8(p - 30)))
		case p >= 40 && p <= 47:
			s = s.WithBackground(Indexed(uint8(p - 40)))
		case p >= 90 && p <= 97:
			s = s.WithForeground(Indexed(uint8(p-90) + 8))
		case p >= 100 && p <= 107:
			s = s.WithBackground(Indexed(uint8(p-100) + 8))
		case p == 38 || p == 48:
			consumed, color, ok := parseExtendedColor(params[i+1:])
			if ok {
				if p == 38 {
					s = s.WithForeground(color)
				} else {
					s = s.WithBackground(color)
				}
			}
			i += consumed
		default:
			// Unknown SGR code: ignore it, matching the parser's best-effort
			// policy rather than aborting the whole sequence.
		}
		i++
	}
	b.SetStyle(s)
}

// parseExtendedColor parses the parameters following a 38/48 introducer,
// supporting "5;n" (indexed) and "2;r;g;b" (direct RGB) forms. It returns
// how many of rest were consumed (not including the 38/48 itself).
func parseExtendedColor(rest []int) (consumed int, color Color, ok bool) {
	if len(rest) == 0 {
		return 0, Color{}, false
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return 1, Color{}, false
		}
		return 2, Indexed(uint8(rest[1])), true
	case 2:
		if len(rest) < 4 {
			return len(rest), Color{}, false
		}
		return 4, RGB(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), true
	default:
		return 1, Color{}, false
	}
}
