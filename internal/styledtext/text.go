package styledtext

import "fmt"

// Text is an immutable, finite sequence of Unicode code points, each paired
// with a Style. Subsequences produced by Substring share the underlying
// arrays (zero-copy) and expose only their own offset/length, per spec.md
// §3.
type Text struct {
	runes  []rune
	styles []Style
	start  int
	length int
}

// Len returns the number of code points in t.
func (t Text) Len() int { return t.length }

// RuneAt returns the code point at i (0 <= i < Len()).
func (t Text) RuneAt(i int) rune {
	t.checkIndex(i)
	return t.runes[t.start+i]
}

// StyleAt returns the style of the code point at i.
func (t Text) StyleAt(i int) Style {
	t.checkIndex(i)
	return t.styles[t.start+i]
}

func (t Text) checkIndex(i int) {
	if i < 0 || i >= t.length {
		panic(fmt.Sprintf("styledtext: index %d out of range [0,%d)", i, t.length))
	}
}

// Substring returns the zero-copy subsequence t[start:end). It panics if the
// bounds are invalid, per spec.md §4.1's "invalid subsequence bounds
// (indexing failure)".
func (t Text) Substring(start, end int) Text {
	if start < 0 || end > t.length || start > end {
		panic(fmt.Sprintf("styledtext: invalid substring bounds [%d,%d) of length %d", start, end, t.length))
	}
	return Text{
		runes:  t.runes,
		styles: t.styles,
		start:  t.start + start,
		length: end - start,
	}
}

// String returns the plain-text content of t, discarding style.
func (t Text) String() string {
	return string(t.runes[t.start : t.start+t.length])
}

// Plain builds an unstyled Text from a Go string.
func Plain(s string) Text {
	runes := []rune(s)
	styles := make([]Style, len(runes))
	return Text{runes: runes, styles: styles, length: len(runes)}
}

// ColumnLength returns the total display width of t: the sum of each
// code point's display width (0 for hidden characters, 2 for East-Asian
// wide/fullwidth, 0 for combining marks, 1 otherwise), per spec.md §4.1.
func (t Text) ColumnLength() int {
	total := 0
	for i := 0; i < t.length; i++ {
		total += displayWidth(t.runes[t.start+i], t.styles[t.start+i])
	}
	return total
}

// ColumnSubsequence returns the subsequence of t spanning display columns
// [startCol, stopCol), clipped at the first newline and never splitting a
// wide code point across the boundary, per spec.md §4.1.
func (t Text) ColumnSubsequence(startCol, stopCol int) Text {
	col := 0
	begin, end := -1, t.length
	for i := 0; i < t.length; i++ {
		r := t.runes[t.start+i]
		if r == '\n' {
			end = i
			break
		}
		w := displayWidth(r, t.styles[t.start+i])
		if begin == -1 && col >= startCol {
			begin = i
		}
		col += w
		if col >= stopCol {
			end = i + 1
			break
		}
	}
	if begin == -1 {
		begin = t.length
		if end < begin {
			begin = end
		}
	}
	if end > t.length {
		end = t.length
	}
	if begin > end {
		begin = end
	}
	return t.Substring(begin, end)
}

// WrapSegment is one line produced by ColumnSplit.
type WrapSegment struct {
	Text        Text
	HardNewline bool // true if this segment ended on an explicit '\n'
}

// ColumnSplit breaks t into segments no wider than cols display columns,
// returning an eagerly materialized, restartable list (spec.md §9: "not a
// lazy iterator"). When includeNewlines is true, '\n' characters force a
// break and are consumed rather than counted. When delayWrap is true, a
// break that lands exactly on a column boundary is deferred to the next
// non-zero-width character, avoiding a spurious empty trailing segment.
func (t Text) ColumnSplit(cols int, includeNewlines, delayWrap bool) []WrapSegment {
	if cols <= 0 {
		return nil
	}
	var segs []WrapSegment
	lineStart := 0
	col := 0
	for i := 0; i < t.length; i++ {
		r := t.runes[t.start+i]
		if includeNewlines && r == '\n' {
			segs = append(segs, WrapSegment{Text: t.Substring(lineStart, i), HardNewline: true})
			lineStart = i + 1
			col = 0
			continue
		}
		w := displayWidth(r, t.styles[t.start+i])
		if col+w > cols {
			if delayWrap && w == 0 {
				continue
			}
			segs = append(segs, WrapSegment{Text: t.Substring(lineStart, i)})
			lineStart = i
			col = 0
		}
		col += w
	}
	if lineStart < t.length || len(segs) == 0 {
		segs = append(segs, WrapSegment{Text: t.Substring(lineStart, t.length)})
	}
	return segs
}

// StyleMatcher finds matches in t's plain text; it is satisfied by
// *regexp.Regexp.
type StyleMatcher interface {
	FindAllStringIndex(s string, n int) [][]int
}

// StyleMatches returns a new Text identical to t except that every run
// matched by re has style applied on top of its existing style via Combine.
func (t Text) StyleMatches(re StyleMatcher, style Style) Text {
	s := t.String()
	matches := re.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return t
	}

	// Map byte offsets in s back to rune indices, since regexp works in bytes.
	byteToRune := make(map[int]int, len(s)+1)
	ri := 0
	for bi := range s {
		byteToRune[bi] = ri
		ri++
	}
	byteToRune[len(s)] = ri

	runes := make([]rune, t.length)
	styles := make([]Style, t.length)
	copy(runes, t.runes[t.start:t.start+t.length])
	copy(styles, t.styles[t.start:t.start+t.length])

	for _, m := range matches {
		start, end := byteToRune[m[0]], byteToRune[m[1]]
		for i := start; i < end; i++ {
			styles[i] = Combine(styles[i], style)
		}
	}
	return Text{runes: runes, styles: styles, length: t.length}
}
