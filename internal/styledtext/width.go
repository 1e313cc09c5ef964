package styledtext

import (
	"unicode"

	"golang.org/x/text/width"
)

// displayWidth returns the number of terminal columns r occupies: 0 if s
// hides it, 0 for combining marks, 2 for East-Asian wide/fullwidth code
// points, 1 otherwise. Grounded on golang.org/x/text/width (already an
// indirect dependency of the teacher via charmbracelet/x/ansi) rather than a
// hand-rolled width table.
func displayWidth(r rune, s Style) int {
	if s.Hidden() {
		return 0
	}
	if r == '\n' || r == '\r' {
		return 0
	}
	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) {
		return 0
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
