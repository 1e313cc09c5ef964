package tailtip

import (
	"strings"

	"github.com/stlalpha/linecraft/internal/styledtext"
)

// layoutDescription fits a main description's lines within a status-bar
// height H. H == 0 (the feature disabled) yields an empty Text. A
// description already no taller than H is returned verbatim; otherwise
// lines are tab-aligned to the widest entry and packed by column: the first
// H lines become rows 0..H-1, and each further line is tab-appended to the
// row it cycles onto (spec.md's "start column 1 by tab-appending to
// existing rows"). Every row that packing leaves holding more than one
// extra column is cut to its first width-3 characters and followed by an
// inverse-styled "..." marker; rows with at most one extra column are kept
// whole.
func layoutDescription(lines []string, h int) styledtext.Text {
	if h <= 0 || len(lines) == 0 {
		return styledtext.Plain("")
	}
	if len(lines) <= h {
		return joinLines(lines)
	}

	width := widestOf(lines)
	padded := make([]string, len(lines))
	for i, l := range lines {
		padded[i] = padRight(l, width)
	}

	combined := make([]string, h)
	copy(combined, padded[:h])
	extraCols := make([]int, h)
	for i, extra := range padded[h:] {
		r := i % h
		combined[r] = combined[r] + "\t" + strings.TrimSpace(extra)
		extraCols[r]++
	}

	b := styledtext.NewBuilder()
	for i, l := range combined {
		if i > 0 {
			b.Append("\n")
		}
		if extraCols[i] > 1 {
			b.Append(truncateForMarker(l, width))
			b.Styled(styledtext.Style{}.Set(styledtext.AttrInverse), func(bb *styledtext.Builder) {
				bb.Append("...")
			})
		} else {
			b.Append(l)
		}
	}
	return b.Build()
}

// packOptionMatches lays out the option-description pattern-matching
// result: a single match prints its header then its description lines
// indented one tab; up to H matches print one per row tab-aligned; up to 2H
// pack two columns, the first padded to its widest entry (neither column is
// truncated); beyond that, matches tile by row cyclically.
func packOptionMatches(matches []OptionDescription, h int) styledtext.Text {
	if h <= 0 || len(matches) == 0 {
		return styledtext.Plain("")
	}
	if len(matches) == 1 {
		b := styledtext.NewBuilder()
		b.Append(matches[0].header())
		for _, l := range matches[0].Lines {
			b.Append("\n\t" + l)
		}
		return b.Build()
	}

	headers := make([]string, len(matches))
	for i, m := range matches {
		headers[i] = m.header()
	}
	switch {
	case len(headers) <= h:
		return tabAlignRows(headers)
	case len(headers) <= 2*h:
		return packTwoColumns(headers, h)
	default:
		return tileByRowCyclic(headers, h)
	}
}

func tabAlignRows(lines []string) styledtext.Text {
	width := widestOf(lines)
	b := styledtext.NewBuilder()
	for i, l := range lines {
		if i > 0 {
			b.Append("\n")
		}
		b.Append(padRight(l, width))
	}
	return b.Build()
}

func packTwoColumns(headers []string, h int) styledtext.Text {
	col0, col1 := headers[:h], headers[h:]
	width := widestOf(col0)

	b := styledtext.NewBuilder()
	for i, l := range col0 {
		if i > 0 {
			b.Append("\n")
		}
		line := padRight(l, width)
		if i < len(col1) {
			line += "\t" + col1[i]
		}
		b.Append(line)
	}
	return b.Build()
}

func tileByRowCyclic(headers []string, h int) styledtext.Text {
	rows := make([][]string, h)
	for i, header := range headers {
		r := i % h
		rows[r] = append(rows[r], header)
	}

	maxCols := 0
	for _, r := range rows {
		if len(r) > maxCols {
			maxCols = len(r)
		}
	}
	colWidths := make([]int, maxCols)
	for _, r := range rows {
		for c, cell := range r {
			if len(cell) > colWidths[c] {
				colWidths[c] = len(cell)
			}
		}
	}

	b := styledtext.NewBuilder()
	for i, r := range rows {
		if i > 0 {
			b.Append("\n")
		}
		cells := make([]string, len(r))
		for c, cell := range r {
			cells[c] = padRight(cell, colWidths[c])
		}
		b.Append(strings.Join(cells, "\t"))
	}
	return b.Build()
}

func joinLines(lines []string) styledtext.Text {
	b := styledtext.NewBuilder()
	for i, l := range lines {
		if i > 0 {
			b.Append("\n")
		}
		b.Append(l)
	}
	return b.Build()
}

func widestOf(lines []string) int {
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	return width
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncateForMarker(s string, width int) string {
	maxLen := width - 3
	if maxLen < 0 {
		maxLen = 0
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
