package styledtext

// palette256 is the standard 256-entry xterm-compatible RGB palette: 16
// named colors, a 6x6x6 color cube, and a 24-step grayscale ramp. Grounded
// on the role internal/ansi.go's SGR 38;5;n handling plays in the teacher,
// generalized into the nearest-color table spec.md §4.1 requires for
// "RGB requested, colors < 2^24" and "indexed requested" emission.
var palette256 [256]Color

func init() {
	standard := [16][3]uint8{
		{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
		{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
		{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	for i, c := range standard {
		palette256[i] = RGB(c[0], c[1], c[2])
	}

	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	idx := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				palette256[idx] = RGB(steps[r], steps[g], steps[b])
				idx++
			}
		}
	}

	for i := 0; i < 24; i++ {
		v := uint8(8 + i*10)
		palette256[232+i] = RGB(v, v, v)
	}
}

// PaletteRGB returns the RGB color stored at palette index idx.
func PaletteRGB(idx uint8) Color {
	return palette256[idx]
}

// NearestIndex returns the palette index whose RGB value minimizes the
// weighted squared distance 2*Δr² + 4*Δg² + 3*Δb² to (r,g,b), per spec.md
// §4.1's color-rounding rule. Ties go to the lowest index, so an exact
// palette entry maps to the first index holding the same RGB triple (e.g.
// index 16, black, maps to 0). Rounding is idempotent after the first
// application: the index returned is always the first with its RGB triple.
func NearestIndex(r, g, b uint8) uint8 {
	best := 0
	bestDist := -1
	for i, c := range palette256 {
		dr := int(r) - int(c.R)
		dg := int(g) - int(c.G)
		db := int(b) - int(c.B)
		dist := 2*dr*dr + 4*dg*dg + 3*db*db
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return uint8(best)
}
