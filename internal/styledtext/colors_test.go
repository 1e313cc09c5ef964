package styledtext

import "testing"

func TestNearestIndexIsIdempotentOnExactPaletteEntries(t *testing.T) {
	// Rounding an exact palette color is idempotent in RGB terms: it maps
	// back to a color with the identical RGB triple. It need not map back to
	// the same index, since the 16 standard colors and the color cube share
	// a few exact RGB values (e.g. black appears at both index 0 and 16).
	for i := 0; i < 256; i++ {
		c := PaletteRGB(uint8(i))
		got := PaletteRGB(NearestIndex(c.R, c.G, c.B))
		if got != c {
			t.Fatalf("palette entry %d (%+v): expected idempotent round-trip, got %+v", i, c, got)
		}
	}
}

func TestNearestIndexPicksClosePrimary(t *testing.T) {
	// Pure red should round to the bright-red cube corner or the standard
	// red entry, not to something unrelated like blue or a gray.
	idx := NearestIndex(255, 0, 0)
	c := PaletteRGB(idx)
	if c.R < c.G || c.R < c.B {
		t.Fatalf("expected the nearest color to a pure red to keep red dominant, got %+v", c)
	}
}
