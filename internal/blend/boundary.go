package blend

import (
	"tileterrain/internal/heightfield"
)

// SeaFloorWidth is the number of samples leveled in from each outer edge.
const SeaFloorWidth = 30

// Boundary levels the four outer edges of f toward height over width
// samples. The two outermost samples of each run are pinned to height so the
// curve leaves the edge flat. Top and bottom rows go first, then left and
// right columns, so corners end up with the column pass result. width is
// clamped to the field size.
func Boundary(f *heightfield.Field, height float32, width int) {
	if width > f.W {
		width = f.W
	}
	if width > f.H {
		width = f.H
	}
	if width < MinSegment {
		return
	}
	pts := make([]float32, width)

	level := func(get func(i int) float32, set func(i int, v float32)) {
		pts[0], pts[1] = height, height
		for i := 2; i < width; i++ {
			pts[i] = get(i)
		}
		Segment(pts)
		for i := 0; i < width; i++ {
			set(i, pts[i])
		}
	}

	for x := 0; x < f.W; x++ {
		level(
			func(i int) float32 { return f.At(x, i) },
			func(i int, v float32) { f.Set(x, i, v) },
		)
		level(
			func(i int) float32 { return f.At(x, f.H-1-i) },
			func(i int, v float32) { f.Set(x, f.H-1-i, v) },
		)
	}

	for y := 0; y < f.H; y++ {
		level(
			func(i int) float32 { return f.At(i, y) },
			func(i int, v float32) { f.Set(i, y, v) },
		)
		level(
			func(i int) float32 { return f.At(f.W-1-i, y) },
			func(i int, v float32) { f.Set(f.W-1-i, y, v) },
		)
	}
}
