package blend

import (
	"math"

	"tileterrain/internal/heightfield"
)

// SeamPosition maps internal control-grid line i (1..gridLen-2) to a row or
// column of a field whose extent along that axis is extent. Halves round to
// even.
func SeamPosition(i, gridLen, extent int) int {
	frac := float64(i) / float64(gridLen-1)
	return int(math.RoundToEven(frac * float64(extent)))
}

// clampOffset shrinks offset so [pos-offset, pos+offset] stays in [0, extent).
func clampOffset(offset, pos, extent int) int {
	if pos-offset < 0 {
		offset = pos
	}
	if pos+offset > extent-1 {
		offset = extent - 1 - pos
	}
	return offset
}

// Seams blends a 2*offset+1 cross-section centred on every internal tile
// boundary. tilesX and tilesY are the zero-based maximum tile coordinates.
// Rows are processed before columns.
func Seams(f *heightfield.Field, tilesX, tilesY, offset int) {
	if offset < 1 {
		return
	}
	gridX, gridY := tilesX+2, tilesY+2
	buf := make([]float32, 2*offset+1)

	for gy := 1; gy < gridY-1; gy++ {
		row := SeamPosition(gy, gridY, f.H)
		o := clampOffset(offset, row, f.H)
		if 2*o+1 < MinSegment {
			continue
		}
		pts := buf[:2*o+1]
		for x := 0; x < f.W; x++ {
			for i := range pts {
				pts[i] = f.At(x, row-o+i)
			}
			Segment(pts)
			for i := range pts {
				f.Set(x, row-o+i, pts[i])
			}
		}
	}

	for gx := 1; gx < gridX-1; gx++ {
		col := SeamPosition(gx, gridX, f.W)
		o := clampOffset(offset, col, f.W)
		if 2*o+1 < MinSegment {
			continue
		}
		pts := buf[:2*o+1]
		for y := 0; y < f.H; y++ {
			for i := range pts {
				pts[i] = f.At(col-o+i, y)
			}
			Segment(pts)
			for i := range pts {
				f.Set(col-o+i, y, pts[i])
			}
		}
	}
}
