package heightfield

import (
	"math"
	"math/rand"
)

// Unresolved marks control-grid cells the fill has not reached yet.
const Unresolved float32 = -1

// peakFalloff is the fraction of the highest neighbour a filled cell keeps.
const peakFalloff = 0.70

// ControlGrid holds one coarse elevation per tile corner plus a one-cell
// halo pinned to the boundary height: (tilesX+2) × (tilesY+2) cells.
type ControlGrid struct {
	W, H  int
	Cells []float32
}

// NewControlGrid allocates a grid for the given zero-based tile-array
// dimensions with every cell unresolved.
func NewControlGrid(tilesX, tilesY int) *ControlGrid {
	g := &ControlGrid{W: tilesX + 2, H: tilesY + 2}
	g.Cells = make([]float32, g.W*g.H)
	for i := range g.Cells {
		g.Cells[i] = Unresolved
	}
	return g
}

// At returns the cell at (x, y).
func (g *ControlGrid) At(x, y int) float32 { return g.Cells[y*g.W+x] }

func (g *ControlGrid) set(x, y int, v float32) { g.Cells[y*g.W+x] = v }

// Resolved reports whether every cell holds a value.
func (g *ControlGrid) Resolved() bool {
	for _, v := range g.Cells {
		if v == Unresolved {
			return false
		}
	}
	return true
}

// Degenerate reports whether the grid covers a single row or column of
// tiles, in which case the fill stops after the halo.
func (g *ControlGrid) Degenerate() bool {
	return g.W <= 2 || g.H <= 2
}

type cell struct{ x, y int }

// FillControlGrid builds the control grid: the halo is set to boundary, a
// seeded set of peaks in the central region gets heights in
// [maxHeight/2, maxHeight), and the remaining interior is filled breadth
// first outward from the peaks. A single-row or single-column tile array
// returns after the halo.
func FillControlGrid(tilesX, tilesY int, boundary, maxHeight, fraction float32, seed int64) *ControlGrid {
	g := NewControlGrid(tilesX, tilesY)
	for x := 0; x < g.W; x++ {
		g.set(x, 0, boundary)
		g.set(x, g.H-1, boundary)
	}
	for y := 0; y < g.H; y++ {
		g.set(0, y, boundary)
		g.set(g.W-1, y, boundary)
	}
	if tilesX == 0 || tilesY == 0 {
		return g
	}

	rng := rand.New(rand.NewSource(seed))
	loX, hiX := pickWindow(g.W)
	loY, hiY := pickWindow(g.H)
	peaks := int(float32((hiX-loX)*(hiY-loY)) * fraction)
	if peaks < 1 {
		peaks = 1
	}

	queue := make([]cell, 0, peaks+4*g.W*g.H)
	for i := 0; i < peaks; i++ {
		queue = append(queue, cell{loX + rng.Intn(hiX-loX), loY + rng.Intn(hiY-loY)})
	}

	lowPeak := float64(maxHeight) / 2
	for head := 0; head < len(queue); head++ {
		c := queue[head]
		if c.x < 1 || c.x >= g.W-1 || c.y < 1 || c.y >= g.H-1 || g.At(c.x, c.y) != Unresolved {
			continue
		}
		if peaks > 0 {
			g.set(c.x, c.y, float32(lowPeak+rng.Float64()*(float64(maxHeight)-lowPeak)))
			peaks--
		} else {
			g.set(c.x, c.y, relax(
				g.At(c.x-1, c.y), g.At(c.x+1, c.y),
				g.At(c.x, c.y-1), g.At(c.x, c.y+1),
			))
		}
		queue = append(queue,
			cell{c.x - 1, c.y}, cell{c.x + 1, c.y},
			cell{c.x, c.y - 1}, cell{c.x, c.y + 1},
		)
	}
	return g
}

// pickWindow returns the [lo, hi) peak window along an axis of n cells:
// the central half, clipped to the open interior.
func pickWindow(n int) (lo, hi int) {
	lo = n / 4
	if lo < 1 {
		lo = 1
	}
	hi = 3 * n / 4
	if hi > n-1 {
		hi = n - 1
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// relax averages the four axis neighbours, floored at peakFalloff of the
// highest one.
func relax(a, b, c, d float32) float32 {
	hi := float32(math.Max(math.Max(float64(a), float64(b)), math.Max(float64(c), float64(d))))
	h := (a + b + c + d) / 4
	if h < hi*peakFalloff {
		h = hi * peakFalloff
	}
	return h
}

// Bilinear samples the grid at full-field position (x, y) of a w×h field.
// The field maps onto [0, W-1]×[0, H-1] of the grid using x/(w+1).
func (g *ControlGrid) Bilinear(x, y, w, h int) float32 {
	fx := float64(x) / float64(w+1) * float64(g.W-1)
	fy := float64(y) / float64(h+1) * float64(g.H-1)

	x0, x1 := int(math.Floor(fx)), int(math.Ceil(fx))
	y0, y1 := int(math.Floor(fy)), int(math.Ceil(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	v00 := float64(g.At(x0, y0))
	v10 := float64(g.At(x1, y0))
	v01 := float64(g.At(x0, y1))
	v11 := float64(g.At(x1, y1))

	top := v00 + (v10-v00)*tx
	bottom := v01 + (v11-v01)*tx
	return float32(top + (bottom-top)*ty)
}
