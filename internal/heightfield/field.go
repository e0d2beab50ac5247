package heightfield

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Field is the flat working height field covering every tile, stored row
// major: index = y*W + x. Shared tile edges appear once.
type Field struct {
	W, H int
	Data []float32
}

// NewField allocates a zeroed W×H field.
func NewField(w, h int) *Field {
	return &Field{W: w, H: h, Data: make([]float32, w*h)}
}

// Index converts (x, y) to a flat index.
func (f *Field) Index(x, y int) int {
	return y*f.W + x
}

// At returns the height at (x, y).
func (f *Field) At(x, y int) float32 {
	return f.Data[f.Index(x, y)]
}

// Set stores the height at (x, y).
func (f *Field) Set(x, y int, v float32) {
	f.Data[f.Index(x, y)] = v
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	out := &Field{W: f.W, H: f.H, Data: make([]float32, len(f.Data))}
	copy(out.Data, f.Data)
	return out
}

// MinMax returns the lowest and highest height in the field.
func (f *Field) MinMax() (lo, hi float32) {
	if len(f.Data) == 0 {
		return 0, 0
	}
	lo, hi = f.Data[0], f.Data[0]
	for _, v := range f.Data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Vertices returns one world-space position per sample, x/z on the grid
// scaled by spacing and y the height.
func (f *Field) Vertices(spacing float32) []mgl32.Vec3 {
	positions := make([]mgl32.Vec3, 0, len(f.Data))
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			positions = append(positions, mgl32.Vec3{float32(x) * spacing, f.At(x, y), float32(y) * spacing})
		}
	}
	return positions
}
