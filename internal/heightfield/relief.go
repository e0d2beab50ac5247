package heightfield

import (
	"math"

	"tileterrain/internal/noise"
	"tileterrain/internal/workers"
)

// SingleTilePhaseLength is the wavelength used when there is no control grid.
const SingleTilePhaseLength = 150

// BasePhaseLength returns the base relief wavelength for a field: the
// shorter side divided by the rugged factor.
func BasePhaseLength(w, h int, rugged float32) float64 {
	return float64(min(w, h)) / float64(rugged)
}

// BaseRelief overwrites f with noise scaled by the bilinearly interpolated
// control grid: (noise+0.5) * grid(x, y).
func BaseRelief(f *Field, g *ControlGrid, phaseLength float64, seed int64) *Field {
	n := noise.New(noise.Descriptor{
		Seed:        seed,
		PhaseLength: phaseLength,
		Amplitude:   noise.DefaultAmplitude,
		Octave:      1,
	})
	workers.Rows(f.H, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < f.W; x++ {
				scalar := float64(g.Bilinear(x, y, f.W, f.H))
				f.Data[f.Index(x, y)] = float32(n.Unit(x, y) * scalar)
			}
		}
	})
	return f
}

// SingleTileRelief overwrites f with pure noise scaled by maxHeight, used
// when the tile array is a single row or column.
func SingleTileRelief(f *Field, maxHeight float32, seed int64) *Field {
	n := noise.New(noise.Descriptor{
		Seed:        seed,
		PhaseLength: SingleTilePhaseLength,
		Amplitude:   noise.DefaultAmplitude,
		Octave:      1,
	})
	workers.Rows(f.H, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < f.W; x++ {
				f.Data[f.Index(x, y)] = float32(n.Unit(x, y) * float64(maxHeight))
			}
		}
	})
	return f
}

// OctaveParams controls LayerOctaves.
type OctaveParams struct {
	Octaves     int
	NoiseHeight float32
	PhaseLength float32
	Persistence float32
	Seed        int64
}

// LayerOctaves adds octaves 2..Octaves on top of f, octave k with amplitude
// NoiseHeight * Persistence^k. Octave 1 is the base relief and is skipped.
func LayerOctaves(f *Field, p OctaveParams) *Field {
	if p.Octaves < 2 {
		return f
	}
	layers := make([]*noise.Sampler, 0, p.Octaves-1)
	for octave := 2; octave <= p.Octaves; octave++ {
		layers = append(layers, noise.New(noise.Descriptor{
			Seed:        p.Seed,
			PhaseLength: float64(p.PhaseLength),
			Amplitude:   float64(p.NoiseHeight) * math.Pow(float64(p.Persistence), float64(octave)),
			Octave:      octave,
		}))
	}
	workers.Rows(f.H, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < f.W; x++ {
				i := f.Index(x, y)
				v := f.Data[i]
				for _, n := range layers {
					v += float32(n.Sample(x, y))
				}
				f.Data[i] = v
			}
		}
	})
	return f
}

// Offset lowers every sample by delta.
func Offset(f *Field, delta float32) *Field {
	for i := range f.Data {
		f.Data[i] -= delta
	}
	return f
}
