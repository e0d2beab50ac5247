package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Gradient-noise sampler used for both the base relief and the detail
// octaves. The lattice comes from go-perlin; the octave index changes both
// the perlin seed and a sub-cell lattice shift so two octaves sharing a seed
// never line up.

const (
	// perlin harmonic weighting and frequency step
	alpha = 2.0
	beta  = 2.0

	// DefaultAmplitude keeps Sample(x, y)+0.5 roughly inside [0,1].
	DefaultAmplitude = 0.707

	// maxIterations bounds the perlin sum. Each iteration doubles the
	// lattice coordinate, and go-perlin truncates it to int32.
	maxIterations = 16
)

// Descriptor fixes everything a Sampler needs. It is a plain value so
// callers can keep it around and rebuild identical samplers.
type Descriptor struct {
	Seed        int64
	PhaseLength float64 // wavelength in samples
	Amplitude   float64
	Octave      int
}

// Sampler is a stateless view over one perlin lattice.
type Sampler struct {
	desc   Descriptor
	p      *perlin.Perlin
	shiftX float64
	shiftY float64
}

// New builds a sampler. Octave values below 1 are treated as 1.
func New(d Descriptor) *Sampler {
	octave := d.Octave
	if octave < 1 {
		octave = 1
	}
	seed := octaveSeed(d.Seed, octave)
	h := hash2(int64(octave), int64(octave)*31, seed)
	return &Sampler{
		desc:   d,
		p:      perlin.NewPerlin(alpha, beta, int32(min(octave, maxIterations)), seed),
		shiftX: float64(h&0xFFFF) / 0x10000,
		shiftY: float64((h>>16)&0xFFFF) / 0x10000,
	}
}

// Descriptor returns the parameters the sampler was built from.
func (s *Sampler) Descriptor() Descriptor { return s.desc }

// Sample returns the noise value at integer sample (x, y) scaled by the
// amplitude. A non-positive phase length yields a flat zero field.
func (s *Sampler) Sample(x, y int) float64 {
	if s.desc.PhaseLength <= 0 {
		return 0
	}
	fx := wrap(float64(x)/s.desc.PhaseLength + s.shiftX)
	fy := wrap(float64(y)/s.desc.PhaseLength + s.shiftY)
	return s.p.Noise2D(fx, fy) * s.desc.Amplitude
}

// wrap folds a lattice coordinate into [0, perlin.B). The lattice repeats
// every perlin.B units at every iteration, and go-perlin only interpolates
// correctly for coordinates above -perlin.N.
func wrap(v float64) float64 {
	v = math.Mod(v, perlin.B)
	if v < 0 {
		v += perlin.B
	}
	return v
}

// Unit maps Sample into the approximately [0,1] band used as a height scalar.
func (s *Sampler) Unit(x, y int) float64 {
	return s.Sample(x, y) + 0.5
}

// octaveSeed derives a per-octave perlin seed; octave 1 keeps the caller seed.
func octaveSeed(seed int64, octave int) int64 {
	if octave <= 1 {
		return seed
	}
	return int64(hash2(int64(octave), 0, seed) & math.MaxInt64)
}

func hash2(x int64, z int64, seed int64) uint64 {
	// SplitMix64 style integer hash, stable across runs for same inputs
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}
