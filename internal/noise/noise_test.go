package noise

import (
	"math"
	"math/rand"
	"testing"
)

// TestHash2Deterministic verifies hash2 produces identical results for same inputs
func TestHash2Deterministic(t *testing.T) {
	first := hash2(10, 20, 42)
	for i := 0; i < 100; i++ {
		if h := hash2(10, 20, 42); h != first {
			t.Fatalf("hash2 not deterministic: first=%d, got %d", first, h)
		}
	}
	if hash2(1, 2, 42) == hash2(2, 1, 42) {
		t.Errorf("hash2 should differ for axis swap")
	}
}

// TestSampleDeterministic verifies two samplers built from the same descriptor agree bit for bit
func TestSampleDeterministic(t *testing.T) {
	d := Descriptor{Seed: 7, PhaseLength: 37, Amplitude: DefaultAmplitude, Octave: 1}
	a := New(d)
	b := New(d)
	for y := -20; y < 20; y++ {
		for x := -20; x < 20; x++ {
			va, vb := a.Sample(x, y), b.Sample(x, y)
			if math.Float64bits(va) != math.Float64bits(vb) {
				t.Fatalf("Sample(%d,%d) differs: %v vs %v", x, y, va, vb)
			}
		}
	}
}

func differsSomewhere(a, b *Sampler) bool {
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if a.Sample(x, y) != b.Sample(x, y) {
				return true
			}
		}
	}
	return false
}

// TestSampleSeedChangesOutput verifies a different seed changes at least one sample
func TestSampleSeedChangesOutput(t *testing.T) {
	base := Descriptor{Seed: 1, PhaseLength: 16, Amplitude: 1, Octave: 1}
	other := base
	other.Seed = 2
	if !differsSomewhere(New(base), New(other)) {
		t.Errorf("Expected different seeds to produce different noise")
	}
}

// TestSampleOctaveChangesOutput verifies octaves are decorrelated
func TestSampleOctaveChangesOutput(t *testing.T) {
	base := Descriptor{Seed: 1, PhaseLength: 16, Amplitude: 1, Octave: 2}
	other := base
	other.Octave = 3
	if !differsSomewhere(New(base), New(other)) {
		t.Errorf("Expected different octaves to produce different noise")
	}
}

// TestSampleDefinedEverywhere verifies negative and far-away coordinates stay finite and bounded
func TestSampleDefinedEverywhere(t *testing.T) {
	rng := rand.New(rand.NewSource(12345)) // deterministic test RNG
	s := New(Descriptor{Seed: 3, PhaseLength: 149, Amplitude: 1500, Octave: 4})
	for i := 0; i < 1000; i++ {
		x := rng.Intn(2_000_000) - 1_000_000
		y := rng.Intn(2_000_000) - 1_000_000
		v := s.Sample(x, y)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("Sample(%d,%d) = %v, expected finite", x, y, v)
		}
		if math.Abs(v) > 2*1500 {
			t.Errorf("Sample(%d,%d) = %v, expected |v| <= %v", x, y, v, 2*1500.0)
		}
	}
}

// TestUnitBandFarNegative verifies the band holds far left of the origin
func TestUnitBandFarNegative(t *testing.T) {
	s := New(Descriptor{Seed: 0, PhaseLength: 150, Amplitude: DefaultAmplitude, Octave: 1})
	for x := -700_000; x < -700_000+82*37; x += 37 {
		if u := s.Unit(x, 5); u < -0.5 || u > 1.5 {
			t.Errorf("Unit(%d,5) = %v, expected within [-0.5,1.5]", x, u)
		}
	}
}

// TestSampleLatticePeriod verifies a shift of one lattice period gives the same noise on both sides of zero
func TestSampleLatticePeriod(t *testing.T) {
	// 8 samples per lattice unit, so 2048 samples is one 256-unit period.
	s := New(Descriptor{Seed: 5, PhaseLength: 8, Amplitude: 1, Octave: 3})
	for _, x := range []int{-1_000_000, -4096, -37, 0, 11, 50_000} {
		for k := -3; k <= 3; k++ {
			a, b := s.Sample(x, 17), s.Sample(x+2048*k, 17-2048*k)
			if math.Abs(a-b) > 1e-9 {
				t.Errorf("Sample(%d) = %v but shifted by %d periods = %v", x, a, k, b)
			}
		}
	}
}

// TestSampleHighOctaveBounded verifies octave counts beyond the lattice range stay bounded
func TestSampleHighOctaveBounded(t *testing.T) {
	s := New(Descriptor{Seed: 1, PhaseLength: 3, Amplitude: 1, Octave: 40})
	for x := -500; x < 500; x += 13 {
		if v := s.Sample(x, x*7); math.IsNaN(v) || math.Abs(v) > 2 {
			t.Errorf("Sample(%d,%d) = %v, expected |v| <= 2", x, x*7, v)
		}
	}
}

// TestUnitBand verifies the default amplitude keeps Unit close to [0,1]
func TestUnitBand(t *testing.T) {
	s := New(Descriptor{Seed: 0, PhaseLength: 150, Amplitude: DefaultAmplitude, Octave: 1})
	for y := 0; y < 300; y += 7 {
		for x := 0; x < 300; x += 7 {
			if u := s.Unit(x, y); u < -0.1 || u > 1.1 {
				t.Errorf("Unit(%d,%d) = %v, expected roughly within [0,1]", x, y, u)
			}
		}
	}
}

// TestSampleZeroPhaseLength verifies the flat-field guard
func TestSampleZeroPhaseLength(t *testing.T) {
	s := New(Descriptor{Seed: 9, PhaseLength: 0, Amplitude: 10, Octave: 1})
	if v := s.Sample(5, 5); v != 0 {
		t.Errorf("Expected 0 for zero phase length, got %v", v)
	}
}

// TestSampleContinuity verifies neighbouring samples stay close for long wavelengths
func TestSampleContinuity(t *testing.T) {
	s := New(Descriptor{Seed: 42, PhaseLength: 500, Amplitude: 1, Octave: 1})
	for x := 0; x < 200; x++ {
		if diff := math.Abs(s.Sample(x, 10) - s.Sample(x+1, 10)); diff >= 0.1 {
			t.Errorf("Sample not continuous at x=%d: diff=%f", x, diff)
		}
	}
}

func BenchmarkSample(b *testing.B) {
	s := New(Descriptor{Seed: 7, PhaseLength: 149, Amplitude: 1500, Octave: 8})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Sample(i%1024, (i*31)%1024)
	}
}
