package terrain

import (
	"errors"
	"fmt"
	"math"

	"tileterrain/internal/config"
)

// ErrInvalidParams is returned before any tile is read when a parameter is
// out of range.
var ErrInvalidParams = errors.New("terrain: invalid parameters")

// BaseParams drives GenerateBaseHeightMap.
type BaseParams struct {
	MaxHeight            float32
	BoundaryHeight       float32
	RuggedFactor         float32
	FractionOfMaxHeights float32
	Seed                 int64
}

// NoiseParams drives GenerateHeightNoise.
type NoiseParams struct {
	Octaves     int
	NoiseHeight float32
	PhaseLength float32
	Persistence float32
	Seed        int64
}

// SeaFloorParams drives CreateSeaFloor. The flags only matter when the
// storage can hold decorations.
type SeaFloorParams struct {
	BoundaryHeight  float32
	DistantSeaFloor bool
	WaterVFX        bool
	SeaPlane        bool
}

// BaseFromSettings picks the GenerateBaseHeightMap fields out of s.
func BaseFromSettings(s config.Settings) BaseParams {
	return BaseParams{
		MaxHeight:            s.MaxHeight,
		BoundaryHeight:       s.BoundaryHeight,
		RuggedFactor:         s.RuggedFactor,
		FractionOfMaxHeights: s.FractionOfMaxHeights,
		Seed:                 s.Seed,
	}
}

// NoiseFromSettings picks the GenerateHeightNoise fields out of s.
func NoiseFromSettings(s config.Settings) NoiseParams {
	return NoiseParams{
		Octaves:     s.Octaves,
		NoiseHeight: s.NoiseHeight,
		PhaseLength: s.PhaseLength,
		Persistence: s.Persistence,
		Seed:        s.Seed,
	}
}

// SeaFloorFromSettings picks the CreateSeaFloor fields out of s.
func SeaFloorFromSettings(s config.Settings) SeaFloorParams {
	return SeaFloorParams{
		BoundaryHeight:  s.BoundaryHeight,
		DistantSeaFloor: s.DistantSeaFloor,
		WaterVFX:        s.WaterVFX,
		SeaPlane:        s.SeaPlane,
	}
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...)
}

// Validate checks p before any tile is touched.
func (p BaseParams) Validate() error {
	switch {
	case !finite(p.MaxHeight, p.BoundaryHeight, p.RuggedFactor, p.FractionOfMaxHeights):
		return invalid("non-finite base parameter %+v", p)
	case p.MaxHeight < 0:
		return invalid("maxHeight %v < 0", p.MaxHeight)
	case p.RuggedFactor <= 0:
		return invalid("ruggedFactor %v <= 0", p.RuggedFactor)
	case p.FractionOfMaxHeights < 0 || p.FractionOfMaxHeights > 1:
		return invalid("fractionOfMaxHeights %v outside [0,1]", p.FractionOfMaxHeights)
	}
	return nil
}

// Validate checks p before any tile is touched.
func (p NoiseParams) Validate() error {
	switch {
	case !finite(p.NoiseHeight, p.PhaseLength, p.Persistence):
		return invalid("non-finite noise parameter %+v", p)
	case p.Octaves < 1:
		return invalid("octaves %d < 1", p.Octaves)
	case p.PhaseLength <= 0:
		return invalid("phaseLength %v <= 0", p.PhaseLength)
	}
	return nil
}

// Validate checks p before any tile is touched.
func (p SeaFloorParams) Validate() error {
	if !finite(p.BoundaryHeight) {
		return invalid("non-finite boundaryHeight %v", p.BoundaryHeight)
	}
	return nil
}
