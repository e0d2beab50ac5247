package terrain

import (
	"fmt"
	"strings"

	"tileterrain/internal/config"
)

// Step names one of the five operations.
type Step string

const (
	StepBase     Step = "base"
	StepNoise    Step = "noise"
	StepSeaFloor Step = "seafloor"
	StepOffset   Step = "offset"
	StepBlend    Step = "blend"
)

// DefaultSteps is the usual order for building a landmass from scratch:
// relief, detail, shoreline, then sink it into the sea.
var DefaultSteps = []Step{StepBase, StepNoise, StepSeaFloor, StepOffset}

// ParseSteps splits a comma separated list such as "base,noise,blend".
func ParseSteps(s string) ([]Step, error) {
	var out []Step
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch st := Step(strings.ToLower(part)); st {
		case StepBase, StepNoise, StepSeaFloor, StepOffset, StepBlend:
			out = append(out, st)
		default:
			return nil, fmt.Errorf("unknown step %q", part)
		}
	}
	return out, nil
}

// Run applies steps in order using values from s, stopping at the first
// error. Steps already applied stay written.
func (t *Terrain) Run(s config.Settings, steps ...Step) error {
	for _, st := range steps {
		var err error
		switch st {
		case StepBase:
			err = t.GenerateBaseHeightMap(BaseFromSettings(s))
		case StepNoise:
			err = t.GenerateHeightNoise(NoiseFromSettings(s))
		case StepSeaFloor:
			err = t.CreateSeaFloor(SeaFloorFromSettings(s))
		case StepOffset:
			err = t.TerrainOffset(s.Offset)
		case StepBlend:
			err = t.BlendPatchEdges(s.BlendWidth)
		default:
			err = fmt.Errorf("unknown step %q", st)
		}
		if err != nil {
			return fmt.Errorf("step %s: %w", st, err)
		}
	}
	return nil
}
