package config

// Settings holds every scalar the five terrain operations accept. Front ends
// start from Defaults and pass the values in; the terrain core keeps none of
// it between calls.
type Settings struct {
	// GenerateBaseHeightMap
	MaxHeight            float32 `json:"maxHeight"`
	BoundaryHeight       float32 `json:"boundaryHeight"`
	RuggedFactor         float32 `json:"ruggedFactor"`
	FractionOfMaxHeights float32 `json:"fractionOfMaxHeights"`
	Seed                 int64   `json:"seed"`

	// GenerateHeightNoise
	Octaves     int     `json:"octaves"`
	NoiseHeight float32 `json:"noiseHeight"`
	PhaseLength float32 `json:"phaseLength"`
	Persistence float32 `json:"persistence"`

	// CreateSeaFloor
	DistantSeaFloor bool `json:"distantSeaFloor"`
	WaterVFX        bool `json:"waterVFX"`
	SeaPlane        bool `json:"seaPlane"`

	// TerrainOffset
	Offset float32 `json:"offset"`

	// BlendPatchEdges
	BlendWidth int `json:"blendWidth"`
}

// Defaults returns the stock settings for a standard 510-sample tile terrain.
func Defaults() Settings {
	return Settings{
		MaxHeight:            36000,
		BoundaryHeight:       -2000,
		RuggedFactor:         7,
		FractionOfMaxHeights: 0.12,
		Seed:                 7,

		Octaves:     8,
		NoiseHeight: 1500,
		PhaseLength: 149,
		Persistence: 0.7,

		DistantSeaFloor: true,
		WaterVFX:        true,
		SeaPlane:        true,

		Offset: 500,

		BlendWidth: 1,
	}
}
