package terrain

import (
	"log"

	"tileterrain/internal/blend"
	"tileterrain/internal/heightfield"
	"tileterrain/internal/profiling"
	"tileterrain/internal/tiles"
)

// BaseBlendWidth is the seam half-width used right after base relief.
const BaseBlendWidth = 30

// SeaDecorationLevel is where the sea surface and water volume are anchored,
// independent of the boundary height.
const SeaDecorationLevel = -2000

// FillFunc builds a control grid; it matches heightfield.FillControlGrid.
type FillFunc func(tilesX, tilesY int, boundary, maxHeight, fraction float32, seed int64) *heightfield.ControlGrid

// SeaFloorMarker is implemented by storages that keep a sea bed object
// which must move with the terrain.
type SeaFloorMarker interface {
	LowerSeaBed(delta float32)
}

// Decorator is implemented by storages that can hold sea decorations.
type Decorator interface {
	RemoveDecoration(kind tiles.Decoration)
	PlaceDecoration(p tiles.Placement)
}

// Terrain runs the five height operations against one tile storage. Every
// operation reads the whole field, rewrites it and writes every tile back;
// nothing is written if validation or the read fails, and a failed write
// restores the tiles written before it. Calls on the same
// Terrain must not overlap.
type Terrain struct {
	store  tiles.Storage
	fill   FillFunc
	Logger *log.Logger
}

// New wraps a storage.
func New(store tiles.Storage) *Terrain {
	return &Terrain{
		store:  store,
		fill:   heightfield.FillControlGrid,
		Logger: log.Default(),
	}
}

// Storage returns the wrapped storage.
func (t *Terrain) Storage() tiles.Storage { return t.store }

// Layout reports the current tile layout.
func (t *Terrain) Layout() (tiles.Layout, error) {
	return tiles.LayoutOf(t.store)
}

// edit gathers the field, applies fn and scatters the result. A failed
// write puts the tiles already written back the way they were.
func (t *Terrain) edit(op string, fn func(f *heightfield.Field, l tiles.Layout) *heightfield.Field) (tiles.Layout, error) {
	defer profiling.Track("terrain." + op)()
	f, snap, err := tiles.GatherSnapshot(t.store)
	if err != nil {
		return tiles.Layout{}, err
	}
	l := snap.Layout()
	f = fn(f, l)
	if err := tiles.ScatterAtomic(f, snap, t.store); err != nil {
		return tiles.Layout{}, err
	}
	lo, hi := f.MinMax()
	t.Logger.Printf("%s: %dx%d tiles, field %dx%d, heights [%.1f, %.1f]",
		op, l.TilesX+1, l.TilesY+1, l.W, l.H, lo, hi)
	return l, nil
}

// SynthesizeBase produces the base relief for a layout. It returns the
// control grid used, or nil for a single row or column of tiles.
func SynthesizeBase(f *heightfield.Field, l tiles.Layout, p BaseParams, fill FillFunc) (*heightfield.Field, *heightfield.ControlGrid) {
	if l.SingleTile() {
		return heightfield.SingleTileRelief(f, p.MaxHeight, p.Seed), nil
	}
	grid := func() *heightfield.ControlGrid {
		defer profiling.Track("heightfield.FillControlGrid")()
		return fill(l.TilesX, l.TilesY, p.BoundaryHeight, p.MaxHeight, p.FractionOfMaxHeights, p.Seed)
	}()
	phase := heightfield.BasePhaseLength(f.W, f.H, p.RuggedFactor)
	f = heightfield.BaseRelief(f, grid, phase, p.Seed)

	func() {
		defer profiling.Track("blend.Seams")()
		blend.Seams(f, l.TilesX, l.TilesY, BaseBlendWidth)
	}()
	return f, grid
}

// GenerateBaseHeightMap replaces the terrain with a fresh landmass: peaks
// spread from the centre down to the boundary height, modulated by noise,
// with tile seams blended.
func (t *Terrain) GenerateBaseHeightMap(p BaseParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := t.edit("GenerateBaseHeightMap", func(f *heightfield.Field, l tiles.Layout) *heightfield.Field {
		f, _ = SynthesizeBase(f, l, p, t.fill)
		return f
	})
	return err
}

// GenerateHeightNoise adds octaves 2..Octaves of detail on top of the
// current terrain.
func (t *Terrain) GenerateHeightNoise(p NoiseParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := t.edit("GenerateHeightNoise", func(f *heightfield.Field, _ tiles.Layout) *heightfield.Field {
		return heightfield.LayerOctaves(f, heightfield.OctaveParams{
			Octaves:     p.Octaves,
			NoiseHeight: p.NoiseHeight,
			PhaseLength: p.PhaseLength,
			Persistence: p.Persistence,
			Seed:        p.Seed,
		})
	})
	return err
}

// CreateSeaFloor levels the outer edges of the terrain down to the boundary
// height and, when the storage supports it, replaces the requested sea
// decorations.
func (t *Terrain) CreateSeaFloor(p SeaFloorParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	l, err := t.edit("CreateSeaFloor", func(f *heightfield.Field, _ tiles.Layout) *heightfield.Field {
		blend.Boundary(f, p.BoundaryHeight, blend.SeaFloorWidth)
		return f
	})
	if err != nil {
		return err
	}
	if d, ok := t.store.(Decorator); ok {
		placeSeaDecorations(d, l, p)
	}
	return nil
}

func placeSeaDecorations(d Decorator, l tiles.Layout, p SeaFloorParams) {
	cx, cy := l.Centre()
	place := func(enabled bool, kind tiles.Decoration, level float32) {
		if !enabled {
			return
		}
		d.RemoveDecoration(kind)
		d.PlaceDecoration(tiles.Placement{
			Kind:    kind,
			CentreX: cx,
			CentreY: cy,
			Level:   level,
			ExtentX: float32(l.W),
			ExtentY: float32(l.H),
		})
	}
	place(p.DistantSeaFloor, tiles.SeaBed, p.BoundaryHeight)
	place(p.SeaPlane, tiles.SeaSurface, SeaDecorationLevel)
	place(p.WaterVFX, tiles.SeaVolume, SeaDecorationLevel)
}

// TerrainOffset lowers the whole terrain by offset. A sea bed kept by the
// storage moves by the same amount.
func (t *Terrain) TerrainOffset(offset float32) error {
	if !finite(offset) {
		return invalid("non-finite offset %v", offset)
	}
	_, err := t.edit("TerrainOffset", func(f *heightfield.Field, _ tiles.Layout) *heightfield.Field {
		return heightfield.Offset(f, offset)
	})
	if err != nil {
		return err
	}
	if m, ok := t.store.(SeaFloorMarker); ok {
		m.LowerSeaBed(offset)
	}
	return nil
}

// BlendPatchEdges smooths a band of ±blendWidth samples across every
// internal tile boundary.
func (t *Terrain) BlendPatchEdges(blendWidth int) error {
	if blendWidth < 1 {
		return invalid("blendWidth %d < 1", blendWidth)
	}
	_, err := t.edit("BlendPatchEdges", func(f *heightfield.Field, l tiles.Layout) *heightfield.Field {
		blend.Seams(f, l.TilesX, l.TilesY, blendWidth)
		return f
	})
	return err
}
