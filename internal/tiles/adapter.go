package tiles

import (
	"errors"
	"fmt"

	"tileterrain/internal/heightfield"
	"tileterrain/internal/profiling"
)

// Storage is the tiled terrain collaborator. Tiles are square, EdgeLength
// samples a side, stored row major.
type Storage interface {
	TileCoords() []Coord
	ReadTile(c Coord) ([]float32, error)
	WriteTile(c Coord, heights []float32) error
	EdgeLength() int
}

// Gather reads every tile into one flat field. Tiles are copied in row-major
// tile order; on shared edges the later tile overwrites the earlier one.
func Gather(s Storage) (*heightfield.Field, Layout, error) {
	f, l, _, err := gather(s, false)
	return f, l, err
}

// Snapshot keeps the tiles as Gather read them so a failed write-back can be
// undone.
type Snapshot struct {
	layout Layout
	tiles  map[Coord][]float32
}

// Layout returns the layout the snapshot was taken with.
func (sn *Snapshot) Layout() Layout { return sn.layout }

// Restore writes the saved tiles at coords back to s. It keeps going after
// a failed write and reports every failure.
func (sn *Snapshot) Restore(s Storage, coords []Coord) error {
	var errs []error
	for _, c := range coords {
		heights, ok := sn.tiles[c]
		if !ok {
			continue
		}
		if err := s.WriteTile(c, heights); err != nil {
			errs = append(errs, fmt.Errorf("restore tile (%d,%d): %w", c.X, c.Y, err))
		}
	}
	return errors.Join(errs...)
}

// GatherSnapshot is Gather that also keeps a copy of every tile read.
func GatherSnapshot(s Storage) (*heightfield.Field, *Snapshot, error) {
	f, _, sn, err := gather(s, true)
	return f, sn, err
}

func gather(s Storage, keep bool) (*heightfield.Field, Layout, *Snapshot, error) {
	defer profiling.Track("tiles.Gather")()
	l, err := LayoutOf(s)
	if err != nil {
		return nil, Layout{}, nil, err
	}
	var sn *Snapshot
	if keep {
		sn = &Snapshot{layout: l, tiles: make(map[Coord][]float32, (l.TilesX+1)*(l.TilesY+1))}
	}
	f := l.NewField()
	for _, c := range l.Coords() {
		heights, err := s.ReadTile(c)
		if err != nil {
			return nil, Layout{}, nil, fmt.Errorf("%w (%d,%d): %w", ErrMissingTile, c.X, c.Y, err)
		}
		if len(heights) != l.TileSamples() {
			return nil, Layout{}, nil, fmt.Errorf("%w (%d,%d): got %d, want %d", ErrTileSize, c.X, c.Y, len(heights), l.TileSamples())
		}
		l.copyIn(f, c, heights)
		if keep {
			sn.tiles[c] = append([]float32(nil), heights...)
		}
	}
	return f, l, sn, nil
}

// Scatter writes f back tile by tile, each tile taking its edge-length
// square including the shared rows and columns. The field shape is checked
// before the first write.
func Scatter(f *heightfield.Field, l Layout, s Storage) error {
	_, err := scatter(f, l, s)
	return err
}

// ScatterAtomic is Scatter that, when a write fails, puts back the
// snapshot's tiles for everything written so far and the failed tile.
func ScatterAtomic(f *heightfield.Field, sn *Snapshot, s Storage) error {
	touched, err := scatter(f, sn.layout, s)
	if err == nil || len(touched) == 0 {
		return err
	}
	if rerr := sn.Restore(s, touched); rerr != nil {
		return errors.Join(err, rerr)
	}
	return err
}

// scatter returns the coordinates it attempted to write, including a
// failed one.
func scatter(f *heightfield.Field, l Layout, s Storage) ([]Coord, error) {
	defer profiling.Track("tiles.Scatter")()
	if f.W != l.W || f.H != l.H || len(f.Data) != l.W*l.H {
		return nil, fmt.Errorf("%w: field %dx%d, layout %dx%d", ErrFieldShape, f.W, f.H, l.W, l.H)
	}
	if s.EdgeLength() != l.EdgeLen {
		return nil, fmt.Errorf("%w: storage edge %d, layout edge %d", ErrFieldShape, s.EdgeLength(), l.EdgeLen)
	}
	coords := l.Coords()
	buf := make([]float32, l.TileSamples())
	for i, c := range coords {
		l.copyOut(f, c, buf)
		if err := s.WriteTile(c, buf); err != nil {
			return coords[:i+1], fmt.Errorf("write tile (%d,%d): %w", c.X, c.Y, err)
		}
	}
	return coords, nil
}

func (l Layout) copyIn(f *heightfield.Field, c Coord, heights []float32) {
	ox, oy := l.Origin(c)
	for y := 0; y < l.EdgeLen; y++ {
		row := Index(ox, oy+y, l.W)
		copy(f.Data[row:row+l.EdgeLen], heights[y*l.EdgeLen:(y+1)*l.EdgeLen])
	}
}

func (l Layout) copyOut(f *heightfield.Field, c Coord, heights []float32) {
	ox, oy := l.Origin(c)
	for y := 0; y < l.EdgeLen; y++ {
		row := Index(ox, oy+y, l.W)
		copy(heights[y*l.EdgeLen:(y+1)*l.EdgeLen], f.Data[row:row+l.EdgeLen])
	}
}
