package tiles

import (
	"errors"
	"fmt"
	"math"

	"tileterrain/internal/heightfield"
)

var (
	// ErrNoTiles is returned for a storage without any tile.
	ErrNoTiles = errors.New("tiles: storage has no tiles")
	// ErrTileCoord is returned for negative tile coordinates.
	ErrTileCoord = errors.New("tiles: negative tile coordinate")
	// ErrEdgeLength is returned when tiles are too small to share an edge.
	ErrEdgeLength = errors.New("tiles: edge length must be at least 2")
	// ErrFieldTooLarge is returned when the flat field would not fit a
	// 32-bit index.
	ErrFieldTooLarge = errors.New("tiles: field exceeds 32-bit index space")
	// ErrMissingTile is returned when a tile inside the layout is absent.
	ErrMissingTile = errors.New("tiles: missing tile")
	// ErrTileSize is returned when a tile holds the wrong number of samples.
	ErrTileSize = errors.New("tiles: wrong tile sample count")
	// ErrFieldShape is returned when a field does not match the layout.
	ErrFieldShape = errors.New("tiles: field does not match layout")
)

// Coord is a zero-based tile coordinate.
type Coord struct{ X, Y int }

// Layout maps between tiles and the flat working field. Adjacent tiles
// share one row/column of samples, so W = (TilesX+1)*EdgeLen - TilesX.
type Layout struct {
	TilesX, TilesY int // highest tile coordinate on each axis
	EdgeLen        int
	W, H           int
}

// Dims returns the highest tile coordinate seen on each axis.
func Dims(coords []Coord) (tilesX, tilesY int, err error) {
	if len(coords) == 0 {
		return 0, 0, ErrNoTiles
	}
	for _, c := range coords {
		if c.X < 0 || c.Y < 0 {
			return 0, 0, fmt.Errorf("%w: (%d,%d)", ErrTileCoord, c.X, c.Y)
		}
		tilesX = max(tilesX, c.X)
		tilesY = max(tilesY, c.Y)
	}
	return tilesX, tilesY, nil
}

// NewLayout validates the dimensions and computes the field size.
func NewLayout(tilesX, tilesY, edgeLen int) (Layout, error) {
	if tilesX < 0 || tilesY < 0 {
		return Layout{}, fmt.Errorf("%w: (%d,%d)", ErrTileCoord, tilesX, tilesY)
	}
	if edgeLen < 2 {
		return Layout{}, fmt.Errorf("%w: %d", ErrEdgeLength, edgeLen)
	}
	w := int64(tilesX+1)*int64(edgeLen) - int64(tilesX)
	h := int64(tilesY+1)*int64(edgeLen) - int64(tilesY)
	if w*h > math.MaxInt32 {
		return Layout{}, fmt.Errorf("%w: %dx%d samples", ErrFieldTooLarge, w, h)
	}
	return Layout{TilesX: tilesX, TilesY: tilesY, EdgeLen: edgeLen, W: int(w), H: int(h)}, nil
}

// LayoutOf derives the layout of a storage from its tile coordinates.
func LayoutOf(s Storage) (Layout, error) {
	tx, ty, err := Dims(s.TileCoords())
	if err != nil {
		return Layout{}, err
	}
	return NewLayout(tx, ty, s.EdgeLength())
}

// MaxSquareTiles returns the largest n such that an n×n tile array of the
// given edge length still fits a 32-bit indexed field.
func MaxSquareTiles(edgeLen int) int {
	n := 0
	for {
		if _, err := NewLayout(n, n, edgeLen); err != nil {
			return n
		}
		n++
	}
}

// SingleTile reports whether the array is a single row or column of tiles.
func (l Layout) SingleTile() bool {
	return l.TilesX == 0 || l.TilesY == 0
}

// Contains reports whether c lies inside the layout.
func (l Layout) Contains(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X <= l.TilesX && c.Y <= l.TilesY
}

// Origin returns the field position of a tile's first sample.
func (l Layout) Origin(c Coord) (x, y int) {
	return c.X * (l.EdgeLen - 1), c.Y * (l.EdgeLen - 1)
}

// TileSamples is the number of samples held by one tile.
func (l Layout) TileSamples() int { return l.EdgeLen * l.EdgeLen }

// Centre returns the field position at the middle of the terrain.
func (l Layout) Centre() (x, y float32) {
	return float32(l.W-1) / 2, float32(l.H-1) / 2
}

// NewField allocates a working field sized for the layout.
func (l Layout) NewField() *heightfield.Field {
	return heightfield.NewField(l.W, l.H)
}

// Coords lists every tile of the layout in row-major tile order.
func (l Layout) Coords() []Coord {
	out := make([]Coord, 0, (l.TilesX+1)*(l.TilesY+1))
	for ty := 0; ty <= l.TilesY; ty++ {
		for tx := 0; tx <= l.TilesX; tx++ {
			out = append(out, Coord{X: tx, Y: ty})
		}
	}
	return out
}

// Index converts (x, y) to a flat row-major index for width w.
func Index(x, y, w int) int { return y*w + x }

// Coord2D converts a flat index back to (x, y) for width w.
func Coord2D(i, w int) (x, y int) { return i % w, i / w }
