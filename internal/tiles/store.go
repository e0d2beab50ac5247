package tiles

import (
	"fmt"
	"sort"
	"sync"

	"tileterrain/internal/profiling"
)

// Decoration identifies a scene object placed alongside the terrain.
type Decoration int

const (
	SeaBed Decoration = iota
	SeaSurface
	SeaVolume
)

func (d Decoration) String() string {
	switch d {
	case SeaBed:
		return "SeaBed"
	case SeaSurface:
		return "SeaSurface"
	case SeaVolume:
		return "SeaVolumeFX"
	}
	return fmt.Sprintf("Decoration(%d)", int(d))
}

// Placement records where a decoration sits, in field sample units.
type Placement struct {
	Kind             Decoration
	CentreX, CentreY float32
	Level            float32
	ExtentX, ExtentY float32
}

// MemoryStore is an in-memory tile storage.
type MemoryStore struct {
	edgeLen  int
	tiles    map[Coord][]float32
	decor    map[Decoration]Placement
	mu       sync.RWMutex
	modCount uint64 // Increases on any tile write
}

// NewMemoryStore creates an empty store for tiles of the given edge length.
func NewMemoryStore(edgeLen int) *MemoryStore {
	return &MemoryStore{
		edgeLen: edgeLen,
		tiles:   make(map[Coord][]float32),
		decor:   make(map[Decoration]Placement),
	}
}

// NewFlatStore creates a (tilesX+1)×(tilesY+1) store with every sample at height.
func NewFlatStore(tilesX, tilesY, edgeLen int, height float32) *MemoryStore {
	s := NewMemoryStore(edgeLen)
	for ty := 0; ty <= tilesY; ty++ {
		for tx := 0; tx <= tilesX; tx++ {
			heights := make([]float32, edgeLen*edgeLen)
			for i := range heights {
				heights[i] = height
			}
			s.tiles[Coord{X: tx, Y: ty}] = heights
		}
	}
	return s
}

// EdgeLength returns the samples per tile edge.
func (s *MemoryStore) EdgeLength() int { return s.edgeLen }

// TileCoords returns every stored coordinate in row-major order.
func (s *MemoryStore) TileCoords() []Coord {
	s.mu.RLock()
	out := make([]Coord, 0, len(s.tiles))
	for c := range s.tiles {
		out = append(out, c)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// ReadTile returns a copy of the tile's samples.
func (s *MemoryStore) ReadTile(c Coord) ([]float32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	heights, ok := s.tiles[c]
	if !ok {
		return nil, fmt.Errorf("no tile at (%d,%d)", c.X, c.Y)
	}
	out := make([]float32, len(heights))
	copy(out, heights)
	return out, nil
}

// WriteTile stores a copy of heights, creating the tile if needed.
func (s *MemoryStore) WriteTile(c Coord, heights []float32) error {
	defer profiling.Track("tiles.WriteTile")()
	if len(heights) != s.edgeLen*s.edgeLen {
		return fmt.Errorf("%w: got %d, want %d", ErrTileSize, len(heights), s.edgeLen*s.edgeLen)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dst, ok := s.tiles[c]
	if !ok {
		dst = make([]float32, len(heights))
		s.tiles[c] = dst
	}
	copy(dst, heights)
	s.modCount++
	return nil
}

// HasTile checks if a tile exists.
func (s *MemoryStore) HasTile(c Coord) bool {
	s.mu.RLock()
	_, exists := s.tiles[c]
	s.mu.RUnlock()
	return exists
}

// RemoveTile deletes a tile. Returns whether it existed.
func (s *MemoryStore) RemoveTile(c Coord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tiles[c]; !ok {
		return false
	}
	delete(s.tiles, c)
	s.modCount++
	return true
}

// ModCount returns the number of tile writes and removals so far.
func (s *MemoryStore) ModCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modCount
}

// RemoveDecoration drops a decoration if present.
func (s *MemoryStore) RemoveDecoration(kind Decoration) {
	s.mu.Lock()
	delete(s.decor, kind)
	s.mu.Unlock()
}

// PlaceDecoration adds or replaces a decoration.
func (s *MemoryStore) PlaceDecoration(p Placement) {
	s.mu.Lock()
	s.decor[p.Kind] = p
	s.mu.Unlock()
}

// Decoration returns the placement of kind, if any.
func (s *MemoryStore) Decoration(kind Decoration) (Placement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.decor[kind]
	return p, ok
}

// LowerSeaBed moves the sea bed marker down by delta. No-op without one.
func (s *MemoryStore) LowerSeaBed(delta float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.decor[SeaBed]; ok {
		p.Level -= delta
		s.decor[SeaBed] = p
	}
}
