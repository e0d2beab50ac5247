package tiles

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"tileterrain/internal/heightfield"
)

// storeFromField builds a store whose tiles agree on shared edges.
func storeFromField(t *testing.T, f *heightfield.Field, l Layout) *MemoryStore {
	t.Helper()
	s := NewMemoryStore(l.EdgeLen)
	if err := Scatter(f, l, s); err != nil {
		t.Fatalf("Scatter failed: %v", err)
	}
	return s
}

func randomField(rng *rand.Rand, l Layout) *heightfield.Field {
	f := l.NewField()
	for i := range f.Data {
		f.Data[i] = float32(rng.NormFloat64() * 1000)
	}
	return f
}

// TestLayoutDims checks the shared-edge width formula
func TestLayoutDims(t *testing.T) {
	l, err := NewLayout(1, 1, 5)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	if l.W != 9 || l.H != 9 {
		t.Errorf("Expected 9x9 field, got %dx%d", l.W, l.H)
	}
	l, err = NewLayout(4, 6, 510)
	if err != nil {
		t.Fatalf("NewLayout failed: %v", err)
	}
	if l.W != 5*510-4 || l.H != 7*510-6 {
		t.Errorf("Expected %dx%d, got %dx%d", 5*510-4, 7*510-6, l.W, l.H)
	}
	if x, y := l.Origin(Coord{X: 2, Y: 3}); x != 2*509 || y != 3*509 {
		t.Errorf("Origin(2,3) = (%d,%d), expected (%d,%d)", x, y, 2*509, 3*509)
	}
}

// TestDimsFromCoords verifies the zero-based maxima scan
func TestDimsFromCoords(t *testing.T) {
	tx, ty, err := Dims([]Coord{{0, 0}, {3, 1}, {2, 5}})
	if err != nil {
		t.Fatalf("Dims failed: %v", err)
	}
	if tx != 3 || ty != 5 {
		t.Errorf("Dims = (%d,%d), expected (3,5)", tx, ty)
	}
	if _, _, err := Dims(nil); !errors.Is(err, ErrNoTiles) {
		t.Errorf("Expected ErrNoTiles, got %v", err)
	}
	if _, _, err := Dims([]Coord{{-1, 0}}); !errors.Is(err, ErrTileCoord) {
		t.Errorf("Expected ErrTileCoord, got %v", err)
	}
}

// TestSizeCeiling pins the 32-bit boundary for standard 510-sample tiles
func TestSizeCeiling(t *testing.T) {
	if _, err := NewLayout(90, 90, 510); err != nil {
		t.Errorf("Expected 91x91 tiles to fit, got %v", err)
	}
	if _, err := NewLayout(91, 91, 510); !errors.Is(err, ErrFieldTooLarge) {
		t.Errorf("Expected ErrFieldTooLarge for 92x92 tiles, got %v", err)
	}
	if n := MaxSquareTiles(510); n != 91 {
		t.Errorf("MaxSquareTiles(510) = %d, expected 91", n)
	}
	if n := MaxSquareTiles(510); n*n < 8000 {
		t.Errorf("Expected room for 8000+ tiles, got %d", n*n)
	}
}

// TestRoundTrip verifies scatter(gather(storage)) reproduces every tile bit for bit
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := 0; i < 20; i++ {
		l, err := NewLayout(rng.Intn(4), rng.Intn(4), 2+rng.Intn(9))
		if err != nil {
			t.Fatalf("NewLayout failed: %v", err)
		}
		src := storeFromField(t, randomField(rng, l), l)

		f, gl, err := Gather(src)
		if err != nil {
			t.Fatalf("Gather failed: %v", err)
		}
		if gl != l {
			t.Fatalf("Gather layout %+v, expected %+v", gl, l)
		}
		dst := NewMemoryStore(l.EdgeLen)
		if err := Scatter(f, gl, dst); err != nil {
			t.Fatalf("Scatter failed: %v", err)
		}
		for _, c := range l.Coords() {
			want, _ := src.ReadTile(c)
			got, err := dst.ReadTile(c)
			if err != nil {
				t.Fatalf("ReadTile(%v) failed: %v", c, err)
			}
			for j := range want {
				if math.Float32bits(got[j]) != math.Float32bits(want[j]) {
					t.Fatalf("tile %v sample %d = %v, expected %v", c, j, got[j], want[j])
				}
			}
		}
	}
}

// TestGatherLastWriterWins verifies disagreeing edges take the later tile in row-major order
func TestGatherLastWriterWins(t *testing.T) {
	s := NewFlatStore(1, 0, 3, 0)
	right := []float32{7, 7, 7, 7, 7, 7, 7, 7, 7}
	if err := s.WriteTile(Coord{X: 1, Y: 0}, right); err != nil {
		t.Fatalf("WriteTile failed: %v", err)
	}
	f, _, err := Gather(s)
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	if f.W != 5 || f.H != 3 {
		t.Fatalf("Expected 5x3 field, got %dx%d", f.W, f.H)
	}
	for y := 0; y < 3; y++ {
		if f.At(2, y) != 7 {
			t.Errorf("shared column (2,%d) = %v, expected 7", y, f.At(2, y))
		}
		if f.At(1, y) != 0 {
			t.Errorf("left interior (1,%d) = %v, expected 0", y, f.At(1, y))
		}
	}
}

// TestGatherMissingTile verifies holes in the tile array surface as errors
func TestGatherMissingTile(t *testing.T) {
	s := NewFlatStore(1, 1, 4, 0)
	s.RemoveTile(Coord{X: 0, Y: 1})
	if _, _, err := Gather(s); !errors.Is(err, ErrMissingTile) {
		t.Errorf("Expected ErrMissingTile, got %v", err)
	}
}

type shortStore struct{ *MemoryStore }

func (s shortStore) ReadTile(c Coord) ([]float32, error) { return make([]float32, 3), nil }

// TestGatherTileSize verifies wrong-sized tiles are rejected
func TestGatherTileSize(t *testing.T) {
	s := shortStore{NewFlatStore(0, 0, 4, 0)}
	if _, _, err := Gather(s); !errors.Is(err, ErrTileSize) {
		t.Errorf("Expected ErrTileSize, got %v", err)
	}
}

// TestScatterShapeMismatch verifies no tile is written for a mismatched field
func TestScatterShapeMismatch(t *testing.T) {
	s := NewFlatStore(1, 1, 4, 0)
	l, _ := LayoutOf(s)
	before := s.ModCount()
	if err := Scatter(heightfield.NewField(3, 3), l, s); !errors.Is(err, ErrFieldShape) {
		t.Errorf("Expected ErrFieldShape, got %v", err)
	}
	if s.ModCount() != before {
		t.Errorf("Expected no writes, mod count went %d -> %d", before, s.ModCount())
	}
}

// flakyStore fails its failOn-th write (1-based) and no other.
type flakyStore struct {
	*MemoryStore
	writes, failOn int
}

var errDiskFull = errors.New("disk full")

func (s *flakyStore) WriteTile(c Coord, heights []float32) error {
	s.writes++
	if s.writes == s.failOn {
		return errDiskFull
	}
	return s.MemoryStore.WriteTile(c, heights)
}

// TestScatterAtomicRestores verifies a failed write leaves every tile as it was read
func TestScatterAtomicRestores(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	l, _ := NewLayout(1, 1, 6)
	for failOn := 1; failOn <= 4; failOn++ {
		s := &flakyStore{MemoryStore: storeFromField(t, randomField(rng, l), l), failOn: failOn}
		before := make(map[Coord][]float32)
		for _, c := range l.Coords() {
			before[c], _ = s.ReadTile(c)
		}

		f, sn, err := GatherSnapshot(s)
		if err != nil {
			t.Fatalf("GatherSnapshot failed: %v", err)
		}
		for i := range f.Data {
			f.Data[i] += 3
		}
		if err := ScatterAtomic(f, sn, s); !errors.Is(err, errDiskFull) {
			t.Fatalf("failOn=%d: expected disk full error, got %v", failOn, err)
		}
		for _, c := range l.Coords() {
			got, _ := s.ReadTile(c)
			for i := range got {
				if got[i] != before[c][i] {
					t.Fatalf("failOn=%d: tile (%d,%d)[%d] = %v, expected %v", failOn, c.X, c.Y, i, got[i], before[c][i])
				}
			}
		}
	}
}

// TestScatterAtomicSuccess verifies the snapshot path writes like Scatter when nothing fails
func TestScatterAtomicSuccess(t *testing.T) {
	s := NewFlatStore(1, 0, 4, 10)
	f, sn, err := GatherSnapshot(s)
	if err != nil {
		t.Fatalf("GatherSnapshot failed: %v", err)
	}
	if sn.Layout().W != 7 {
		t.Errorf("Expected snapshot layout width 7, got %d", sn.Layout().W)
	}
	f.Set(3, 2, 99)
	if err := ScatterAtomic(f, sn, s); err != nil {
		t.Fatalf("ScatterAtomic failed: %v", err)
	}
	for _, c := range []Coord{{0, 0}, {1, 0}} {
		heights, _ := s.ReadTile(c)
		x := 3 - c.X*3
		if heights[2*4+x] != 99 {
			t.Errorf("tile (%d,%d) missing shared edge write, got %v", c.X, c.Y, heights[2*4+x])
		}
	}
}

// TestIndexHelpers checks flat index conversions
func TestIndexHelpers(t *testing.T) {
	i := Index(3, 4, 10)
	if i != 43 {
		t.Errorf("Index(3,4,10) = %d, expected 43", i)
	}
	if x, y := Coord2D(i, 10); x != 3 || y != 4 {
		t.Errorf("Coord2D(43,10) = (%d,%d), expected (3,4)", x, y)
	}
}

// TestSeaBedMarker verifies the sea bed follows LowerSeaBed
func TestSeaBedMarker(t *testing.T) {
	s := NewMemoryStore(3)
	s.LowerSeaBed(10)
	if _, ok := s.Decoration(SeaBed); ok {
		t.Fatalf("Expected no sea bed before placement")
	}
	s.PlaceDecoration(Placement{Kind: SeaBed, Level: -2000})
	s.LowerSeaBed(500)
	p, _ := s.Decoration(SeaBed)
	if p.Level != -2500 {
		t.Errorf("Expected sea bed at -2500, got %v", p.Level)
	}
}

func BenchmarkGather(b *testing.B) {
	s := NewFlatStore(3, 3, 129, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Gather(s); err != nil {
			b.Fatal(err)
		}
	}
}
