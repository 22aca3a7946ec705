package parallel

import (
	"errors"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name       string
		w, h, side int
		wantX      int
		wantY      int
	}{
		{"exact fit", 128, 64, 64, 2, 1},
		{"remainder", 100, 70, 46, 3, 2},
		{"single tile", 10, 10, 64, 1, 1},
		{"one sample tiles", 3, 2, 1, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewTileGrid(tt.w, tt.h, tt.side)
			if err != nil {
				t.Fatal(err)
			}
			if g.TilesX() != tt.wantX || g.TilesY() != tt.wantY {
				t.Errorf("tiles = %dx%d, want %dx%d", g.TilesX(), g.TilesY(), tt.wantX, tt.wantY)
			}
			if g.TileCount() != tt.wantX*tt.wantY {
				t.Errorf("TileCount() = %d", g.TileCount())
			}
			if g.Side() != tt.side {
				t.Errorf("Side() = %d, want %d", g.Side(), tt.side)
			}
		})
	}
}

func TestNewTileGridInvalid(t *testing.T) {
	if _, err := NewTileGrid(0, 10, 8); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("zero width error = %v, want ErrInvalidGrid", err)
	}
	if _, err := NewTileGrid(10, 10, 0); !errors.Is(err, ErrInvalidTileSide) {
		t.Errorf("zero side error = %v, want ErrInvalidTileSide", err)
	}
}

func TestTileGridCoversPlaneExactlyOnce(t *testing.T) {
	const w, h, side = 101, 67, 20
	g, err := NewTileGrid(w, h, side)
	if err != nil {
		t.Fatal(err)
	}

	owner := make([]int, w*h)
	for i := range owner {
		owner[i] = -1
	}

	total := 0
	for i, tile := range g.Tiles() {
		if tile.Index != i {
			t.Errorf("tile %d has Index %d", i, tile.Index)
		}
		total += tile.Width * tile.Height
		for y := tile.MinY; y < tile.MaxY(); y++ {
			for x := tile.MinX; x < tile.MaxX(); x++ {
				if owner[y*w+x] != -1 {
					t.Fatalf("sample (%d,%d) owned by tiles %d and %d", x, y, owner[y*w+x], i)
				}
				owner[y*w+x] = i
			}
		}
	}

	if total != w*h {
		t.Errorf("tiles cover %d samples, want %d", total, w*h)
	}
	for i, o := range owner {
		if o == -1 {
			t.Fatalf("sample %d not covered by any tile", i)
		}
	}
}

func TestTileGridRowMajor(t *testing.T) {
	g, _ := NewTileGrid(50, 50, 20)
	tiles := g.Tiles()

	for i := 1; i < len(tiles); i++ {
		prev, cur := tiles[i-1], tiles[i]
		if cur.Y < prev.Y || (cur.Y == prev.Y && cur.X != prev.X+1) {
			t.Errorf("tile %d (%d,%d) does not follow (%d,%d) in row-major order",
				i, cur.X, cur.Y, prev.X, prev.Y)
		}
	}
}

func TestTileGridEdgeTiles(t *testing.T) {
	g, _ := NewTileGrid(100, 70, 46)
	tiles := g.Tiles()

	last := tiles[len(tiles)-1]
	if last.X != 2 || last.Y != 1 {
		t.Fatalf("last tile = (%d,%d), want (2,1)", last.X, last.Y)
	}
	if last.MinX != 92 || last.MinY != 46 || last.Width != 8 || last.Height != 24 {
		t.Errorf("edge tile = (%d,%d,%d,%d), want (92,46,8,24)",
			last.MinX, last.MinY, last.Width, last.Height)
	}
	if last.MaxX() != 100 || last.MaxY() != 70 {
		t.Errorf("edge tile max = (%d,%d), want (100,70)", last.MaxX(), last.MaxY())
	}

	interior := tiles[0]
	if interior.Width != 46 || interior.Height != 46 {
		t.Errorf("interior tile = %dx%d, want 46x46", interior.Width, interior.Height)
	}
}

func BenchmarkNewTileGrid_4K(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = NewTileGrid(3840, 2160, 62)
	}
}
