// Package parallel provides tile-based parallel execution for the convolution
// pipeline.
//
// A plane is divided into square tiles that are processed independently:
//
//   - Tiles cover the plane without overlap, so each tile owns a disjoint
//     rectangle of the output and no locking is needed on writes
//   - Tiles are enumerated in row-major order
//   - Edge tiles may be smaller when the plane is not evenly divisible
//   - A persistent work-stealing WorkerPool executes one task per tile
//
// Thread safety: TileGrid is immutable after creation and safe for
// concurrent reads. WorkerPool is safe for concurrent use.
package parallel

// Tile is a rectangular region of a plane.
//
// Edge tiles may have smaller actual dimensions than the grid's tile side
// when the plane is not evenly divisible.
type Tile struct {
	// Index is the row-major position of the tile in its grid.
	Index int

	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// MinX is the first sample column covered by the tile.
	MinX int

	// MinY is the first sample row covered by the tile.
	MinY int

	// Width is the actual width in samples.
	Width int

	// Height is the actual height in samples.
	Height int
}

// MaxX returns one past the last sample column covered by the tile.
func (t Tile) MaxX() int { return t.MinX + t.Width }

// MaxY returns one past the last sample row covered by the tile.
func (t Tile) MaxY() int { return t.MinY + t.Height }
