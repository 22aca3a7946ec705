package parallel

import (
	"errors"
	"fmt"
)

// Grid errors.
var (
	// ErrInvalidGrid is returned when the plane dimensions are non-positive.
	ErrInvalidGrid = errors.New("parallel: invalid grid dimensions")

	// ErrInvalidTileSide is returned when the tile side is non-positive.
	ErrInvalidTileSide = errors.New("parallel: invalid tile side")
)

// TileGrid divides a plane into square tiles of a fixed side.
//
// Tiles are stored in a flat slice in row-major order, accessed via
// index = ty * tilesX + tx.
type TileGrid struct {
	tiles  []Tile
	tilesX int
	tilesY int
	side   int
}

// NewTileGrid creates a grid covering a width x height plane with tiles of
// the given side. Edge tiles are clipped to the plane.
func NewTileGrid(width, height, side int) (*TileGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGrid, width, height)
	}
	if side <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTileSide, side)
	}

	tilesX := (width + side - 1) / side
	tilesY := (height + side - 1) / side

	g := &TileGrid{
		tiles:  make([]Tile, 0, tilesX*tilesY),
		tilesX: tilesX,
		tilesY: tilesY,
		side:   side,
	}

	for ty := range tilesY {
		for tx := range tilesX {
			minX := tx * side
			minY := ty * side
			g.tiles = append(g.tiles, Tile{
				Index:  len(g.tiles),
				X:      tx,
				Y:      ty,
				MinX:   minX,
				MinY:   minY,
				Width:  min(side, width-minX),
				Height: min(side, height-minY),
			})
		}
	}

	return g, nil
}

// Tiles returns all tiles in row-major order.
// The returned slice must not be modified.
func (g *TileGrid) Tiles() []Tile {
	return g.tiles
}

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int { return len(g.tiles) }

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int { return g.tilesX }

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int { return g.tilesY }

// Side returns the nominal tile side.
func (g *TileGrid) Side() int { return g.side }
