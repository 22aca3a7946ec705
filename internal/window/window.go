// Package window extracts the square neighbourhood a convolution kernel is
// applied to.
//
// A Window holds size*size float32 samples in row-major order, centred on a
// plane coordinate. Samples that fall outside the plane are zero (zero
// padding; never clamped or wrapped). Window memory comes from an arena and is
// never freed individually.
//
// Scanning a row left to right, ShiftRight reuses size*size-size samples of the
// previous window and fetches only the new rightmost column.
package window

import (
	"errors"
	"fmt"

	"github.com/gogpu/convolve/internal/arena"
	"github.com/gogpu/convolve/internal/plane"
)

// ErrInvalidSize is returned for even window sizes or sizes below 3.
var ErrInvalidSize = errors.New("window: size must be odd and >= 3")

// Window is a live size x size neighbourhood of a plane.
type Window struct {
	size    int
	half    int
	entries []float32
}

// Bytes returns the arena bytes one window of the given size occupies.
// Arenas backing a single window are sized with this value.
func Bytes(size int) int {
	return arena.AlignSize(size * size * 4)
}

// ValidSize reports whether size is a usable window size.
func ValidSize(size int) bool {
	return size >= 3 && size%2 == 1
}

// New allocates a window from a and fills it with the neighbourhood of p
// centred at (cx, cy).
func New(a *arena.Arena, p *plane.Plane, cx, cy, size int) (*Window, error) {
	if !ValidSize(size) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	entries, err := a.AllocateFloat32(size * size)
	if err != nil {
		return nil, fmt.Errorf("window: allocate %dx%d: %w", size, size, err)
	}

	w := &Window{
		size:    size,
		half:    size / 2,
		entries: entries,
	}
	w.fill(p, cx, cy)
	return w, nil
}

// fill recomputes every entry for the centre (cx, cy).
func (w *Window) fill(p *plane.Plane, cx, cy int) {
	width, height := p.Width(), p.Height()
	pix := p.Pix()

	i := 0
	for y := cy - w.half; y <= cy+w.half; y++ {
		rowInside := y >= 0 && y < height
		for x := cx - w.half; x <= cx+w.half; x++ {
			if rowInside && x >= 0 && x < width {
				w.entries[i] = float32(pix[y*width+x])
			} else {
				w.entries[i] = 0
			}
			i++
		}
	}
}

// ShiftRight moves the window centre from (newCX-1, cy) to (newCX, cy).
//
// Each row's columns 1..size-1 are moved to 0..size-2 and the new rightmost
// column is read from p (or zero-padded) for all size rows. The caller must
// call ShiftRight with strictly increasing newCX along a row.
func (w *Window) ShiftRight(p *plane.Plane, newCX, cy int) {
	size := w.size
	width, height := p.Width(), p.Height()
	pix := p.Pix()

	for row := 0; row < size; row++ {
		start := row * size
		copy(w.entries[start:start+size-1], w.entries[start+1:start+size])
	}

	x := newCX + w.half
	colInside := x >= 0 && x < width
	i := size - 1
	for y := cy - w.half; y <= cy+w.half; y++ {
		if colInside && y >= 0 && y < height {
			w.entries[i] = float32(pix[y*width+x])
		} else {
			w.entries[i] = 0
		}
		i += size
	}
}

// Size returns the window side length.
func (w *Window) Size() int { return w.size }

// Entries returns the row-major samples. The slice aliases arena memory.
func (w *Window) Entries() []float32 { return w.entries }

// At returns the sample at window column col and row row.
func (w *Window) At(col, row int) float32 {
	return w.entries[row*w.size+col]
}
