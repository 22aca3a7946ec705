// Package plane provides the single-channel sample buffer the convolution engine
// reads from and writes to.
//
// A Plane is one color or intensity channel of an image: width*height bytes in
// row-major order. Planes are usually non-owning views into a larger image
// buffer (see FromBytes), so several planes can share one allocation.
package plane

import (
	"errors"
	"fmt"
)

// Plane errors.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("plane: invalid dimensions")

	// ErrDataTooSmall is returned when the backing slice is shorter than width*height.
	ErrDataTooSmall = errors.New("plane: data buffer too small")
)

// Plane is one channel of row-major byte samples.
//
// Thread safety: concurrent reads are safe. Concurrent writes are safe only
// when they target disjoint sample indices.
type Plane struct {
	width  int
	height int
	pix    []byte
}

// New allocates a zeroed plane of the given size.
func New(width, height int) (*Plane, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Plane{
		width:  width,
		height: height,
		pix:    make([]byte, width*height),
	}, nil
}

// FromBytes wraps pix as a plane without copying.
// Only the first width*height bytes are used.
func FromBytes(width, height int, pix []byte) (*Plane, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	n := width * height
	if len(pix) < n {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrDataTooSmall, len(pix), n)
	}
	return &Plane{
		width:  width,
		height: height,
		pix:    pix[:n:n],
	}, nil
}

// Width returns the plane width in samples.
func (p *Plane) Width() int { return p.width }

// Height returns the plane height in samples.
func (p *Plane) Height() int { return p.height }

// Pix returns the underlying samples. Index (x, y) lives at y*Width()+x.
func (p *Plane) Pix() []byte { return p.pix }

// Len returns the number of samples.
func (p *Plane) Len() int { return len(p.pix) }

// SameSize reports whether p and other have identical dimensions.
func (p *Plane) SameSize(other *Plane) bool {
	return p.width == other.width && p.height == other.height
}

// InBounds reports whether (x, y) lies inside [0,width)x[0,height).
func (p *Plane) InBounds(x, y int) bool {
	return x >= 0 && x < p.width && y >= 0 && y < p.height
}

// At returns the sample at (x, y), or 0 when the coordinate is out of bounds.
func (p *Plane) At(x, y int) byte {
	if !p.InBounds(x, y) {
		return 0
	}
	return p.pix[y*p.width+x]
}

// Set writes the sample at (x, y). Out-of-bounds writes are ignored.
func (p *Plane) Set(x, y int, v byte) {
	if !p.InBounds(x, y) {
		return
	}
	p.pix[y*p.width+x] = v
}

// Row returns the samples of row y.
func (p *Plane) Row(y int) []byte {
	start := y * p.width
	return p.pix[start : start+p.width]
}

// Fill sets every sample to v.
func (p *Plane) Fill(v byte) {
	for i := range p.pix {
		p.pix[i] = v
	}
}
