package convolve

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/convolve/internal/plane"
)

// ImageRGB is an RGB image stored as three planar channels in one buffer.
//
// The red, green and blue channels are consecutive, non-overlapping
// width*height regions of the buffer. Each channel is filtered independently.
type ImageRGB struct {
	width  int
	height int
	pix    []byte

	red   *plane.Plane
	green *plane.Plane
	blue  *plane.Plane
}

// NewImageRGB creates a black image of the given size.
func NewImageRGB(width, height int) (*ImageRGB, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	n := width * height
	img := &ImageRGB{
		width:  width,
		height: height,
		pix:    make([]byte, 3*n),
	}

	views := []**plane.Plane{&img.red, &img.green, &img.blue}
	for c, view := range views {
		p, err := plane.FromBytes(width, height, img.pix[c*n:(c+1)*n])
		if err != nil {
			return nil, err
		}
		*view = p
	}
	return img, nil
}

// FromImage copies src into a new ImageRGB. Alpha is discarded.
func FromImage(src image.Image) (*ImageRGB, error) {
	if src == nil {
		return nil, ErrNilImage
	}
	bounds := src.Bounds()
	img, err := NewImageRGB(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	r, g, b := img.red.Pix(), img.green.Pix(), img.blue.Pix()

	switch s := src.(type) {
	case *image.NRGBA:
		for y := range img.height {
			row := s.Pix[y*s.Stride : y*s.Stride+img.width*4]
			for x := range img.width {
				i := y*img.width + x
				r[i], g[i], b[i] = row[x*4], row[x*4+1], row[x*4+2]
			}
		}
	case *image.RGBA:
		for y := range img.height {
			row := s.Pix[y*s.Stride : y*s.Stride+img.width*4]
			for x := range img.width {
				i := y*img.width + x
				px := row[x*4 : x*4+4 : x*4+4]
				if px[3] == 0xff {
					r[i], g[i], b[i] = px[0], px[1], px[2]
					continue
				}
				// Premultiplied: convert the way the NRGBA path stores it.
				c := color.NRGBAModel.Convert(color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]}).(color.NRGBA)
				r[i], g[i], b[i] = c.R, c.G, c.B
			}
		}
	default:
		for y := range img.height {
			for x := range img.width {
				c := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				i := y*img.width + x
				r[i], g[i], b[i] = c.R, c.G, c.B
			}
		}
	}
	return img, nil
}

// Width returns the image width in pixels.
func (img *ImageRGB) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *ImageRGB) Height() int { return img.height }

// Red returns the red channel, row-major. The slice aliases the image.
func (img *ImageRGB) Red() []byte { return img.red.Pix() }

// Green returns the green channel, row-major. The slice aliases the image.
func (img *ImageRGB) Green() []byte { return img.green.Pix() }

// Blue returns the blue channel, row-major. The slice aliases the image.
func (img *ImageRGB) Blue() []byte { return img.blue.Pix() }

// At returns the pixel at (x, y). Out-of-bounds reads return black.
func (img *ImageRGB) At(x, y int) (r, g, b uint8) {
	return img.red.At(x, y), img.green.At(x, y), img.blue.At(x, y)
}

// Set sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (img *ImageRGB) Set(x, y int, r, g, b uint8) {
	img.red.Set(x, y, r)
	img.green.Set(x, y, g)
	img.blue.Set(x, y, b)
}

// SameSize reports whether img and other have the same dimensions.
func (img *ImageRGB) SameSize(other *ImageRGB) bool {
	return img.width == other.width && img.height == other.height
}

// planes returns the channel planes in red, green, blue order.
func (img *ImageRGB) planes() [3]*plane.Plane {
	return [3]*plane.Plane{img.red, img.green, img.blue}
}

// ToImage returns an opaque *image.RGBA copy of the image.
func (img *ImageRGB) ToImage() *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
	r, g, b := img.red.Pix(), img.green.Pix(), img.blue.Pix()
	for y := range img.height {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+img.width*4]
		for x := range img.width {
			i := y*img.width + x
			row[x*4] = r[i]
			row[x*4+1] = g[i]
			row[x*4+2] = b[i]
			row[x*4+3] = 0xff
		}
	}
	return dst
}

// ImageGray is a single-channel image.
type ImageGray struct {
	p *plane.Plane
}

// NewImageGray creates a black greyscale image of the given size.
func NewImageGray(width, height int) (*ImageGray, error) {
	p, err := plane.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &ImageGray{p: p}, nil
}

// Width returns the image width in pixels.
func (img *ImageGray) Width() int { return img.p.Width() }

// Height returns the image height in pixels.
func (img *ImageGray) Height() int { return img.p.Height() }

// Pix returns the samples, row-major. The slice aliases the image.
func (img *ImageGray) Pix() []byte { return img.p.Pix() }

// At returns the sample at (x, y). Out-of-bounds reads return 0.
func (img *ImageGray) At(x, y int) uint8 { return img.p.At(x, y) }

// ToImage returns an *image.Gray copy of the image.
func (img *ImageGray) ToImage() *image.Gray {
	w, h := img.p.Width(), img.p.Height()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], img.p.Row(y))
	}
	return dst
}
