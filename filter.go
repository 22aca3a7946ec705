package convolve

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gogpu/convolve/internal/conv"
	"github.com/gogpu/convolve/internal/filter"
	"github.com/gogpu/convolve/internal/plane"
	"github.com/gogpu/convolve/internal/wide"
)

// Filter selects an image operation.
type Filter uint8

const (
	// FilterGaussian is a normalized Gaussian blur.
	FilterGaussian Filter = iota

	// FilterBox is a normalized uniform blur.
	FilterBox

	// FilterSharpen is the 3x3 sharpen stencil.
	FilterSharpen

	// FilterEmboss is the 3x3 emboss stencil.
	FilterEmboss

	// FilterSobel is Sobel edge detection on the luma channel.
	FilterSobel

	// FilterGreyscale is luma conversion without convolution.
	FilterGreyscale

	filterCount
)

var filterNames = [filterCount]string{
	FilterGaussian:  "gaussian",
	FilterBox:       "box",
	FilterSharpen:   "sharpen",
	FilterEmboss:    "emboss",
	FilterSobel:     "sobel",
	FilterGreyscale: "greyscale",
}

// kernelFamilies maps the single-kernel RGB filters to their kernel family.
var kernelFamilies = map[Filter]filter.Family{
	FilterGaussian: filter.Gaussian,
	FilterBox:      filter.Box,
	FilterSharpen:  filter.Sharpen,
	FilterEmboss:   filter.Emboss,
}

// String returns the filter name accepted by ParseFilter.
func (f Filter) String() string {
	if f >= filterCount {
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
	return filterNames[f]
}

// Intensity is the strength level of a filter.
type Intensity = filter.Intensity

// Intensity levels.
const (
	Light  = filter.Light
	Medium = filter.Medium
	High   = filter.High
)

// Kernel is an immutable square convolution kernel.
type Kernel = filter.Kernel

// NewKernel creates a custom kernel from size*size row-major weights.
// size must be odd and at least 3.
func NewKernel(size int, weights []float32) (*Kernel, error) {
	return filter.NewKernelFromWeights(size, weights)
}

// GaussianKernel returns a normalized size x size Gaussian kernel with
// standard deviation sigma, for use with ApplyRGB. Kernels are cached by
// (size, sigma) and must not be modified.
func GaussianKernel(size int, sigma float64) (*Kernel, error) {
	return filter.CachedGaussian(size, sigma)
}

// fold normalizes a user supplied label for lookup.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// ParseFilter returns the filter with the given name.
// Matching is case-insensitive; "grayscale" is accepted as "greyscale".
func ParseFilter(name string) (Filter, error) {
	key := fold(name)
	if key == "grayscale" {
		return FilterGreyscale, nil
	}
	for f, n := range filterNames {
		if n == key {
			return Filter(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// ParseIntensity returns the intensity with the given label
// ("light", "medium" or "high"). Matching is case-insensitive.
func ParseIntensity(label string) (Intensity, error) {
	key := fold(label)
	for i := Light; i.IsValid(); i++ {
		if i.String() == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntensity, label)
}

// ApplyFilter returns a new image with a Gaussian, box, sharpen or emboss
// filter applied to each channel. The input is not modified.
func ApplyFilter(img *ImageRGB, f Filter, in Intensity, opts ...Option) (*ImageRGB, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if !in.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownIntensity, in)
	}
	family, ok := kernelFamilies[f]
	if !ok {
		if f == FilterSobel || f == FilterGreyscale {
			return nil, fmt.Errorf("%w: %v", ErrGreyOutput, f)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnknownFilter, f)
	}

	k, err := filter.CachedKernel(family, in)
	if err != nil {
		return nil, err
	}

	out, err := NewImageRGB(img.width, img.height)
	if err != nil {
		return nil, err
	}

	Logger().Debug("convolve: apply filter",
		"filter", f.String(),
		"intensity", in.String(),
		"kernel", k.Size(),
		"width", img.width,
		"height", img.height)

	if err := applyRGB(img, out, k, buildOptions(opts)); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyRGB convolves every channel of in with k and writes the result to out.
// in and out must have the same size and must be distinct images.
func ApplyRGB(in, out *ImageRGB, k *Kernel, opts ...Option) error {
	if in == nil || out == nil {
		return ErrNilImage
	}
	if k == nil {
		return fmt.Errorf("%w: nil kernel", ErrInvalidConfig)
	}
	if !in.SameSize(out) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, in.width, in.height, out.width, out.height)
	}
	return applyRGB(in, out, k, buildOptions(opts))
}

func applyRGB(in, out *ImageRGB, k *Kernel, o options) error {
	r := newRunner(o)
	defer r.close()

	src, dst := in.planes(), out.planes()
	for c := range src {
		if err := r.run(src[c], dst[c], k); err != nil {
			return fmt.Errorf("convolve: channel %d: %w", c, err)
		}
	}
	return nil
}

// run convolves one plane on the runner's pool.
func (r *runner) run(in, out *plane.Plane, k *Kernel) error {
	err := conv.ApplyToPlane(in, out, k, r.cfg)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, conv.ErrTileTooSmall), errors.Is(err, conv.ErrPlaneAliased):
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	default:
		return err
	}
}

// Luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Greyscale returns the luma of img: 0.299 R + 0.587 G + 0.114 B, clamped
// to [0, 255] and rounded half away from zero.
func Greyscale(img *ImageRGB) (*ImageGray, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	out, err := NewImageGray(img.width, img.height)
	if err != nil {
		return nil, err
	}

	r, g, b := img.red.Pix(), img.green.Pix(), img.blue.Pix()
	dst := out.p.Pix()

	wr, wg, wb := wide.SplatF32(lumaR), wide.SplatF32(lumaG), wide.SplatF32(lumaB)
	n := len(dst)
	i := 0
	for ; i+wide.Lanes <= n; i += wide.Lanes {
		y := wide.LoadBytes(r[i:]).Mul(wr)
		y = wide.LoadBytes(g[i:]).MulAdd(wg, y)
		y = wide.LoadBytes(b[i:]).MulAdd(wb, y)
		y.Clamp(0, 255).Round().StoreBytes(dst[i:])
	}
	for ; i < n; i++ {
		dst[i] = conv.ClampRound(luma(r[i], g[i], b[i]))
	}
	return out, nil
}

// luma is the scalar form of one Greyscale sample.
func luma(r, g, b uint8) float32 {
	y := float32(r) * lumaR
	y = float32(g)*lumaG + y
	y = float32(b)*lumaB + y
	return y
}

// SobelEdges returns the Sobel gradient magnitude of img's luma.
//
// The horizontal and vertical Sobel kernels are applied to the greyscale
// image separately; each result is clamped and rounded, and the output
// sample is sqrt(h*h + v*v), clamped and rounded again.
func SobelEdges(img *ImageRGB, in Intensity, opts ...Option) (*ImageGray, error) {
	if !in.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownIntensity, in)
	}
	grey, err := Greyscale(img)
	if err != nil {
		return nil, err
	}
	kh, err := filter.CachedKernel(filter.SobelHorizontal, in)
	if err != nil {
		return nil, err
	}
	kv, err := filter.CachedKernel(filter.SobelVertical, in)
	if err != nil {
		return nil, err
	}

	w, h := img.width, img.height
	horiz, err := plane.New(w, h)
	if err != nil {
		return nil, err
	}
	vert, err := plane.New(w, h)
	if err != nil {
		return nil, err
	}

	r := newRunner(buildOptions(opts))
	defer r.close()

	if err := r.run(grey.p, horiz, kh); err != nil {
		return nil, fmt.Errorf("convolve: sobel horizontal: %w", err)
	}
	if err := r.run(grey.p, vert, kv); err != nil {
		return nil, fmt.Errorf("convolve: sobel vertical: %w", err)
	}

	out, err := NewImageGray(w, h)
	if err != nil {
		return nil, err
	}
	magnitude(horiz.Pix(), vert.Pix(), out.p.Pix())
	return out, nil
}

// magnitude writes ClampRound(sqrt(a*a + b*b)) for each sample pair.
func magnitude(a, b, dst []byte) {
	n := len(dst)
	i := 0
	for ; i+wide.Lanes <= n; i += wide.Lanes {
		va, vb := wide.LoadBytes(a[i:]), wide.LoadBytes(b[i:])
		sq := va.Mul(va)
		sq = vb.MulAdd(vb, sq)
		sq.Sqrt().Clamp(0, 255).Round().StoreBytes(dst[i:])
	}
	for ; i < n; i++ {
		fa, fb := float32(a[i]), float32(b[i])
		sq := fb*fb + fa*fa
		dst[i] = conv.ClampRound(float32(math.Sqrt(float64(sq))))
	}
}

// Apply runs any filter and returns the result as a standard image:
// *image.RGBA for the RGB filters and *image.Gray for greyscale and Sobel.
func Apply(img *ImageRGB, f Filter, in Intensity, opts ...Option) (image.Image, error) {
	switch f {
	case FilterGreyscale:
		g, err := Greyscale(img)
		if err != nil {
			return nil, err
		}
		return g.ToImage(), nil
	case FilterSobel:
		g, err := SobelEdges(img, in, opts...)
		if err != nil {
			return nil, err
		}
		return g.ToImage(), nil
	default:
		out, err := ApplyFilter(img, f, in, opts...)
		if err != nil {
			return nil, err
		}
		return out.ToImage(), nil
	}
}
