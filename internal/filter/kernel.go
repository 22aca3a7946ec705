package filter

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/convolve/internal/cache"
)

// Kernel errors.
var (
	// ErrInvalidFamily is returned for an unknown filter family.
	ErrInvalidFamily = errors.New("filter: invalid kernel family")

	// ErrInvalidIntensity is returned for an unknown intensity level.
	ErrInvalidIntensity = errors.New("filter: invalid intensity")

	// ErrInvalidKernelSize is returned when a kernel size is even or below 3.
	ErrInvalidKernelSize = errors.New("filter: kernel size must be odd and >= 3")

	// ErrWeightCount is returned when the weight slice does not hold size*size entries.
	ErrWeightCount = errors.New("filter: weight count does not match kernel size")

	// ErrInvalidSigma is returned for a non-positive Gaussian standard deviation.
	ErrInvalidSigma = errors.New("filter: sigma must be positive")
)

// Family identifies how kernel coefficients are computed.
type Family uint8

const (
	// Gaussian is a normalized 2-D Gaussian blur.
	Gaussian Family = iota

	// Box is a normalized uniform blur.
	Box

	// Sharpen is the 3x3 unsharp stencil.
	Sharpen

	// Emboss is the 3x3 directional relief stencil.
	Emboss

	// SobelHorizontal detects horizontal edges (vertical gradient).
	SobelHorizontal

	// SobelVertical detects vertical edges (horizontal gradient).
	SobelVertical

	familyCount
)

var familyNames = [familyCount]string{
	Gaussian:        "gaussian",
	Box:             "box",
	Sharpen:         "sharpen",
	Emboss:          "emboss",
	SobelHorizontal: "sobel-horizontal",
	SobelVertical:   "sobel-vertical",
}

// IsValid reports whether f is a known family.
func (f Family) IsValid() bool { return f < familyCount }

// String returns the family name.
func (f Family) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
	return familyNames[f]
}

// Intensity is the discrete strength level of a filter.
type Intensity uint8

const (
	// Light is the weakest level.
	Light Intensity = iota

	// Medium is the default level.
	Medium

	// High is the strongest level.
	High

	intensityCount
)

var intensityNames = [intensityCount]string{
	Light:  "light",
	Medium: "medium",
	High:   "high",
}

// IsValid reports whether i is a known intensity.
func (i Intensity) IsValid() bool { return i < intensityCount }

// String returns the intensity name.
func (i Intensity) String() string {
	if !i.IsValid() {
		return fmt.Sprintf("Intensity(%d)", uint8(i))
	}
	return intensityNames[i]
}

// Per-intensity parameters, indexed by Intensity.
var (
	gaussianSizes  = [intensityCount]int{5, 13, 19}
	gaussianSigmas = [intensityCount]float64{1, 2, 3}
	boxSizes       = [intensityCount]int{5, 9, 13}

	detailScales = [intensityCount]float32{1.0, 1.25, 1.5}
	embossScales = [intensityCount]float32{0.85, 1.05, 1.25}
)

// 3x3 stencils in row-major order.
var (
	sharpenStencil = [9]float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	}
	embossStencil = [9]float32{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	}
	sobelHorizontalStencil = [9]float32{
		1, 2, 1,
		0, 0, 0,
		-1, -2, -1,
	}
	sobelVerticalStencil = [9]float32{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	}
)

// Kernel is an immutable square weight matrix.
// Kernels are safe for concurrent use by any number of workers.
type Kernel struct {
	size    int
	weights []float32
}

// NewKernel builds the kernel for a filter family at the given intensity.
//
// Gaussian and box kernels are normalized to sum to 1. Sharpen, emboss and
// Sobel kernels are fixed 3x3 stencils scaled per intensity and are not
// normalized.
func NewKernel(family Family, intensity Intensity) (*Kernel, error) {
	if !family.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFamily, uint8(family))
	}
	if !intensity.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIntensity, uint8(intensity))
	}

	switch family {
	case Gaussian:
		return GaussianKernel(gaussianSizes[intensity], gaussianSigmas[intensity])
	case Box:
		return BoxKernel(boxSizes[intensity])
	case Sharpen:
		return scaledStencil(sharpenStencil, detailScales[intensity]), nil
	case Emboss:
		return scaledStencil(embossStencil, embossScales[intensity]), nil
	case SobelHorizontal:
		return scaledStencil(sobelHorizontalStencil, detailScales[intensity]), nil
	default: // SobelVertical
		return scaledStencil(sobelVerticalStencil, detailScales[intensity]), nil
	}
}

// NewKernelFromWeights builds a kernel from explicit row-major weights.
// The weights are copied.
func NewKernelFromWeights(size int, weights []float32) (*Kernel, error) {
	if size < 3 || size%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKernelSize, size)
	}
	if len(weights) != size*size {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrWeightCount, len(weights), size*size)
	}

	k := &Kernel{size: size, weights: make([]float32, len(weights))}
	copy(k.weights, weights)
	return k, nil
}

// GaussianKernel generates a size x size 2-D Gaussian kernel with standard
// deviation sigma. Each entry is the Gaussian density at its offset from the
// centre; the matrix is normalized so all entries sum to 1.0.
func GaussianKernel(size int, sigma float64) (*Kernel, error) {
	if size < 3 || size%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKernelSize, size)
	}

	half := size / 2
	twoSigmaSq := 2 * sigma * sigma
	norm := 1 / (math.Pi * twoSigmaSq)

	// Accumulate in float64 and narrow once normalized.
	values := make([]float64, size*size)
	sum := 0.0
	for j := -half; j <= half; j++ {
		for i := -half; i <= half; i++ {
			v := norm * math.Exp(-float64(i*i+j*j)/twoSigmaSq)
			values[(j+half)*size+(i+half)] = v
			sum += v
		}
	}

	k := &Kernel{size: size, weights: make([]float32, size*size)}
	for i, v := range values {
		k.weights[i] = float32(v / sum)
	}
	return k, nil
}

// BoxKernel generates a size x size uniform kernel with every entry 1/size².
func BoxKernel(size int) (*Kernel, error) {
	if size < 3 || size%2 == 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKernelSize, size)
	}

	k := &Kernel{size: size, weights: make([]float32, size*size)}
	val := float32(1.0 / float64(size*size))
	for i := range k.weights {
		k.weights[i] = val
	}
	return k, nil
}

// scaledStencil returns a 3x3 kernel equal to stencil multiplied by scale.
func scaledStencil(stencil [9]float32, scale float32) *Kernel {
	k := &Kernel{size: 3, weights: make([]float32, 9)}
	for i, v := range stencil {
		k.weights[i] = v * scale
	}
	return k
}

// Size returns the side length N.
func (k *Kernel) Size() int { return k.size }

// Halo returns the number of samples the kernel reaches past its centre (N/2).
func (k *Kernel) Halo() int { return k.size / 2 }

// Len returns the number of weights (N²).
func (k *Kernel) Len() int { return len(k.weights) }

// Entries returns the row-major weights without copying.
// The slice must not be modified.
func (k *Kernel) Entries() []float32 { return k.weights }

// Weights returns a copy of the row-major weights.
func (k *Kernel) Weights() []float32 {
	w := make([]float32, len(k.weights))
	copy(w, k.weights)
	return w
}

// At returns the weight at column col and row row.
func (k *Kernel) At(col, row int) float32 {
	return k.weights[row*k.size+col]
}

// Sum returns the sum of all weights, accumulated in float64.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, w := range k.weights {
		sum += float64(w)
	}
	return sum
}

// presetKey identifies a preset kernel.
type presetKey struct {
	family    Family
	intensity Intensity
}

// gaussianKey identifies a custom Gaussian kernel.
type gaussianKey struct {
	size  int
	sigma float64
}

// GaussianCacheCapacity bounds the number of custom Gaussian kernels kept.
const GaussianCacheCapacity = 64

// Kernels are immutable, so one cached instance is shared by every caller.
var (
	presetCache   = cache.New[presetKey, *Kernel](0)
	gaussianCache = cache.New[gaussianKey, *Kernel](GaussianCacheCapacity)
)

// CachedKernel returns the shared preset kernel for family and intensity.
// This avoids recomputing Gaussian coefficients on every filter call.
func CachedKernel(family Family, intensity Intensity) (*Kernel, error) {
	return presetCache.GetOrCreate(presetKey{family, intensity}, func() (*Kernel, error) {
		return NewKernel(family, intensity)
	})
}

// CachedGaussian returns a shared Gaussian kernel for size and sigma.
// The least recently used kernels are dropped past GaussianCacheCapacity.
func CachedGaussian(size int, sigma float64) (*Kernel, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigma, sigma)
	}
	return gaussianCache.GetOrCreate(gaussianKey{size, sigma}, func() (*Kernel, error) {
		return GaussianKernel(size, sigma)
	})
}
