package conv

import (
	"math"

	"github.com/gogpu/convolve/internal/filter"
	"github.com/gogpu/convolve/internal/wide"
	"github.com/gogpu/convolve/internal/window"
)

// Dot returns the sum of a[i]*b[i] over the common length of a and b.
func Dot(a, b []float32) float32 {
	n := min(len(a), len(b))
	return dotImpl(a[:n], b[:n])
}

// dot8 accumulates 8 lanes per step.
func dot8(a, b []float32) float32 {
	n := len(a)
	b = b[:n]

	var acc wide.F32x8
	i := 0
	for ; i+wide.Lanes <= n; i += wide.Lanes {
		acc = wide.LoadF32x8(a[i:]).MulAdd(wide.LoadF32x8(b[i:]), acc)
	}

	sum := acc.Sum()
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// dot16 accumulates 16 lanes per step in two independent accumulators.
func dot16(a, b []float32) float32 {
	const step = 2 * wide.Lanes
	n := len(a)
	b = b[:n]

	var lo, hi wide.F32x8
	i := 0
	for ; i+step <= n; i += step {
		lo = wide.LoadF32x8(a[i:]).MulAdd(wide.LoadF32x8(b[i:]), lo)
		hi = wide.LoadF32x8(a[i+wide.Lanes:]).MulAdd(wide.LoadF32x8(b[i+wide.Lanes:]), hi)
	}

	sum := lo.Add(hi).Sum()
	for ; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// ClampRound converts an accumulated value to an output sample.
// The value is clamped to [0, 255] first and then rounded half away from
// zero. NaN maps to 0.
func ClampRound(v float32) uint8 {
	switch {
	case !(v >= 0): // also catches NaN
		return 0
	case v >= 255:
		return 255
	}
	return uint8(math.Round(float64(v)))
}

// Convolve returns the output sample for kernel k applied to window w.
// k and w must have the same size.
func Convolve(k *filter.Kernel, w *window.Window) uint8 {
	return ClampRound(dotImpl(k.Entries(), w.Entries()))
}
