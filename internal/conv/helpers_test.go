package conv

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/convolve/internal/filter"
	"github.com/gogpu/convolve/internal/plane"
)

// randomPlane returns a plane filled with deterministic pseudo-random samples.
func randomPlane(t testing.TB, w, h int, seed uint64) *plane.Plane {
	t.Helper()
	p, err := plane.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range p.Pix() {
		p.Pix()[i] = byte(r.IntN(256))
	}
	return p
}

// flatPlane returns a w x h plane with every sample set to v.
func flatPlane(t testing.TB, w, h int, v byte) *plane.Plane {
	t.Helper()
	p, err := plane.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	p.Fill(v)
	return p
}

// newOut returns a zeroed output plane matching in.
func newOut(t testing.TB, in *plane.Plane) *plane.Plane {
	t.Helper()
	p, err := plane.New(in.Width(), in.Height())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// referenceConvolve computes the convolution one sample at a time with a
// freshly gathered zero-padded neighbourhood for every sample.
func referenceConvolve(in *plane.Plane, k *filter.Kernel) *plane.Plane {
	out, _ := plane.New(in.Width(), in.Height())
	size, half := k.Size(), k.Halo()
	entries := make([]float32, size*size)

	for y := range in.Height() {
		for x := range in.Width() {
			i := 0
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					entries[i] = float32(in.At(x+dx, y+dy))
					i++
				}
			}
			out.Set(x, y, ClampRound(Dot(k.Entries(), entries)))
		}
	}
	return out
}

// mustKernel returns the preset kernel or fails the test.
func mustKernel(t testing.TB, f filter.Family, i filter.Intensity) *filter.Kernel {
	t.Helper()
	k, err := filter.NewKernel(f, i)
	if err != nil {
		t.Fatal(err)
	}
	return k
}
