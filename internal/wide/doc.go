// Package wide provides SIMD-friendly wide types for the convolution engine.
//
// F32x8 holds 8 float32 lanes in a fixed-size array. Simple loops over the
// array let the Go compiler emit vector instructions on supported
// architectures (SSE, AVX, NEON) without assembly or unsafe.
//
// # Usage
//
//	// Dot product of two 8-aligned slices
//	acc := wide.SplatF32(0)
//	for i := 0; i+wide.Lanes <= len(a); i += wide.Lanes {
//	    acc = wide.LoadF32x8(a[i:]).MulAdd(wide.LoadF32x8(b[i:]), acc)
//	}
//	sum := acc.Sum()
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Keep functions small and inlineable
//   - Provide benchmarks to verify SIMD performance gains
package wide
