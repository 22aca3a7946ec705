package wide

import "math"

// Lanes is the number of float32 lanes in F32x8.
const Lanes = 8

// F32x8 represents 8 float32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
// One F32x8 maps onto a single 256-bit register (AVX2, or two NEON registers).
type F32x8 [8]float32

// SplatF32 creates F32x8 with all elements set to n.
func SplatF32(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// LoadF32x8 loads the first 8 elements of src.
// src must hold at least 8 elements.
func LoadF32x8(src []float32) F32x8 {
	var v F32x8
	copy(v[:], src[:Lanes])
	return v
}

// LoadBytes widens the first 8 bytes of src to float32.
func LoadBytes(src []byte) F32x8 {
	_ = src[Lanes-1] // bounds check hint
	var result F32x8
	for i := range result {
		result[i] = float32(src[i])
	}
	return result
}

// Store writes the 8 elements into dst.
func (v F32x8) Store(dst []float32) {
	copy(dst[:Lanes], v[:])
}

// Add performs element-wise addition.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// MulAdd returns v*a + acc per element.
// The compiler may fuse the multiply and add on targets with FMA.
func (v F32x8) MulAdd(a, acc F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i]*a[i] + acc[i]
	}
	return result
}

// Sum horizontally reduces the 8 lanes.
// Lanes are added pairwise (4+4, 2+2, 1+1), the same tree a
// hadd/permute sequence produces in hardware.
func (v F32x8) Sum() float32 {
	a0 := v[0] + v[4]
	a1 := v[1] + v[5]
	a2 := v[2] + v[6]
	a3 := v[3] + v[7]
	b0 := a0 + a2
	b1 := a1 + a3
	return b0 + b1
}

// Sqrt computes square root of each element.
// Negative values result in NaN according to IEEE 754.
func (v F32x8) Sqrt() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(math.Sqrt(float64(v[i])))
	}
	return result
}

// Clamp clamps each element to [minVal, maxVal].
func (v F32x8) Clamp(minVal, maxVal float32) F32x8 {
	var result F32x8
	for i := range v {
		switch {
		case v[i] < minVal:
			result[i] = minVal
		case v[i] > maxVal:
			result[i] = maxVal
		default:
			result[i] = v[i]
		}
	}
	return result
}

// Round rounds each element to the nearest integer, ties away from zero.
func (v F32x8) Round() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(math.Round(float64(v[i])))
	}
	return result
}

// StoreBytes narrows each element to a byte and writes 8 bytes into dst.
// Elements must already be clamped to [0, 255] and rounded.
func (v F32x8) StoreBytes(dst []byte) {
	_ = dst[Lanes-1] // bounds check hint
	for i := range v {
		dst[i] = byte(v[i])
	}
}
