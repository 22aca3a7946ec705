// Package filter builds the convolution kernels used by the engine.
//
// A Kernel is an immutable odd-sized square weight matrix. Presets are
// selected by Family and Intensity:
//   - Gaussian blur: 5x5 (σ=1), 13x13 (σ=2), 19x19 (σ=3), normalized
//   - Box blur: 5x5, 9x9, 13x13, normalized
//   - Sharpen, emboss, Sobel horizontal/vertical: 3x3 stencils scaled per
//     intensity, not normalized (difference operators)
//
// Preset kernels (CachedKernel) and custom Gaussians (CachedGaussian) are
// cached and shared across workers.
package filter
