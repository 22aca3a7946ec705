// Package convolve applies convolution filters to raster images on the CPU.
//
// # Overview
//
// An image is held as three planar channels in one buffer. Each filter runs
// the same square kernel over every channel independently; a channel is
// split into cache-sized tiles that are processed in parallel. Output always
// has the input's dimensions, and samples outside the image read as zero.
//
// # Quick Start
//
//	import "github.com/gogpu/convolve"
//
//	img, err := convolve.FromImage(src)
//	if err != nil {
//	    return err
//	}
//	blurred, err := convolve.ApplyFilter(img, convolve.FilterGaussian, convolve.Medium)
//	if err != nil {
//	    return err
//	}
//	png.Encode(w, blurred.ToImage())
//
// # Filters
//
// Gaussian and box blurs are normalized; sharpen and emboss are 3x3
// stencils scaled by intensity. Sobel edge detection converts to
// greyscale, runs the horizontal and vertical stencils and combines them as
// a gradient magnitude. Custom kernels go through ApplyRGB.
//
// # Configuration
//
// WithWorkers sets the worker count and WithCacheBudget the tile side plus
// kernel halo. Neither changes the output, only how the work is split.
//
// # Logging
//
// The package is silent by default. Call SetLogger to receive tile plans
// at debug level and failures at warn level.
package convolve
