// Package conv applies a convolution kernel to one image plane.
//
// Convolve computes a single output sample: the dot product of a kernel and
// a window of the same size, clamped to [0, 255] and rounded half away from
// zero. The dot product accumulates in 8-lane groups using wide.F32x8, or 16
// lanes (two accumulators) when the CPU reports AVX-512F.
//
// ApplyToPlane drives the whole plane. The plane is split into square tiles
// whose side is the cache budget minus twice the kernel halo. Each tile runs
// on a worker pool with its own arena; a row is produced by creating one
// window at the tile's first column and shifting it right for every other
// column.
//
// The first tile failure is kept and reported wrapped in ErrTileFailed.
// Tiles that have not started when a failure is recorded are skipped. The
// output plane must not be used after an error.
package conv
