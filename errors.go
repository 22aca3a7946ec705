package convolve

import "errors"

// Errors returned by filter calls.
var (
	// ErrUnknownFilter is returned for a filter name or value that is not recognized.
	ErrUnknownFilter = errors.New("convolve: unknown filter")

	// ErrUnknownIntensity is returned for an intensity label or value that is not recognized.
	ErrUnknownIntensity = errors.New("convolve: unknown intensity")

	// ErrInvalidDimensions is returned when image width or height is not positive.
	ErrInvalidDimensions = errors.New("convolve: invalid image dimensions")

	// ErrNilImage is returned when a nil image is passed.
	ErrNilImage = errors.New("convolve: nil image")

	// ErrSizeMismatch is returned when input and output images differ in size.
	ErrSizeMismatch = errors.New("convolve: image sizes differ")

	// ErrGreyOutput is returned by ApplyFilter for filters that produce a
	// single-channel image; use Greyscale or SobelEdges instead.
	ErrGreyOutput = errors.New("convolve: filter produces a greyscale image")

	// ErrInvalidConfig is returned when the options cannot fit the kernel.
	ErrInvalidConfig = errors.New("convolve: invalid configuration")
)
