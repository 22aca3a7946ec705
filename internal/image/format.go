// Package image reads and writes the raster files the convolve tool works on.
//
// Decoding detects PNG, JPEG, BMP and WebP by content. Encoding writes exactly
// one format, chosen by FileType: PNG, JPEG (quality 100) or BMP.
package image

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileType identifies an output encoding.
type FileType uint8

const (
	// PNG is lossless PNG.
	PNG FileType = iota

	// JPG is baseline JPEG.
	JPG

	// BMP is uncompressed Windows bitmap.
	BMP

	// fileTypeCount is the number of file types (for internal use).
	fileTypeCount
)

var fileTypeNames = [fileTypeCount]string{
	PNG: "png",
	JPG: "jpg",
	BMP: "bmp",
}

// String returns the canonical extension without the dot.
func (t FileType) String() string {
	if t >= fileTypeCount {
		return fmt.Sprintf("FileType(%d)", uint8(t))
	}
	return fileTypeNames[t]
}

// IsValid reports whether t is a known file type.
func (t FileType) IsValid() bool { return t < fileTypeCount }

// FileTypeFromPath returns the file type for the extension of path.
// The match is case-insensitive; ".jpeg" is accepted as JPG.
func FileTypeFromPath(path string) (FileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPG, nil
	case ".bmp":
		return BMP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
