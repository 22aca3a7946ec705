package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// JPEGQuality is the quality used for every JPEG encode.
const JPEGQuality = 100

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// Load reads and decodes the image file at path.
// The format is detected from the content, not the extension.
func Load(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadBytes decodes an image held in memory.
func LoadBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode decodes a PNG, JPEG, BMP or WebP image from r.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
		}
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// Save encodes img as t and writes it to path.
func Save(path string, img image.Image, t FileType) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, img, t); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Encode writes img to w in exactly the encoding t names.
func Encode(w io.Writer, img image.Image, t FileType) error {
	var err error
	switch t {
	case PNG:
		err = png.Encode(w, img)
	case JPG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, t)
	}
	if err != nil {
		return fmt.Errorf("image: encode %v: %w", t, err)
	}
	return nil
}
