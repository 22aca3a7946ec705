package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"testing"
)

// testPattern returns a small opaque RGBA image with distinct channel values.
func testPattern() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 12))
	for y := range 12 {
		for x := range 16 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 20), B: 128, A: 255})
		}
	}
	return img
}

// maxDiff reports the largest per-channel difference between two images.
func maxDiff(a, b image.Image) int {
	d := 0
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r1, g1, b1, _ := a.At(x, y).RGBA()
			r2, g2, b2, _ := b.At(x, y).RGBA()
			for _, pair := range [][2]uint32{{r1, r2}, {g1, g2}, {b1, b2}} {
				diff := int(pair[0]>>8) - int(pair[1]>>8)
				if diff < 0 {
					diff = -diff
				}
				d = max(d, diff)
			}
		}
	}
	return d
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		fileType FileType
		maxDiff  int
	}{
		{PNG, 0},
		{BMP, 0},
		{JPG, 24},
	}

	src := testPattern()
	for _, tt := range tests {
		t.Run(tt.fileType.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, tt.fileType); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			got, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("Bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			if d := maxDiff(src, got); d > tt.maxDiff {
				t.Errorf("max channel difference %d, want <= %d", d, tt.maxDiff)
			}
		})
	}
}

func TestEncodeWritesOnlyOneFormat(t *testing.T) {
	src := testPattern()

	var jpg bytes.Buffer
	if err := Encode(&jpg, src, JPG); err != nil {
		t.Fatal(err)
	}

	data := jpg.Bytes()
	if !bytes.HasPrefix(data, []byte{0xFF, 0xD8}) {
		t.Error("JPEG output does not start with SOI marker")
	}
	if !bytes.HasSuffix(data, []byte{0xFF, 0xD9}) {
		t.Error("JPEG output has trailing data after EOI marker")
	}
}

func TestEncodeJPEGFullQuality(t *testing.T) {
	src := testPattern()

	var got, want bytes.Buffer
	if err := Encode(&got, src, JPG); err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(&want, src, &jpeg.Options{Quality: 100}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Bytes(), want.Bytes()) {
		t.Error("JPEG output differs from a quality 100 encode")
	}
}

func TestEncodeUnsupported(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testPattern(), FileType(7)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for unsupported type", buf.Len())
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := testPattern()

	for _, ft := range []FileType{PNG, JPG, BMP} {
		path := filepath.Join(dir, "out."+ft.String())
		if err := Save(path, src, ft); err != nil {
			t.Fatalf("Save(%v) failed: %v", ft, err)
		}
		img, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%v) failed: %v", ft, err)
		}
		if img.Bounds() != src.Bounds() {
			t.Errorf("%v: Bounds = %v", ft, img.Bounds())
		}
	}
}

func TestLoadNotFound(t *testing.T) {
	if _, err := Load("/nonexistent/path/image.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadBytes(t *testing.T) {
	if _, err := LoadBytes(nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("LoadBytes(nil) error = %v, want ErrEmptyData", err)
	}
	if _, err := LoadBytes([]byte("not an image")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("LoadBytes(garbage) error = %v, want ErrUnsupportedFormat", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, testPattern(), PNG); err != nil {
		t.Fatal(err)
	}
	img, err := LoadBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("width = %d, want 16", img.Bounds().Dx())
	}
}

func BenchmarkEncodePNG(b *testing.B) {
	src := testPattern()
	var buf bytes.Buffer

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		buf.Reset()
		_ = Encode(&buf, src, PNG)
	}
}
