package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/convolve"
	imageio "github.com/gogpu/convolve/internal/image"
)

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	cfg, err := parseFlags([]string{
		"-input", "in.png", "-output", "out.JPG",
		"-filter", "Sobel", "-intensity", "high", "-workers", "3",
	}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.filter != convolve.FilterSobel || cfg.intensity != convolve.High {
		t.Errorf("filter/intensity = %v/%v", cfg.filter, cfg.intensity)
	}
	if cfg.outputType != imageio.JPG || cfg.workers != 3 || cfg.cacheBudget != 64 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseFlagsRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing output", []string{"-input", "a.png"}, errUsage},
		{"unknown filter", []string{"-input", "a.png", "-output", "b.png", "-filter", "blur"}, convolve.ErrUnknownFilter},
		{"unknown intensity", []string{"-input", "a.png", "-output", "b.png", "-intensity", "max"}, convolve.ErrUnknownIntensity},
		{"output type", []string{"-input", "a.png", "-output", "b.gif"}, imageio.ErrUnsupportedFormat},
		{"cache budget", []string{"-input", "a.png", "-output", "b.png", "-cache-budget", "0"}, convolve.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if _, err := parseFlags(tt.args, &stderr); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")

	src := image.NewNRGBA(image.Rect(0, 0, 24, 16))
	for y := range 16 {
		for x := range 24 {
			src.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 15), B: 40, A: 255})
		}
	}
	if err := imageio.Save(in, src, imageio.PNG); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct{ filter, out string }{
		{"box", "box.bmp"},
		{"sobel", "sobel.png"},
		{"greyscale", "grey.jpg"},
	} {
		var stderr bytes.Buffer
		out := filepath.Join(dir, tc.out)
		if err := run([]string{"-input", in, "-output", out, "-filter", tc.filter}, &stderr); err != nil {
			t.Fatalf("%s: %v", tc.filter, err)
		}
		if !strings.Contains(stderr.String(), "filter applied") {
			t.Errorf("%s: missing elapsed-time log:\n%s", tc.filter, stderr.String())
		}

		img, err := imageio.Load(out)
		if err != nil {
			t.Fatalf("%s: %v", tc.filter, err)
		}
		if img.Bounds() != src.Bounds() {
			t.Errorf("%s: bounds = %v", tc.filter, img.Bounds())
		}
	}
}

func TestRunMissingInput(t *testing.T) {
	var stderr bytes.Buffer
	dir := t.TempDir()
	err := run([]string{"-input", filepath.Join(dir, "none.png"), "-output", filepath.Join(dir, "o.png")}, &stderr)
	if err == nil {
		t.Error("expected error for missing input")
	}
}
