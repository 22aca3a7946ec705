// Command convolve applies a convolution filter to an image file.
//
// Usage:
//
//	convolve -input photo.jpg -output blurred.png -filter gaussian -intensity high
//
// The output encoding follows the -output extension (.png, .jpg/.jpeg, .bmp).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/convolve"
	imageio "github.com/gogpu/convolve/internal/image"
)

// config is the validated command line.
type config struct {
	input       string
	output      string
	outputType  imageio.FileType
	filter      convolve.Filter
	intensity   convolve.Intensity
	workers     int
	cacheBudget int
	verbose     bool
}

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "convolve: %v\n", err)
		}
		os.Exit(1)
	}
}

// parseFlags reads and validates args. Nothing is loaded until the whole
// configuration is known to be valid.
func parseFlags(args []string, stderr io.Writer) (config, error) {
	fs := flag.NewFlagSet("convolve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		input       = fs.String("input", "", "input image (png, jpg, bmp, webp)")
		output      = fs.String("output", "", "output image (png, jpg, bmp)")
		filterName  = fs.String("filter", "gaussian", "gaussian, box, sharpen, emboss, sobel or greyscale")
		intensity   = fs.String("intensity", "medium", "light, medium or high")
		workers     = fs.Int("workers", 0, "worker goroutines (0 = GOMAXPROCS)")
		cacheBudget = fs.Int("cache-budget", 64, "tile side plus kernel halo, in samples")
		verbose     = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if *input == "" || *output == "" {
		fs.Usage()
		return config{}, fmt.Errorf("%w: -input and -output are required", errUsage)
	}

	cfg := config{
		input:       *input,
		output:      *output,
		workers:     *workers,
		cacheBudget: *cacheBudget,
		verbose:     *verbose,
	}

	var err error
	if cfg.filter, err = convolve.ParseFilter(*filterName); err != nil {
		return config{}, err
	}
	if cfg.intensity, err = convolve.ParseIntensity(*intensity); err != nil {
		return config{}, err
	}
	if cfg.outputType, err = imageio.FileTypeFromPath(*output); err != nil {
		return config{}, fmt.Errorf("output: %w", err)
	}
	if cfg.cacheBudget <= 0 {
		return config{}, fmt.Errorf("%w: cache budget %d", convolve.ErrInvalidConfig, cfg.cacheBudget)
	}
	return cfg, nil
}

func run(args []string, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	convolve.SetLogger(logger)

	src, err := imageio.Load(cfg.input)
	if err != nil {
		return err
	}
	img, err := convolve.FromImage(src)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := convolve.Apply(img, cfg.filter, cfg.intensity,
		convolve.WithWorkers(cfg.workers),
		convolve.WithCacheBudget(cfg.cacheBudget))
	if err != nil {
		return err
	}
	logger.Info("filter applied",
		"filter", cfg.filter.String(),
		"intensity", cfg.intensity.String(),
		"width", img.Width(),
		"height", img.Height(),
		"elapsed", time.Since(start))

	if err := imageio.Save(cfg.output, out, cfg.outputType); err != nil {
		return err
	}
	logger.Info("saved", "path", cfg.output, "type", cfg.outputType.String())
	return nil
}
