package conv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/convolve/internal/arena"
	"github.com/gogpu/convolve/internal/filter"
	"github.com/gogpu/convolve/internal/parallel"
	"github.com/gogpu/convolve/internal/plane"
	"github.com/gogpu/convolve/internal/window"
)

// DefaultCacheBudget is the tile side plus halo, in samples, used when
// Config.CacheBudget is zero.
const DefaultCacheBudget = 64

// Pipeline errors.
var (
	// ErrNilArgument is returned when a plane or the kernel is nil.
	ErrNilArgument = errors.New("conv: nil plane or kernel")

	// ErrPlaneMismatch is returned when input and output sizes differ.
	ErrPlaneMismatch = errors.New("conv: input and output planes differ in size")

	// ErrPlaneAliased is returned when input and output share samples.
	ErrPlaneAliased = errors.New("conv: input and output planes share memory")

	// ErrTileTooSmall is returned when the cache budget leaves no room for
	// a tile after subtracting the kernel halo.
	ErrTileTooSmall = errors.New("conv: cache budget too small for kernel")

	// ErrTileFailed wraps the first failure recorded by any tile.
	ErrTileFailed = errors.New("conv: tile processing failed")
)

// Config controls one ApplyToPlane run.
type Config struct {
	// CacheBudget is the tile side plus both halos, in samples.
	// Zero selects DefaultCacheBudget.
	CacheBudget int

	// Workers is the worker count of the pool created when Pool is nil.
	// Zero or negative selects GOMAXPROCS.
	Workers int

	// Pool executes the tiles. When nil a pool is created and closed
	// for the duration of the call.
	Pool *parallel.WorkerPool

	// Logger receives tile plan and failure records. Nil discards them.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.CacheBudget == 0 {
		c.CacheBudget = DefaultCacheBudget
	}
	if c.Logger == nil {
		c.Logger = slog.New(nopHandler{})
	}
	return c
}

// nopHandler discards all records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// TileSide returns the tile side for a cache budget and kernel size:
// budget - 2*(kernelSize/2).
func TileSide(budget, kernelSize int) (int, error) {
	side := budget - 2*(kernelSize/2)
	if side <= 0 {
		return 0, fmt.Errorf("%w: budget %d, kernel %dx%d", ErrTileTooSmall, budget, kernelSize, kernelSize)
	}
	return side, nil
}

// newTileArena returns the scratch arena for one tile. Replaced in tests.
var newTileArena = func(_ parallel.Tile, kernelSize int) (*arena.Arena, error) {
	return arena.New(window.Bytes(kernelSize))
}

// failure is a set-once record of the first tile error.
type failure struct {
	set   atomic.Bool
	once  sync.Once
	first error
}

func (f *failure) record(err error) {
	f.once.Do(func() {
		f.first = err
		f.set.Store(true)
	})
}

func (f *failure) failed() bool { return f.set.Load() }

// ApplyToPlane convolves in with k and writes the result to out.
//
// in and out must have the same dimensions and must not share memory. in is
// only read; every sample of out is written exactly once on success. The
// result does not depend on the cache budget or the worker count.
func ApplyToPlane(in, out *plane.Plane, k *filter.Kernel, cfg Config) error {
	if in == nil || out == nil || k == nil {
		return ErrNilArgument
	}
	if !in.SameSize(out) {
		return fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrPlaneMismatch, in.Width(), in.Height(), out.Width(), out.Height())
	}
	if overlaps(in.Pix(), out.Pix()) {
		return ErrPlaneAliased
	}

	cfg = cfg.withDefaults()
	side, err := TileSide(cfg.CacheBudget, k.Size())
	if err != nil {
		return err
	}
	grid, err := parallel.NewTileGrid(in.Width(), in.Height(), side)
	if err != nil {
		return err
	}

	pool := cfg.Pool
	if pool == nil {
		pool = parallel.NewWorkerPool(cfg.Workers)
		defer pool.Close()
	}

	cfg.Logger.Debug("conv: tile plan",
		"width", in.Width(),
		"height", in.Height(),
		"kernel", k.Size(),
		"tiles", grid.TileCount(),
		"tileSide", grid.Side(),
		"tilesX", grid.TilesX(),
		"tilesY", grid.TilesY(),
		"workers", pool.Workers(),
		"lanes", Lanes())

	tiles := grid.Tiles()
	var f failure
	err = pool.ExecuteIndexed(len(tiles), func(i int) {
		if f.failed() {
			return
		}
		if err := processTile(in, out, k, tiles[i]); err != nil {
			f.record(fmt.Errorf("tile %d at (%d,%d): %w", i, tiles[i].MinX, tiles[i].MinY, err))
		}
	})
	if err != nil {
		return err
	}

	if f.failed() {
		cfg.Logger.Warn("conv: plane aborted", "err", f.first)
		return fmt.Errorf("%w: %w", ErrTileFailed, f.first)
	}
	return nil
}

// overlaps reports whether a and b share any byte of memory.
func overlaps(a, b []byte) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}

// processTile computes every output sample of tile t in row-major order.
func processTile(in, out *plane.Plane, k *filter.Kernel, t parallel.Tile) error {
	a, err := newTileArena(t, k.Size())
	if err != nil {
		return err
	}
	defer a.Release()

	weights := k.Entries()
	for y := t.MinY; y < t.MaxY(); y++ {
		w, err := window.New(a, in, t.MinX, y, k.Size())
		if err != nil {
			return err
		}

		row := out.Row(y)
		row[t.MinX] = ClampRound(dotImpl(weights, w.Entries()))
		for x := t.MinX + 1; x < t.MaxX(); x++ {
			w.ShiftRight(in, x, y)
			row[x] = ClampRound(dotImpl(weights, w.Entries()))
		}

		a.Reset()
	}
	return nil
}
