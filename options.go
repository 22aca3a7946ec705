package convolve

import (
	"github.com/gogpu/convolve/internal/conv"
	"github.com/gogpu/convolve/internal/parallel"
)

// Option configures a filter call.
// Use functional options to customize how the work is split.
//
// Example:
//
//	// Default: GOMAXPROCS workers, 64-sample cache budget
//	out, err := convolve.ApplyFilter(img, convolve.FilterBox, convolve.High)
//
//	// Four workers, smaller tiles
//	out, err := convolve.ApplyFilter(img, convolve.FilterBox, convolve.High,
//	    convolve.WithWorkers(4), convolve.WithCacheBudget(32))
type Option func(*options)

// options holds optional configuration for a filter call.
type options struct {
	workers     int
	cacheBudget int
}

// defaultOptions returns the default filter options.
func defaultOptions() options {
	return options{
		workers:     0, // GOMAXPROCS
		cacheBudget: conv.DefaultCacheBudget,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets the number of worker goroutines.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithCacheBudget sets the tile side plus twice the kernel halo, in samples.
// The kernel of every channel run must fit: a budget not larger than twice
// the halo fails with an error wrapping ErrInvalidConfig.
func WithCacheBudget(n int) Option {
	return func(o *options) {
		o.cacheBudget = n
	}
}

// runner executes the plane runs of one filter call on a shared pool.
type runner struct {
	pool *parallel.WorkerPool
	cfg  conv.Config
}

func newRunner(o options) *runner {
	pool := parallel.NewWorkerPool(o.workers)
	return &runner{
		pool: pool,
		cfg: conv.Config{
			CacheBudget: o.cacheBudget,
			Pool:        pool,
			Logger:      Logger(),
		},
	}
}

func (r *runner) close() { r.pool.Close() }
