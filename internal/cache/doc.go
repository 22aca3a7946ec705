// Package cache provides a generic, size-bounded LRU cache.
//
// The convolution engine uses it to share immutable kernels between filter
// calls: preset kernels are built once per (family, intensity), and custom
// Gaussian kernels are kept by (size, sigma) up to a fixed capacity.
//
//	c := cache.New[string, *Kernel](64)
//	k, err := c.GetOrCreate("g13", func() (*Kernel, error) { return build() })
//
// # Thread Safety
//
// Cache is safe for concurrent use. It must not be copied after creation
// (it contains a mutex).
package cache
