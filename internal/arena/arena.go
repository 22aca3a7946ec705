// Package arena provides a bump-pointer scratch allocator for convolution windows.
//
// An Arena owns one contiguous, 32-byte aligned region. Allocations are carved
// off the front of the region by advancing a single offset; there is no way to
// free an individual block. The only reclamation primitives are Reset, which
// rewinds the offset in O(1) without touching memory, and Release, which drops
// the region entirely.
//
// The pipeline sizes each arena for exactly one window of the configured kernel
// size and resets it once per image row, so the allocation pattern is a single
// fixed-size block reused thousands of times.
//
// Thread safety: Arena is NOT safe for concurrent use. Each worker owns its arena.
package arena

import (
	"errors"
	"fmt"
	"unsafe"
)

// Alignment is the byte boundary every block is rounded to.
// 32 bytes matches a 256-bit vector register.
const Alignment = 32

// MaxCapacity bounds the region size accepted by New.
const MaxCapacity = 1 << 30

// Arena errors.
var (
	// ErrInvalidCapacity is returned when New is called with a non-positive or oversized capacity.
	ErrInvalidCapacity = errors.New("arena: invalid capacity")

	// ErrInvalidSize is returned when an allocation of non-positive size is requested.
	ErrInvalidSize = errors.New("arena: invalid allocation size")

	// ErrOutOfCapacity is returned when an allocation would move the offset past the region.
	ErrOutOfCapacity = errors.New("arena: out of capacity")

	// ErrReleased is returned when allocating from an arena after Release.
	ErrReleased = errors.New("arena: released")
)

// Arena is a bump allocator over one aligned memory region.
type Arena struct {
	// buf is the aligned region. len(buf) is the capacity.
	buf []byte

	// off is the next free byte. Always a multiple of Alignment and <= len(buf).
	off int
}

// AlignSize rounds size up to the next multiple of Alignment.
func AlignSize(size int) int {
	return (size + Alignment - 1) &^ (Alignment - 1)
}

// New creates an arena able to hold capacity bytes.
// The capacity is rounded up to Alignment and the base address is aligned.
func New(capacity int) (*Arena, error) {
	if capacity <= 0 || capacity > MaxCapacity {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidCapacity, capacity)
	}
	capacity = AlignSize(capacity)

	// Over-allocate so the aligned window always fits.
	raw := make([]byte, capacity+Alignment-1)
	start := alignOffset(raw)

	return &Arena{
		buf: raw[start : start+capacity : start+capacity],
	}, nil
}

// alignOffset returns how many leading bytes of b must be skipped so that the
// remaining slice starts on an Alignment boundary.
func alignOffset(b []byte) int {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return int((Alignment - addr%Alignment) % Alignment)
}

// Allocate returns a block of size bytes from the arena.
// The offset advances by size rounded up to Alignment, so the next block is
// aligned as well. The returned slice has length size.
//
// Allocation never grows the region: running out of capacity is reported as
// ErrOutOfCapacity and indicates the arena was sized incorrectly.
func (a *Arena) Allocate(size int) ([]byte, error) {
	if a.buf == nil {
		return nil, ErrReleased
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidSize, size)
	}

	aligned := AlignSize(size)
	if aligned > len(a.buf)-a.off {
		return nil, fmt.Errorf("%w: requested %d bytes, %d available",
			ErrOutOfCapacity, aligned, len(a.buf)-a.off)
	}

	block := a.buf[a.off : a.off+size : a.off+aligned]
	a.off += aligned
	return block, nil
}

// AllocateFloat32 returns an aligned block holding n float32 values.
// Contents are whatever the region held before; callers overwrite every entry.
func (a *Arena) AllocateFloat32(n int) ([]float32, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d floats", ErrInvalidSize, n)
	}
	block, err := a.Allocate(n * 4)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(block))), n), nil
}

// Reset rewinds the arena to its base in O(1).
// Memory contents are left untouched; previously returned blocks must not be used.
func (a *Arena) Reset() {
	a.off = 0
}

// Release drops the region. Subsequent allocations return ErrReleased.
// Calling Release more than once is safe.
func (a *Arena) Release() {
	a.buf = nil
	a.off = 0
}

// Cap returns the total capacity in bytes (0 after Release).
func (a *Arena) Cap() int {
	return len(a.buf)
}

// Used returns the number of bytes handed out since the last Reset.
func (a *Arena) Used() int {
	return a.off
}

// Available returns the number of bytes that can still be allocated.
func (a *Arena) Available() int {
	return len(a.buf) - a.off
}
