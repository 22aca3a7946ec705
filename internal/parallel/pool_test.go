package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		if pool.Workers() != runtime.GOMAXPROCS(0) {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want GOMAXPROCS", n, pool.Workers())
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll / ExecuteIndexed Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	if err := pool.ExecuteAll(work); err != nil {
		t.Fatalf("ExecuteAll error = %v", err)
	}
	if counter.Load() != 100 {
		t.Errorf("counter = %d, want 100", counter.Load())
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	if err := pool.ExecuteAll(nil); err != nil {
		t.Errorf("ExecuteAll(nil) error = %v", err)
	}
}

func TestWorkerPool_ExecuteIndexed(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	const n = 257
	hits := make([]int32, n)
	err := pool.ExecuteIndexed(n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, h := range hits {
		if h != 1 {
			t.Errorf("index %d ran %d times, want 1", i, h)
		}
	}
}

func TestWorkerPool_ExecuteAll_WaitsForSlowWork(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var done atomic.Int32
	work := []func(){
		func() { time.Sleep(20 * time.Millisecond); done.Add(1) },
		func() { done.Add(1) },
	}
	if err := pool.ExecuteAll(work); err != nil {
		t.Fatal(err)
	}
	if done.Load() != 2 {
		t.Errorf("ExecuteAll returned before all work finished: done = %d", done.Load())
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after Close")
	}
}

func TestWorkerPool_OperationsAfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	ran := false
	if err := pool.ExecuteAll([]func(){func() { ran = true }}); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("ExecuteAll after Close error = %v, want ErrPoolClosed", err)
	}
	if err := pool.ExecuteIndexed(3, func(int) { ran = true }); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("ExecuteIndexed after Close error = %v, want ErrPoolClosed", err)
	}
	if ran {
		t.Error("work ran on a closed pool")
	}
}

func TestWorkerPool_BlockedItemDoesNotStallOthers(t *testing.T) {
	pool := NewWorkerPool(2)

	var counter atomic.Int32
	block := make(chan struct{})
	done := make(chan error)
	go func() {
		done <- pool.ExecuteIndexed(6, func(i int) {
			if i == 0 {
				<-block
			}
			counter.Add(1)
		})
	}()

	// The other worker runs (or steals) every remaining item.
	for counter.Load() < 5 {
		time.Sleep(time.Millisecond)
	}
	close(block)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	pool.Close()

	if counter.Load() != 6 {
		t.Errorf("counter = %d, want 6", counter.Load())
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_ConcurrentExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 50)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			if err := pool.ExecuteAll(work); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if counter.Load() != 400 {
		t.Errorf("counter = %d, want 400", counter.Load())
	}
}

func TestWorkerPool_SingleWorker(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	// With one worker, items run sequentially in dispatch order.
	var order []int
	if err := pool.ExecuteIndexed(20, func(i int) { order = append(order, i) }); err != nil {
		t.Fatal(err)
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order[%d] = %d, want %d", i, v, i)
		}
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ExecuteIndexed(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = pool.ExecuteIndexed(256, func(int) {})
	}
}
