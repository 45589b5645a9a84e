package systems

import (
	"runtime"
	"sync"
)

// Below this many items the fan-out overhead outweighs the work; run inline.
const minParallelItems = 128

// parallelChunks splits [0, n) into one contiguous range per worker and
// runs fn on each range concurrently. Ranges never overlap, so fn may
// freely mutate the items it was handed without locking.
func parallelChunks(n int, fn func(start, end int)) {
	parallelChunksIndexed(n, func(_, start, end int) {
		fn(start, end)
	})
}

// parallelChunksIndexed is parallelChunks with the worker index exposed,
// for callers that keep per-worker state such as an RNG.
func parallelChunksIndexed(n int, fn func(worker, start, end int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if n < minParallelItems || workers < 2 {
		fn(0, 0, n)
		return
	}
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= n {
			break
		}
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			fn(w, start, end)
		}(w, start, end)
	}
	wg.Wait()
}
