package interpolate

import (
	"runtime"
)

// NumCores is the number of goroutines used to build 2D and 3D splines.
var NumCores = runtime.NumCPU()

// lineErr is the result reported by a single worker: the first item it failed
// on, or -1.
type lineErr struct {
	item int
	err  error
}

// forEach calls job(i) for every i in [0, n). The items are divided between
// NumCores workers, with worker id handling items id, id + workers, ... in
// increasing order. newJob is called once per worker, so the job it returns
// can own scratch buffers. Jobs must only write to memory owned by their own
// items.
//
// If any job fails, the error for the smallest failing item is returned.
func forEach(n int, newJob func() func(i int) error) error {
	workers := NumCores
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	out := make(chan lineErr, workers)
	for id := 0; id < workers; id++ {
		go chanJob(id, workers, n, newJob, out)
	}

	first := lineErr{item: -1}
	for i := 0; i < workers; i++ {
		res := <-out
		if res.err != nil && (first.err == nil || res.item < first.item) {
			first = res
		}
	}
	return first.err
}

func chanJob(
	id, workers, n int, newJob func() func(i int) error, out chan<- lineErr,
) {
	job := newJob()
	for i := id; i < n; i += workers {
		if err := job(i); err != nil {
			out <- lineErr{i, err}
			return
		}
	}
	out <- lineErr{item: -1}
}
