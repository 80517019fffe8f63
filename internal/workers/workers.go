package workers

import (
	"context"
	"sync"
)

// Workers aggregates background workers so the entrypoint can start and
// stop them as one unit.
type Workers struct {
	workers []Worker
}

// NewWorkers builds an aggregate over the given workers.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Run starts every worker in its own goroutine and blocks until all of them
// have returned after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(wk Worker) {
			defer wg.Done()
			wk.Run(ctx)
		}(worker)
	}
	wg.Wait()
}
