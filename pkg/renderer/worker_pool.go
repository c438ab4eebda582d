package renderer

import (
	"runtime"
	"sync"
)

// RowBand is a contiguous range of image rows [Start, End)
type RowBand struct {
	Start int
	End   int
}

// Bands splits height rows into numWorkers contiguous, disjoint bands.
// The last band absorbs the remainder when height is not evenly divisible.
func Bands(height, numWorkers int) []RowBand {
	if height <= 0 {
		return nil
	}
	numWorkers = max(1, min(numWorkers, height))

	rowsPerBand := height / numWorkers
	bands := make([]RowBand, numWorkers)
	for k := range bands {
		bands[k] = RowBand{Start: k * rowsPerBand, End: (k + 1) * rowsPerBand}
	}
	bands[numWorkers-1].End = height

	return bands
}

// WorkerPool runs one worker per row band and joins them
type WorkerPool struct {
	workers    []*Worker
	numWorkers int
	wg         sync.WaitGroup
}

// Worker renders a single row band
type Worker struct {
	ID        int
	Band      RowBand
	raytracer *Raytracer
	samples   int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(raytracer *Raytracer, height, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{}
	for i, band := range Bands(height, numWorkers) {
		wp.workers = append(wp.workers, &Worker{
			ID:        i,
			Band:      band,
			raytracer: raytracer,
		})
	}
	wp.numWorkers = len(wp.workers)

	return wp
}

// Run starts every worker on img and waits for all of them to finish.
// Bands never overlap, so workers write the shared image without locking.
func (wp *WorkerPool) Run(img *Image) int {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(img, &wp.wg)
	}
	wp.wg.Wait()

	total := 0
	for _, worker := range wp.workers {
		total += worker.samples
	}
	return total
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run renders the worker's band
func (w *Worker) run(img *Image, wg *sync.WaitGroup) {
	defer wg.Done()
	w.samples = w.raytracer.RenderRows(img, w.Band.Start, w.Band.End)
}
