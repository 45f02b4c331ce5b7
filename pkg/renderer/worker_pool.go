package renderer

import (
	"math/rand"
	"sync"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row FrameRow
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Y     int
	Stats RenderStats
}

// rowRenderer samples every pixel of a row into its view
type rowRenderer struct {
	pixels *pixelSampler
	seed   int64
	logger core.Logger
}

// renderRow reseeds random from the row index so the output does not depend
// on which worker picks up the row
func (rr *rowRenderer) renderRow(row FrameRow, random *rand.Rand) RenderStats {
	random.Seed(rr.seed + int64(row.Y))
	sampler := core.NewRandomSampler(random)

	var stats RenderStats
	for x := range row.Color {
		ps := rr.pixels.samplePixel(x, row.Y, sampler)
		row.Color[x] = ps.GetColor()
		row.Normal[x] = ps.GetNormal()
		row.Albedo[x] = ps.GetAlbedo()
		stats.addPixel(&ps)
	}

	if row.Y%50 == 0 {
		rr.logger.Printf("Line: %d\n", row.Y)
	}
	return stats
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	rows        *rowRenderer
	random      *rand.Rand
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers
// and room for every row of the frame
func NewWorkerPool(rows *rowRenderer, numRows, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, numRows),
		resultQueue: make(chan RowResult, numRows),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			rows:        rows,
			random:      rand.New(rand.NewSource(rows.seed)),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop waits for queued rows to finish and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- RowResult{
			Y:     task.Row.Y,
			Stats: w.rows.renderRow(task.Row, w.random),
		}
	}
}
