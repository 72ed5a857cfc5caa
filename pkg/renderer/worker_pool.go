package renderer

import (
	"runtime"
	"sync"
)

// PixelTask identifies one pixel of the output buffer
type PixelTask struct {
	Index int // Row-major index into the output buffer
	X, Y  int // Column and row, row 0 at the top
}

// WorkerPool runs pixel tasks on a fixed number of goroutines
type WorkerPool struct {
	taskQueue  chan PixelTask
	numWorkers int
	wg         sync.WaitGroup
	process    func(PixelTask)
}

// NewWorkerPool creates a worker pool. numWorkers <= 0 uses one worker per CPU.
// process must only write state owned by the task it is given.
func NewWorkerPool(numWorkers, queueSize int, process func(PixelTask)) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &WorkerPool{
		taskQueue:  make(chan PixelTask, queueSize),
		numWorkers: numWorkers,
		process:    process,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run()
	}
}

// SubmitTask queues a pixel task, blocking while the queue is full
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// Stop waits for every submitted task to finish. No tasks may be submitted afterwards.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run() {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.process(task)
	}
}
