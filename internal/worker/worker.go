// Package worker provides a bounded pool for parallel image encoding.
//
// Decoding is inherently sequential (one decoder, one cursor), but encoding
// decoded frames to PNG or JPEG is CPU-bound and independent per frame. The
// pool lets the decode loop run ahead while workers write, with a semaphore
// bounding how many decoded frames sit in memory at once.
package worker

import (
	"runtime"
	"sync"
)

// WriteJob is one decoded frame awaiting image encoding.
type WriteJob struct {
	Index  int
	Path   string
	Data   []byte // packed RGB24
	Width  int
	Height int
}

// WriteResult reports one finished write.
type WriteResult struct {
	Index int
	Path  string
	Bytes uint64
	Err   error
}

// WriteFunc encodes and writes a single frame, returning the output size.
type WriteFunc func(job WriteJob) (uint64, error)

// Pool runs WriteJobs across a fixed set of workers.
type Pool struct {
	jobs    chan WriteJob
	results chan WriteResult
	wg      sync.WaitGroup
}

// NewPool starts workers goroutines executing fn. workers <= 0 uses the CPU
// count. Results must be drained or the pool stalls.
func NewPool(workers int, fn WriteFunc) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := &Pool{
		jobs:    make(chan WriteJob, workers),
		results: make(chan WriteResult, workers),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				n, err := fn(job)
				p.results <- WriteResult{Index: job.Index, Path: job.Path, Bytes: n, Err: err}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(p.results)
	}()

	return p
}

// Submit queues a job. It blocks when all workers are busy and the queue is
// full.
func (p *Pool) Submit(job WriteJob) {
	p.jobs <- job
}

// Close signals that no more jobs are coming. The results channel closes
// after the last job finishes.
func (p *Pool) Close() {
	close(p.jobs)
}

// Results returns the channel of finished writes.
func (p *Pool) Results() <-chan WriteResult {
	return p.results
}

// Semaphore provides a counting semaphore for controlling concurrency.
// It bounds the number of decoded frames in flight to prevent memory
// exhaustion on large pictures.
type Semaphore struct {
	permits chan struct{}
}

// NewSemaphore creates a new semaphore with the given number of permits.
func NewSemaphore(count int) *Semaphore {
	if count <= 0 {
		count = 1
	}
	s := &Semaphore{
		permits: make(chan struct{}, count),
	}
	for i := 0; i < count; i++ {
		s.permits <- struct{}{}
	}
	return s
}

// Acquire takes a permit, blocking until one is available.
func (s *Semaphore) Acquire() {
	<-s.permits
}

// Release returns a permit to the semaphore.
func (s *Semaphore) Release() {
	select {
	case s.permits <- struct{}{}:
	default:
		// Semaphore is full, this shouldn't happen in normal use
	}
}

// Progress represents extraction progress information.
type Progress struct {
	FramesComplete int
	FramesTotal    int
	BytesComplete  uint64
}

// Percent returns the completion percentage.
func (p Progress) Percent() float64 {
	if p.FramesTotal == 0 {
		return 0
	}
	return float64(p.FramesComplete) / float64(p.FramesTotal) * 100
}
