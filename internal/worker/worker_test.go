package worker

import (
	goerrors "errors"
	"fmt"
	"sync"
	"testing"
)

func TestPoolRunsAllJobs(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]bool{}

	pool := NewPool(4, func(job WriteJob) (uint64, error) {
		mu.Lock()
		seen[job.Index] = true
		mu.Unlock()
		return uint64(len(job.Data)), nil
	})

	done := make(chan struct{})
	var results []WriteResult
	go func() {
		defer close(done)
		for res := range pool.Results() {
			results = append(results, res)
		}
	}()

	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(WriteJob{Index: i, Path: fmt.Sprintf("frame_%06d.png", i), Data: make([]byte, i)})
	}
	pool.Close()
	<-done

	if len(results) != jobs {
		t.Fatalf("got %d results, want %d", len(results), jobs)
	}
	for i := 0; i < jobs; i++ {
		if !seen[i] {
			t.Errorf("job %d never ran", i)
		}
	}
	var total uint64
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("job %d: unexpected error %v", res.Index, res.Err)
		}
		total += res.Bytes
	}
	if want := uint64(jobs * (jobs - 1) / 2); total != want {
		t.Errorf("total bytes = %d, want %d", total, want)
	}
}

func TestPoolReportsErrors(t *testing.T) {
	wantErr := goerrors.New("disk full")
	pool := NewPool(2, func(job WriteJob) (uint64, error) {
		if job.Index%2 == 1 {
			return 0, wantErr
		}
		return 1, nil
	})

	done := make(chan struct{})
	var failures int
	go func() {
		defer close(done)
		for res := range pool.Results() {
			if res.Err != nil {
				if !goerrors.Is(res.Err, wantErr) {
					t.Errorf("job %d: error = %v, want %v", res.Index, res.Err, wantErr)
				}
				failures++
			}
		}
	}()

	for i := 0; i < 10; i++ {
		pool.Submit(WriteJob{Index: i})
	}
	pool.Close()
	<-done

	if failures != 5 {
		t.Errorf("got %d failures, want 5", failures)
	}
}

func TestPoolDefaultsWorkerCount(t *testing.T) {
	pool := NewPool(0, func(WriteJob) (uint64, error) { return 0, nil })
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range pool.Results() {
		}
	}()
	pool.Submit(WriteJob{Index: 0})
	pool.Close()
	<-done
}

func TestSemaphore(t *testing.T) {
	sem := NewSemaphore(2)

	sem.Acquire()
	sem.Acquire()

	acquired := make(chan struct{})
	go func() {
		sem.Acquire()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("third acquire should block with two permits held")
	default:
	}

	sem.Release()
	<-acquired
}

func TestSemaphoreReleaseWhenFull(t *testing.T) {
	sem := NewSemaphore(1)
	// Releasing without holding a permit must not block or panic.
	sem.Release()
	sem.Acquire()
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name     string
		complete int
		total    int
		want     float64
	}{
		{"zero total", 0, 0, 0},
		{"halfway", 50, 100, 50},
		{"complete", 30, 30, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Progress{FramesComplete: tt.complete, FramesTotal: tt.total}
			if got := p.Percent(); got != tt.want {
				t.Errorf("Percent() = %v, want %v", got, tt.want)
			}
		})
	}
}
