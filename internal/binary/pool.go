package binary

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

// Pool runs blocking filesystem jobs off the caller's goroutine, at most
// size at a time. A Pool is safe for concurrent use.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool creates a pool of size workers. size <= 0 means runtime.NumCPU().
func NewPool(size int) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size))}
}

// Run executes job on a worker and waits for it. A panic in job is
// recovered and returned as an IoError against path. Once the job has
// started it runs to completion even if ctx is cancelled.
func (p *Pool) Run(ctx context.Context, path string, job func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				done <- errdefs.IO(path, fmt.Errorf("extraction job panicked: %v", r))
			}
		}()
		done <- job()
	}()

	return <-done
}
