package rates

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type FetchPoolI interface {
	Submit(ctx context.Context, symbol string, fetch func() error) error
	Close()
}

// fetchJob is one symbol refresh queued by a poll cycle.
type fetchJob struct {
	symbol string
	fetch  func() error
}

// FetchPool fans quote refreshes out over a fixed set of workers so one slow
// provider call does not stall the whole cycle. Failures are logged per
// symbol; the stale quote stays in the snapshot until the next cycle.
type FetchPool struct {
	jobs chan fetchJob
	wg   sync.WaitGroup
}

func NewFetchPool(size int) *FetchPool {
	fp := &FetchPool{jobs: make(chan fetchJob, size)}
	for i := 0; i < size; i++ {
		fp.wg.Add(1)
		go fp.worker()
	}
	return fp
}

func (fp *FetchPool) worker() {
	defer fp.wg.Done()
	for job := range fp.jobs {
		if err := job.fetch(); err != nil {
			zap.L().Error("quote refresh failed", zap.String("symbol", job.symbol), zap.Error(err))
		}
	}
}

func (fp *FetchPool) Submit(ctx context.Context, symbol string, fetch func() error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case fp.jobs <- fetchJob{symbol: symbol, fetch: fetch}:
		return nil
	}
}

// Close stops accepting jobs and waits for in-flight refreshes to finish.
func (fp *FetchPool) Close() {
	close(fp.jobs)
	fp.wg.Wait()
}
