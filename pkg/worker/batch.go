package worker

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/geofeed/validator/pkg/result"
)

// Func validates a single source.
type Func func(ctx context.Context, source string) (*result.ValidationResult, error)

// BatchValidator runs a Func over many sources.
type BatchValidator struct {
	validate Func
	workers  int
}

// NewBatchValidator creates a batch validator. workers <= 0 means one per CPU.
func NewBatchValidator(validate Func, workers int) *BatchValidator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchValidator{
		validate: validate,
		workers:  workers,
	}
}

// Workers returns the configured number of workers.
func (bv *BatchValidator) Workers() int { return bv.workers }

// ValidateBatch validates sources in parallel. Once ctx is done no new jobs
// are started.
func (bv *BatchValidator) ValidateBatch(ctx context.Context, sources []string) *BatchResult {
	if len(sources) == 0 {
		return &BatchResult{Results: make([]*JobResult, 0)}
	}

	// Small batches are not worth the goroutines.
	if len(sources) <= 2 || bv.workers == 1 {
		return bv.validateSequential(ctx, sources)
	}
	return bv.validateParallel(ctx, sources)
}

func (bv *BatchValidator) validateSequential(ctx context.Context, sources []string) *BatchResult {
	br := &BatchResult{
		Results:   make([]*JobResult, len(sources)),
		TotalJobs: len(sources),
	}
	for i, src := range sources {
		if ctx.Err() != nil {
			break
		}
		br.add(i, bv.run(ctx, src))
	}
	return br
}

func (bv *BatchValidator) validateParallel(ctx context.Context, sources []string) *BatchResult {
	numWorkers := min(bv.workers, len(sources))

	jobs := make(chan int)
	done := make(chan indexedResult, len(sources))

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for range numWorkers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				done <- indexedResult{index: i, result: bv.run(ctx, sources[i])}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range sources {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	br := &BatchResult{
		Results:   make([]*JobResult, len(sources)),
		TotalJobs: len(sources),
	}
	for ir := range done {
		br.add(ir.index, ir.result)
	}
	return br
}

func (bv *BatchValidator) run(ctx context.Context, source string) *JobResult {
	start := time.Now()
	jr := &JobResult{Source: source}
	if bv.validate == nil {
		jr.Error = ErrNoValidator
	} else {
		jr.Result, jr.Error = bv.validate(ctx, source)
	}
	jr.Duration = time.Since(start)
	return jr
}

func (br *BatchResult) add(i int, jr *JobResult) {
	br.Results[i] = jr
	br.CompletedJobs++
	br.TotalDuration += jr.Duration
	if jr.Error != nil {
		br.FailedJobs++
	}
}

type indexedResult struct {
	index  int
	result *JobResult
}

// ErrNoValidator is returned when the batch validator has no Func.
var ErrNoValidator = batchError("no validator configured")

type batchError string

func (e batchError) Error() string {
	return string(e)
}
