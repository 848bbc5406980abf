package pagination

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// RunnerConfig holds batch runner configuration
type RunnerConfig struct {
	// MaxConcurrency is the maximum number of runs computed in parallel
	MaxConcurrency int
}

// DefaultRunnerConfig returns the default runner configuration
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		MaxConcurrency: 4,
	}
}

// Job is one independent pagination run, typically one category.
type Job struct {
	Config Config
	Items  []Item
}

// Result is the outcome of one Job.
type Result struct {
	// Index is the position of the job in the RunAll input
	Index   int
	Config  Config
	Windows []Window
	Err     error
}

// Runner computes independent pagination runs on a bounded worker pool.
type Runner struct {
	config RunnerConfig
}

// NewRunner creates a new batch runner
func NewRunner(config RunnerConfig) *Runner {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = DefaultRunnerConfig().MaxConcurrency
	}
	return &Runner{config: config}
}

// RunAll paginates every job and returns the results in job order.
// Jobs not yet started when ctx is cancelled get ctx.Err() as their error.
// The returned error is the first job error in job order, if any.
func (r *Runner) RunAll(ctx context.Context, jobs []Job) ([]Result, error) {
	start := time.Now()
	defer func() { runDuration.Observe(time.Since(start).Seconds()) }()

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i] = Result{Index: i, Config: job.Config}
	}
	if len(jobs) == 0 {
		return results, nil
	}

	// Single job optimization
	if len(jobs) == 1 {
		results[0] = runJob(ctx, 0, jobs[0])
		return results, results[0].Err
	}

	workers := min(r.config.MaxConcurrency, len(jobs))
	queue := make(chan int, len(jobs))
	for i := range jobs {
		queue <- i
	}
	close(queue)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go r.worker(ctx, jobs, queue, results, &wg, w)
	}
	wg.Wait()

	var firstErr error
	windows := 0
	for _, res := range results {
		windows += len(res.Windows)
		if res.Err != nil && firstErr == nil {
			firstErr = fmt.Errorf("run %d (%s): %w", res.Index, categoryLabel(res.Config.Category), res.Err)
		}
	}

	log.Debug().
		Int("runs", len(jobs)).
		Int("workers", workers).
		Int("windows", windows).
		Dur("duration", time.Since(start)).
		Msg("Pagination batch complete")

	return results, firstErr
}

// worker processes job indexes from the queue. Each index is written by
// exactly one worker, so results needs no lock.
func (r *Runner) worker(ctx context.Context, jobs []Job, queue <-chan int, results []Result, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	processed := 0

	for idx := range queue {
		select {
		case <-ctx.Done():
			results[idx].Err = ctx.Err()
			continue
		default:
		}

		results[idx] = runJob(ctx, idx, jobs[idx])
		processed++
	}

	if processed > 0 {
		log.Debug().
			Int("worker_id", workerID).
			Int("runs_processed", processed).
			Msg("Worker completed")
	}
}

func runJob(ctx context.Context, idx int, job Job) Result {
	res := Result{Index: idx, Config: job.Config}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	p, err := New(job.Config)
	if err != nil {
		res.Err = err
		return res
	}
	res.Windows, res.Err = p.Paginate(job.Items)
	return res
}
