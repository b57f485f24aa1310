package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces
type Result interface {
	Err() error
}

// Pool runs jobs on a fixed number of goroutines. Results are collected
// as they arrive so Submit never blocks on unread results.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	collected []Result
	wg        sync.WaitGroup
	collector sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	jobsOnce  sync.Once
	closeOnce sync.Once
}

// NewPool creates a pool bound to ctx. Cancelling ctx stops the workers
// after their current job.
func NewPool(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers: workers,
		jobs:    make(chan Job, workers*2),
		results: make(chan Result, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers and the result collector
func (p *Pool) Start() {
	p.collector.Add(1)
	go func() {
		defer p.collector.Done()
		for result := range p.results {
			p.collected = append(p.collected, result)
		}
	}()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.results <- job.Execute(p.ctx)
		}
	}
}

// Submit queues job. It returns false if the pool was cancelled first.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobs <- job:
		return true
	}
}

// Wait closes the queue, waits for queued jobs to finish and returns
// their results in completion order
func (p *Pool) Wait() []Result {
	p.closeJobs()
	p.wg.Wait()
	p.closeResults()
	p.collector.Wait()
	p.cancel()
	return p.collected
}

func (p *Pool) closeJobs() {
	p.jobsOnce.Do(func() {
		close(p.jobs)
	})
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
