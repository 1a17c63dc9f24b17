package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"netscript/pkg/ramcost"
	"netscript/pkg/script"
)

// CostJob asks for the RAM cost of one script of a server. Index is echoed
// in the result.
type CostJob struct {
	Index    int
	Script   script.Script
	Siblings []script.Script
}

// CostResult is the outcome of a CostJob.
type CostResult struct {
	Index    int
	Filename string
	Result   *ramcost.Result
	Err      error
	Duration time.Duration
	WorkerID int
}

// CostPoolStats reports the work done by a CostPool.
type CostPoolStats struct {
	WorkerCount   int
	TotalJobs     int64
	CompletedJobs int64
	FailedJobs    int64
	TotalTime     time.Duration
}

// CostPool computes RAM costs on a fixed number of goroutines. Results are
// delivered in completion order.
type CostPool struct {
	evaluator  *Evaluator
	progress   ramcost.Progression
	numWorkers int

	jobQueue   chan *CostJob
	resultChan chan *CostResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started int32 // atomic
	stopped int32 // atomic

	stats      CostPoolStats
	statsMutex sync.RWMutex
}

// NewCostPool creates a pool costing for p. numWorkers <= 0 uses one worker
// per CPU.
func (e *Evaluator) NewCostPool(p ramcost.Progression, numWorkers int) *CostPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &CostPool{evaluator: e, progress: p, numWorkers: numWorkers}
}

// Start launches the workers.
func (cp *CostPool) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&cp.started, 0, 1) {
		return fmt.Errorf("cost pool already started")
	}
	cp.ctx, cp.cancel = context.WithCancel(ctx)
	cp.jobQueue = make(chan *CostJob, cp.numWorkers)
	cp.resultChan = make(chan *CostResult, cp.numWorkers)
	cp.stats = CostPoolStats{WorkerCount: cp.numWorkers}

	for i := 0; i < cp.numWorkers; i++ {
		cp.wg.Add(1)
		go cp.work(i)
	}
	return nil
}

// Submit queues a job. It blocks while every worker is busy.
func (cp *CostPool) Submit(job *CostJob) error {
	if atomic.LoadInt32(&cp.started) == 0 {
		return fmt.Errorf("cost pool not started")
	}
	if atomic.LoadInt32(&cp.stopped) == 1 {
		return fmt.Errorf("cost pool stopped")
	}
	select {
	case cp.jobQueue <- job:
		cp.statsMutex.Lock()
		cp.stats.TotalJobs++
		cp.statsMutex.Unlock()
		return nil
	case <-cp.ctx.Done():
		return cp.ctx.Err()
	}
}

// Results returns the result channel. It is closed by Shutdown.
func (cp *CostPool) Results() <-chan *CostResult {
	return cp.resultChan
}

// Shutdown stops accepting jobs and waits for the queued ones to finish.
func (cp *CostPool) Shutdown() error {
	if !atomic.CompareAndSwapInt32(&cp.stopped, 0, 1) {
		return fmt.Errorf("cost pool already stopped")
	}
	close(cp.jobQueue)
	cp.wg.Wait()
	cp.cancel()
	close(cp.resultChan)
	return nil
}

// Stats returns a snapshot of the pool statistics.
func (cp *CostPool) Stats() CostPoolStats {
	cp.statsMutex.RLock()
	defer cp.statsMutex.RUnlock()
	return cp.stats
}

func (cp *CostPool) work(id int) {
	defer cp.wg.Done()
	for job := range cp.jobQueue {
		start := time.Now()
		res := &CostResult{Index: job.Index, Filename: job.Script.Filename, WorkerID: id}
		if err := cp.ctx.Err(); err != nil {
			res.Err = err
		} else {
			res.Result, res.Err = cp.evaluator.RamCost(cp.progress, job.Script.Filename, job.Script.Code, job.Siblings)
		}
		res.Duration = time.Since(start)

		cp.statsMutex.Lock()
		if res.Err != nil {
			cp.stats.FailedJobs++
		} else {
			cp.stats.CompletedJobs++
		}
		cp.stats.TotalTime += res.Duration
		cp.statsMutex.Unlock()

		cp.resultChan <- res
	}
}

// RamCostAll costs every script of a server against the others, using
// numWorkers goroutines. Results follow the order of scripts.
func (e *Evaluator) RamCostAll(ctx context.Context, p ramcost.Progression, scripts []script.Script, numWorkers int) ([]*CostResult, error) {
	pool := e.NewCostPool(p, numWorkers)
	if err := pool.Start(ctx); err != nil {
		return nil, err
	}

	results := make([]*CostResult, len(scripts))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for res := range pool.Results() {
			results[res.Index] = res
		}
	}()

	var submitErr error
	for i, sc := range scripts {
		if err := pool.Submit(&CostJob{Index: i, Script: sc, Siblings: scripts}); err != nil {
			submitErr = err
			break
		}
	}
	if err := pool.Shutdown(); err != nil && submitErr == nil {
		submitErr = err
	}
	<-done
	return results, submitErr
}
