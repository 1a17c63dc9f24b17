package runtime

import (
	"context"
	"sync"
)

// Scheduler is the part of the event loop that native functions use to get
// back onto the script goroutine. Script values may only be touched from tasks.
type Scheduler interface {
	// Schedule queues a task to run on the loop after the current one.
	Schedule(task func())

	// BeginExternalOp marks the start of an operation completing outside the
	// loop (timers, I/O). The loop keeps running while any are pending.
	BeginExternalOp()

	// EndExternalOp marks the completion of an external operation.
	EndExternalOp()

	// Complete queues task and ends one external operation atomically, so
	// the loop never observes the operation finished without its result.
	Complete(task func())
}

// Loop is a single-threaded task queue with external operation accounting.
// Run executes tasks on the calling goroutine; every other method is safe
// for concurrent use.
type Loop struct {
	mu              sync.Mutex
	tasks           []func()
	pendingExternal int
	stopped         bool
	wake            chan struct{}
}

var _ Scheduler = (*Loop)(nil)

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{
		tasks: make([]func(), 0, 16),
		wake:  make(chan struct{}, 1),
	}
}

func (l *Loop) Schedule(task func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) BeginExternalOp() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pendingExternal++
}

func (l *Loop) EndExternalOp() {
	l.mu.Lock()
	l.pendingExternal--
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) Complete(task func()) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.pendingExternal--
	l.mu.Unlock()
	l.signal()
}

// HasPendingExternalOps returns true if there are pending external operations.
func (l *Loop) HasPendingExternalOps() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pendingExternal > 0
}

// Stop makes Run return after the task in progress. Queued tasks are dropped.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()
	l.signal()
}

// RunUntilIdle executes queued tasks, including tasks they queue, without
// waiting for external operations. It returns true if any task ran.
func (l *Loop) RunUntilIdle() bool {
	ran := false
	for {
		task, ok := l.next()
		if !ok {
			return ran
		}
		task()
		ran = true
	}
}

// Run executes tasks until the loop is stopped, it runs out of both tasks
// and pending external operations, or ctx is done. It returns ctx.Err() in
// the last case.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		task, ok := l.next()
		if ok {
			task()
			continue
		}

		l.mu.Lock()
		done := l.stopped || l.pendingExternal <= 0
		l.mu.Unlock()
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Reset clears queued tasks, pending operations and the stopped flag.
func (l *Loop) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks = make([]func(), 0, 16)
	l.pendingExternal = 0
	l.stopped = false
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped || len(l.tasks) == 0 {
		return nil, false
	}
	task := l.tasks[0]
	l.tasks = l.tasks[1:]
	return task, true
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
