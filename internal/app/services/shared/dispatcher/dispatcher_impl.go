package dispatcher

import (
	"context"
	"fmt"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/exceptions"
	"sync"
	"time"

	"go.uber.org/zap"
)

type job struct {
	name      string
	task      func(ctx context.Context) error
	onFailure func(err error)
}

type dispatcher struct {
	log         *zap.Logger
	jobs        chan job
	taskTimeout time.Duration
	wg          sync.WaitGroup
	closeOnce   sync.Once
	mu          sync.RWMutex
	closed      bool
}

// NewDispatcher starts a fixed pool of workers draining a bounded queue.
// Tasks run with their own deadline, detached from the request context.
func NewDispatcher(logger *zap.Logger, workers, queueSize int, taskTimeout time.Duration) contracts.Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if taskTimeout <= 0 {
		taskTimeout = 30 * time.Second
	}
	d := &dispatcher{
		log:         logger,
		jobs:        make(chan job, queueSize),
		taskTimeout: taskTimeout,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

func (d *dispatcher) Submit(name string, task func(ctx context.Context) error, onFailure func(err error)) error {
	if onFailure == nil {
		return exceptions.ErrDispatcherQueueFull(fmt.Errorf("task %s submitted without failure handler", name))
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		err := exceptions.ErrDispatcherQueueFull(fmt.Errorf("dispatcher already shut down"))
		onFailure(err)
		return err
	}

	select {
	case d.jobs <- job{name: name, task: task, onFailure: onFailure}:
		return nil
	default:
		err := exceptions.ErrDispatcherQueueFull(fmt.Errorf("queue full, task %s rejected", name))
		onFailure(err)
		return err
	}
}

func (d *dispatcher) Shutdown(ctx context.Context) error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.jobs)
		d.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.run(j)
	}
}

func (d *dispatcher) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("task %s panicked: %v", j.name, r)
			d.log.Error("dispatcher.run recovered from panic",
				zap.String(constvars.LoggingTaskNameKey, j.name),
				zap.Any("panic", r),
			)
			j.onFailure(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.taskTimeout)
	defer cancel()

	if err := j.task(ctx); err != nil {
		d.log.Error("dispatcher.run task failed",
			zap.String(constvars.LoggingTaskNameKey, j.name),
			zap.Error(err),
		)
		j.onFailure(err)
		return
	}

	d.log.Debug("dispatcher.run task finished",
		zap.String(constvars.LoggingTaskNameKey, j.name),
	)
}
