// Package sweep builds many cycles concurrently. Built cycles are immutable
// and the property oracle is stateless, so workers share nothing but the
// result slice, where each index is written by exactly one task.
package sweep

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"vcrc/cycle"
	"vcrc/failure"
	"vcrc/fluid"
	"vcrc/model"
)

// 基于切片任务分配
type task struct {
	start int
	end   int
}

// splitTasks divides [0, total) the way the workers consume it: every worker
// gets two halves of its share, the remainder goes out one item at a time.
func splitTasks(total, workers int) []task {
	if total <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	taskLen, remainder := total/workers, total%workers
	tasks := make([]task, 0, workers*2+remainder)
	start := 0
	if taskLen == 1 {
		for start < total-remainder {
			tasks = append(tasks, task{start: start, end: start + 1})
			start++
		}
	} else if taskLen > 1 {
		half1, half2 := taskLen/2, taskLen/2
		if taskLen%2 == 1 {
			half2++
		}
		for start < total-remainder {
			tasks = append(tasks, task{start: start, end: start + half1})
			start += half1
			tasks = append(tasks, task{start: start, end: start + half2})
			start += half2
		}
	}
	for i := 0; i < remainder; i++ {
		tasks = append(tasks, task{start: start, end: start + 1})
		start++
	}
	return tasks
}

// Executor runs cycle builds on a bounded number of goroutines.
type Executor struct {
	workers int
	oracle  fluid.Oracle
	opts    []cycle.Option
}

func NewExecutor(workers int, oracle fluid.Oracle, opts ...cycle.Option) (*Executor, error) {
	if workers < 1 {
		return nil, failure.Configf("sweep needs at least one worker, got %d", workers)
	}
	if oracle == nil {
		return nil, failure.Configf("sweep needs a property oracle")
	}
	return &Executor{workers: workers, oracle: oracle, opts: opts}, nil
}

func (e *Executor) Workers() int { return e.workers }

// Compute builds every request. A request that fails keeps its error message
// in the returned point; only a cancelled context fails the whole call.
func (e *Executor) Compute(ctx context.Context, requests []model.CycleRequest, values []float64) ([]model.SweepPoint, error) {
	start := time.Now()
	points := make([]model.SweepPoint, len(requests))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, t := range splitTasks(len(requests), e.workers) {
		t := t
		g.Go(func() error {
			for i := t.start; i < t.end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if values != nil {
					points[i].Value = values[i]
				}
				res, err := cycle.Run(requests[i], e.oracle, e.opts...)
				if err != nil {
					points[i].Error = err.Error()
					continue
				}
				points[i].Result = &res
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"cycles":  len(requests),
		"workers": e.workers,
		"elapsed": time.Since(start),
	}).Debug("sweep computed")
	return points, nil
}

// Run expands s and computes every member.
func (e *Executor) Run(ctx context.Context, s model.Sweep) ([]model.SweepPoint, error) {
	requests, values, err := s.Requests()
	if err != nil {
		return nil, err
	}
	for i := range requests {
		if requests[i].Name == "" {
			requests[i].Name = s.Name
		}
	}
	return e.Compute(ctx, requests, values)
}
