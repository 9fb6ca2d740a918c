// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package check

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/metrics"
	"github.com/hacs/hacs/types"
)

type RunnerConfig struct {
	// Action enables checks that only apply to automated validation.
	Action bool
	// Workers bounds concurrent blocking validators, constant.MaxBlockingIO
	// when zero.
	Workers int64
	Logger  *zap.Logger
}

func NewRunner(config RunnerConfig) *Runner {
	workers := config.Workers
	if workers <= 0 {
		workers = constant.MaxBlockingIO
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		action: config.Action,
		pool:   semaphore.NewWeighted(workers),
		logger: logger,
	}
}

// Runner drives a set of checks against one repository.
type Runner struct {
	action bool
	pool   *semaphore.Weighted
	logger *zap.Logger
}

// WithAction returns a runner sharing the worker pool with the action flag
// set to action.
func (r *Runner) WithAction(action bool) *Runner {
	return &Runner{
		action: action,
		pool:   r.pool,
		logger: r.logger,
	}
}

func (r *Runner) Action() bool {
	return r.action
}

// Run executes every check concurrently. Failures are collected in the
// result; any other error cancels the run and is returned.
func (r *Runner) Run(ctx context.Context, repository *types.Repository, checks []Check) (Result, error) {
	outcomes := make([]Outcome, len(checks))
	for i, c := range checks {
		outcomes[i] = Outcome{Name: c.Name(), State: NotRun}
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range checks {
		i, c := i, c

		if gated, ok := c.(Gated); ok && gated.ActionOnly() && !r.action {
			outcomes[i].State = Passed
			metrics.ChecksTotal.WithLabelValues(c.Name(), metrics.OutcomeSkipped).Inc()
			continue
		}

		outcomes[i].State = Running
		g.Go(func() error {
			err := r.runCheck(ctx, repository, c)
			if failure, ok := AsFailure(err); ok {
				outcomes[i].State = Failed
				outcomes[i].Message = failure.Message
				metrics.ChecksTotal.WithLabelValues(c.Name(), metrics.OutcomeFailure).Inc()
				r.logger.Error("check failed",
					zap.Stringer("repository", repository),
					zap.String("check", c.Name()),
					zap.String("reason", failure.Message),
				)
				return nil
			}
			if err != nil {
				return fmt.Errorf("check %s on %s: %w", c.Name(), repository, err)
			}
			outcomes[i].State = Passed
			metrics.ChecksTotal.WithLabelValues(c.Name(), metrics.OutcomeSuccess).Inc()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{Outcomes: outcomes}, err
	}
	return Result{Outcomes: outcomes}, nil
}

func (r *Runner) runCheck(ctx context.Context, repository *types.Repository, c Check) error {
	if v, ok := c.(Validator); ok {
		if err := r.pool.Acquire(ctx, 1); err != nil {
			return err
		}
		err := v.Validate(repository)
		r.pool.Release(1)
		if err != nil {
			return err
		}
	}
	if v, ok := c.(AsyncValidator); ok {
		return v.ValidateAsync(ctx, repository)
	}
	return nil
}
