// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package tasks

import (
	"context"
	"fmt"

	"github.com/hacs/hacs/batch"
	"github.com/hacs/hacs/check"
	"github.com/hacs/hacs/task"
	"github.com/hacs/hacs/workflow"
)

var _ task.Task = &ValidateAllRepositories{}

// ValidateAllRepositories re-runs every check against every tracked
// repository.
type ValidateAllRepositories struct {
	task.Base
	deps Deps
}

func NewValidateAllRepositories(deps Deps) *ValidateAllRepositories {
	return &ValidateAllRepositories{
		Base: task.Base{TaskKind: task.KindManual},
		deps: deps,
	}
}

func (v *ValidateAllRepositories) Execute(ctx context.Context) error {
	executor := batch.New(v.deps.Batch)
	for _, r := range v.deps.Registry.All() {
		r := r
		handler, err := v.deps.Handlers.For(r.Category)
		if err != nil {
			return err
		}
		executor.Add(batch.Operation{
			Name: r.FullName,
			Run: func(ctx context.Context) error {
				if err := workflow.Refresh(ctx, v.deps.Client, handler, r); err != nil {
					return err
				}
				result, err := v.deps.Runner.Run(ctx, r, check.For(r.Category))
				if err != nil {
					return err
				}
				if result.Failed() {
					return fmt.Errorf("%s: %v", r, result.Reasons())
				}
				return nil
			},
		})
	}

	stats := executor.Execute(ctx)
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d repositories failed validation", stats.Failed, stats.Count)
	}
	return nil
}
