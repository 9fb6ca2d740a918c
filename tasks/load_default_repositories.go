// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package tasks

import (
	"context"
	"fmt"
	"sort"

	"github.com/hacs/hacs/batch"
	"github.com/hacs/hacs/task"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/workflow"
)

var _ task.Task = &LoadDefaultRepositories{}

// LoadDefaultRepositories registers the default repositories that are not
// tracked yet.
type LoadDefaultRepositories struct {
	task.Base
	deps Deps
}

func NewLoadDefaultRepositories(deps Deps) *LoadDefaultRepositories {
	return &LoadDefaultRepositories{
		Base: task.Base{TaskKind: task.KindRuntime, TaskStages: []types.Stage{types.StageStartup}},
		deps: deps,
	}
}

func (l *LoadDefaultRepositories) Execute(ctx context.Context) error {
	names := make([]string, 0, len(l.deps.Defaults))
	for name := range l.deps.Defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	executor := batch.New(l.deps.Batch)
	for _, name := range names {
		if l.deps.Registry.IsRegistered(name) {
			continue
		}
		c, err := types.ParseCategory(l.deps.Defaults[name])
		if err != nil {
			return fmt.Errorf("default repository %s: %w", name, err)
		}
		handler, err := l.deps.Handlers.For(c)
		if err != nil {
			return err
		}
		executor.Add(batch.Workflow(l.deps.Executor, name, workflow.NewRegister(workflow.RegisterConfig{
			Repository: types.NewRepository(name, c),
			Default:    true,
			Client:     l.deps.Client,
			Handler:    handler,
			Runner:     l.deps.Runner,
			Registry:   l.deps.Registry,
			Bus:        l.deps.Bus,
			Logger:     l.deps.Logger,
		})))
	}
	executor.Execute(ctx)
	return nil
}
