// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tasks holds the background work of the manager and the list of
// factories the task manager loads.
package tasks

import (
	"context"

	"go.uber.org/zap"

	"github.com/hacs/hacs/batch"
	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/check"
	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/filesystem"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/task"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/version"
	"github.com/hacs/hacs/workflow"
)

// Deps is what the tasks share.
type Deps struct {
	Registry *registry.Registry
	Client   client.Client
	Handlers *category.Handlers
	Runner   *check.Runner
	Executor workflow.Executor
	Fs       filesystem.FileSystem
	Bus      event.Bus
	Host     version.Host
	// Batch configures the executor every batched task creates. Its
	// semaphore must be the process wide one.
	Batch batch.Config
	// Defaults maps the full name of every default repository to its
	// category.
	Defaults map[string]string
	Logger   *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Factories returns the factory of every task.
func Factories(deps Deps) []task.Factory {
	return []task.Factory{
		func(context.Context) (task.Task, error) { return NewRestoreData(deps), nil },
		func(context.Context) (task.Task, error) { return NewLoadDefaultRepositories(deps), nil },
		func(context.Context) (task.Task, error) { return NewUpdateAllRepositories(deps), nil },
		func(context.Context) (task.Task, error) { return NewUpdateInstalledRepositories(deps), nil },
		func(context.Context) (task.Task, error) { return NewStoreRepositoryData(deps), nil },
		func(context.Context) (task.Task, error) { return NewValidateAllRepositories(deps), nil },
		func(context.Context) (task.Task, error) { return NewUpdateRemovedRepositories(deps), nil },
		func(context.Context) (task.Task, error) { return NewUpdateCriticalRepositories(deps), nil },
	}
}

// updates queues an update of every repository on a new batch.
func updates(deps Deps, repositories []*types.Repository) (*batch.Executor, error) {
	executor := batch.New(deps.Batch)
	for _, r := range repositories {
		handler, err := deps.Handlers.For(r.Category)
		if err != nil {
			return nil, err
		}
		executor.Add(batch.Workflow(deps.Executor, r.FullName, workflow.NewUpdate(workflow.UpdateConfig{
			Repository: r,
			Host:       deps.Host,
			Client:     deps.Client,
			Handler:    handler,
			Registry:   deps.Registry,
			Bus:        deps.Bus,
			Logger:     deps.Logger,
		})))
	}
	return executor, nil
}
