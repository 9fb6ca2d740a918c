// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hacs/hacs/task"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/version"
)

const (
	updateAllInterval       = 25 * time.Hour
	updateInstalledInterval = 2 * time.Hour
)

var (
	_ task.Task = &UpdateAllRepositories{}
	_ task.Task = &UpdateInstalledRepositories{}
)

// UpdateAllRepositories refreshes every tracked repository.
type UpdateAllRepositories struct {
	task.Base
	deps Deps
}

func NewUpdateAllRepositories(deps Deps) *UpdateAllRepositories {
	return &UpdateAllRepositories{
		Base: task.Base{
			TaskKind:     task.KindSchedule,
			TaskStages:   []types.Stage{types.StageRunning},
			TaskInterval: updateAllInterval,
		},
		deps: deps,
	}
}

func (u *UpdateAllRepositories) Execute(ctx context.Context) error {
	repositories, err := withinBudget(ctx, u.deps, u.deps.Registry.All())
	if err != nil {
		return err
	}
	executor, err := updates(u.deps, repositories)
	if err != nil {
		return err
	}
	executor.Execute(ctx)
	return nil
}

// UpdateInstalledRepositories refreshes the installed repositories and
// reports those with an update available.
type UpdateInstalledRepositories struct {
	task.Base
	deps Deps
}

func NewUpdateInstalledRepositories(deps Deps) *UpdateInstalledRepositories {
	return &UpdateInstalledRepositories{
		Base: task.Base{
			TaskKind:     task.KindSchedule,
			TaskStages:   []types.Stage{types.StageRunning},
			TaskInterval: updateInstalledInterval,
		},
		deps: deps,
	}
}

func (u *UpdateInstalledRepositories) Execute(ctx context.Context) error {
	installed, err := withinBudget(ctx, u.deps, u.deps.Registry.Installed())
	if err != nil {
		return err
	}
	executor, err := updates(u.deps, installed)
	if err != nil {
		return err
	}
	executor.Execute(ctx)

	pending := 0
	for _, r := range installed {
		if version.PendingUpdate(r, u.deps.Host) {
			pending++
		}
	}
	u.deps.logger().Info("installed repositories refreshed",
		zap.Int("installed", len(installed)),
		zap.Int("pendingUpdates", pending),
	)
	return nil
}
