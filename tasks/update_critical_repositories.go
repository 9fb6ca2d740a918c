// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package tasks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/task"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/workflow"
)

const updateCriticalInterval = 6 * time.Hour

var _ task.Task = &UpdateCriticalRepositories{}

// UpdateCriticalRepositories uninstalls and stops tracking every repository
// on the critical list.
type UpdateCriticalRepositories struct {
	task.Base
	deps Deps
}

func NewUpdateCriticalRepositories(deps Deps) *UpdateCriticalRepositories {
	return &UpdateCriticalRepositories{
		Base: task.Base{
			TaskKind:     task.KindSchedule,
			TaskStages:   []types.Stage{types.StageRunning},
			TaskInterval: updateCriticalInterval,
		},
		deps: deps,
	}
}

func (u *UpdateCriticalRepositories) Execute(ctx context.Context) error {
	removals, err := fetchRemovals(ctx, u.deps, constant.CriticalFile)
	if err != nil {
		return err
	}

	failed := 0
	for _, removal := range removals {
		removal.RemovalType = types.RemovalCritical
		u.deps.Registry.MarkRemoved(removal)

		r, err := tracked(u.deps, removal)
		if err != nil {
			return err
		}
		if r == nil {
			continue
		}
		if err := u.remove(ctx, r, removal); err != nil {
			u.deps.logger().Error("failed to remove critical repository",
				zap.Stringer("repository", r),
				zap.Error(err),
			)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d critical repositories could not be removed", failed)
	}
	return nil
}

func (u *UpdateCriticalRepositories) remove(ctx context.Context, r *types.Repository, removal types.Removal) error {
	if r.Installed {
		u.deps.logger().Error("uninstalling critical repository",
			zap.Stringer("repository", r),
			zap.String("reason", removal.Reason),
			zap.String("link", removal.Link),
		)
		handler, err := u.deps.Handlers.For(r.Category)
		if err != nil {
			return err
		}
		if err := u.deps.Executor.Execute(ctx, workflow.NewUninstall(workflow.UninstallConfig{
			Repository: r,
			Handler:    handler,
			Fs:         u.deps.Fs,
			Bus:        u.deps.Bus,
			Logger:     u.deps.Logger,
		})); err != nil {
			return err
		}
	}
	return u.deps.Registry.Unregister(r)
}
