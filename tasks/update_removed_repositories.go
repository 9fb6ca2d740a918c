// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package tasks

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/task"
	"github.com/hacs/hacs/types"
)

var _ task.Task = &UpdateRemovedRepositories{}

// fetchRemovals reads a list of the data repository. A missing list is
// empty.
func fetchRemovals(ctx context.Context, deps Deps, file string) ([]types.Removal, error) {
	bytes, err := deps.Client.FetchFile(ctx, constant.DataRepository, constant.DataRepositoryRef, file)
	if errors.Is(err, client.ErrNotFound) {
		deps.logger().Debug("no removal list", zap.String("file", file))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching %s list: %w", file, err)
	}
	return types.ParseRemovals(bytes)
}

// tracked resolves a removal to the tracked repository, nil when it is not
// tracked.
func tracked(deps Deps, removal types.Removal) (*types.Repository, error) {
	r, err := deps.Registry.GetByFullName(removal.Repository)
	if errors.Is(err, registry.ErrNotFound) {
		return nil, nil
	}
	return r, err
}

// UpdateRemovedRepositories stops tracking repositories pulled from the
// default list. Installed ones stay and are reported.
type UpdateRemovedRepositories struct {
	task.Base
	deps Deps
}

func NewUpdateRemovedRepositories(deps Deps) *UpdateRemovedRepositories {
	return &UpdateRemovedRepositories{
		Base: task.Base{TaskKind: task.KindRuntime, TaskStages: []types.Stage{types.StageStartup}},
		deps: deps,
	}
}

func (u *UpdateRemovedRepositories) Execute(ctx context.Context) error {
	removals, err := fetchRemovals(ctx, u.deps, constant.RemovedFile)
	if err != nil {
		return err
	}

	for _, removal := range removals {
		u.deps.Registry.MarkRemoved(removal)
		r, err := tracked(u.deps, removal)
		if err != nil {
			return err
		}
		if r == nil {
			continue
		}
		if r.Installed {
			if !removal.Critical() {
				u.deps.logger().Warn("installed repository was removed, consider uninstalling it",
					zap.Stringer("repository", r),
					zap.String("reason", removal.Reason),
				)
			}
			continue
		}
		if err := u.deps.Registry.Unregister(r); err != nil {
			return err
		}
		u.deps.logger().Info("stopped tracking removed repository",
			zap.Stringer("repository", r),
			zap.String("reason", removal.Reason),
		)
	}
	return nil
}
