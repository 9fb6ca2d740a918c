// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package tasks

import (
	"context"

	"go.uber.org/zap"

	"github.com/hacs/hacs/task"
	"github.com/hacs/hacs/types"
)

var _ task.Task = &RestoreData{}

// RestoreData loads the stored repositories during setup.
type RestoreData struct {
	task.Base
	deps Deps
}

func NewRestoreData(deps Deps) *RestoreData {
	return &RestoreData{
		Base: task.Base{TaskKind: task.KindRuntime, TaskStages: []types.Stage{types.StageSetup}},
		deps: deps,
	}
}

func (r *RestoreData) Execute(context.Context) error {
	count, err := r.deps.Registry.Restore()
	if err != nil {
		return err
	}
	r.deps.logger().Info("restored repositories", zap.Int("count", count))
	return nil
}
