// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package tasks

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/task"
)

var _ task.Task = &StoreRepositoryData{}

// StoreRepositoryData persists a repository whenever it changes. It runs on
// the publisher's goroutine and only touches the repository the event names,
// which that goroutine owns. Run by hand it stores the whole registry.
type StoreRepositoryData struct {
	task.Base
	deps Deps
}

func NewStoreRepositoryData(deps Deps) *StoreRepositoryData {
	return &StoreRepositoryData{
		Base: task.Base{TaskKind: task.KindEvent, TaskEvents: []string{constant.RepositoryTopic}},
		deps: deps,
	}
}

func (s *StoreRepositoryData) Execute(ctx context.Context) error {
	e, ok := event.FromContext(ctx)
	if !ok {
		return s.deps.Registry.StoreAll()
	}

	fullName := e.Repository()
	if fullName == "" {
		return nil
	}
	repository, err := s.deps.Registry.GetByFullName(fullName)
	if errors.Is(err, registry.ErrNotFound) {
		s.deps.logger().Debug("not storing untracked repository", zap.String("repository", fullName))
		return nil
	}
	if err != nil {
		return err
	}
	return s.deps.Registry.Store(repository)
}
