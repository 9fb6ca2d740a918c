// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/filesystem"
	"github.com/hacs/hacs/types"
)

var _ Workflow = &Uninstall{}

type UninstallConfig struct {
	Repository *types.Repository
	Handler    category.Handler
	Fs         filesystem.FileSystem
	Bus        event.Bus
	Logger     *zap.Logger
}

func NewUninstall(config UninstallConfig) *Uninstall {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Uninstall{
		repository: config.Repository,
		handler:    config.Handler,
		fs:         config.Fs,
		bus:        config.Bus,
		logger:     logger,
	}
}

type Uninstall struct {
	phases

	repository *types.Repository
	handler    category.Handler
	fs         filesystem.FileSystem
	bus        event.Bus
	logger     *zap.Logger
}

func (u *Uninstall) Name() string {
	return "uninstall"
}

func (u *Uninstall) Execute(ctx context.Context) error {
	return u.execute(ctx, phase{state: StateUninstall, run: u.uninstall})
}

func (u *Uninstall) uninstall(ctx context.Context) error {
	r := u.repository
	path, err := u.handler.RemovalPath(r)
	if err != nil {
		return fmt.Errorf("%s: %w", r, err)
	}

	u.logger.Info("removing repository", zap.Stringer("repository", r), zap.String("path", path))
	if err := u.fs.RemoveTree(ctx, path, true); err != nil {
		return err
	}

	r.Installed = false
	r.InstalledCommit = ""
	r.InstalledVersion = ""
	r.SelectedTag = ""
	r.ForceBranch = false
	r.FirstInstall = false

	if err := u.handler.PostUninstall(ctx, r); err != nil {
		return err
	}
	u.bus.Publish(ctx, constant.RepositoryTopic, map[string]any{
		"action":     event.ActionUninstall,
		"repository": r.FullName,
	})
	return nil
}
