// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/filesystem"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/version"
)

var _ Workflow = &Install{}

type InstallConfig struct {
	Repository *types.Repository
	// Version to install, picked by version.ToDownload when empty.
	Version string
	Host    version.Host

	Handler   category.Handler
	Installer Installer
	Fs        filesystem.FileSystem
	Bus       event.Bus
	Logger    *zap.Logger
}

func NewInstall(config InstallConfig) *Install {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Install{
		repository: config.Repository,
		version:    config.Version,
		host:       config.Host,
		handler:    config.Handler,
		installer:  config.Installer,
		fs:         config.Fs,
		bus:        config.Bus,
		logger:     logger,
	}
}

// Install runs PreInstall, Install and PostInstall.
type Install struct {
	phases

	repository *types.Repository
	version    string
	host       version.Host

	handler   category.Handler
	installer Installer
	fs        filesystem.FileSystem
	bus       event.Bus
	logger    *zap.Logger
}

func (i *Install) Name() string {
	return "install"
}

func (i *Install) Execute(ctx context.Context) error {
	return i.execute(ctx,
		phase{state: StatePreInstall, run: i.preInstall},
		phase{state: StateInstall, run: i.install},
		phase{state: StatePostInstall, run: i.postInstall},
	)
}

func (i *Install) preInstall(ctx context.Context) error {
	return i.handler.PreInstall(ctx, i.repository)
}

func (i *Install) install(ctx context.Context) error {
	r := i.repository
	if !version.CanInstall(r, i.host) {
		return fmt.Errorf("%s: %w", r, ErrNotCompatible)
	}

	ref := i.version
	if ref == "" {
		ref = version.ToDownload(r)
	}
	localPath, err := i.handler.LocalPath(r)
	if err != nil {
		return fmt.Errorf("%s: %w", r, err)
	}

	var persistent, previous *backup
	defer func() {
		i.cleanup(ctx, previous, persistent)
	}()

	if r.PersistentDirectory != "" {
		if err := types.ValidRelativePath(r.PersistentDirectory); err != nil {
			return fmt.Errorf("%s: persistent directory: %w", r, err)
		}
		persistent, err = newBackup(ctx, i.fs, filepath.Join(localPath, r.PersistentDirectory), false)
		if err != nil {
			return err
		}
	}

	// single asset installs share their directory and are not moved aside
	if r.Installed && r.ContentPath != category.ContentRelease {
		previous, err = newBackup(ctx, i.fs, localPath, true)
		if err != nil {
			return err
		}
	}

	i.logger.Info("installing repository",
		zap.Stringer("repository", r),
		zap.String("version", ref),
		zap.String("localPath", localPath),
	)
	if err := i.installer.Install(ctx, r, ref, localPath); err != nil {
		if restoreErr := previous.restore(ctx); restoreErr != nil {
			i.logger.Error("failed to restore previous installation",
				zap.Stringer("repository", r),
				zap.Error(restoreErr),
			)
		}
		return fmt.Errorf("could not download %s: %w", r, err)
	}

	if err := persistent.restore(ctx); err != nil {
		return fmt.Errorf("could not restore persistent directory of %s: %w", r, err)
	}

	r.FirstInstall = !r.Installed
	r.Installed = true
	r.InstalledCommit = r.LastCommit
	if ref == r.DefaultBranch {
		r.InstalledVersion = ""
	} else {
		r.InstalledVersion = ref
	}
	return nil
}

func (i *Install) cleanup(ctx context.Context, backups ...*backup) {
	for _, b := range backups {
		if err := b.cleanup(ctx); err != nil {
			i.logger.Warn("failed to remove backup", zap.Error(err))
		}
	}
}

func (i *Install) postInstall(ctx context.Context) error {
	i.repository.New = false
	i.bus.Publish(ctx, constant.RepositoryTopic, map[string]any{
		"action":     event.ActionInstall,
		"repository": i.repository.FullName,
	})
	return i.handler.PostInstall(ctx, i.repository)
}
