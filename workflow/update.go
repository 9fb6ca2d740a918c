// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/check"
	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/version"
)

var _ Workflow = &Update{}

// Refresh pulls the current upstream state of r: metadata, releases, the
// tree at the ref to download, the default branch head and hacs.json.
func Refresh(ctx context.Context, c client.Client, handler category.Handler, r *types.Repository) error {
	metadata, err := c.FetchMetadata(ctx, r.FullName)
	if err != nil {
		return fmt.Errorf("fetching metadata of %s: %w", r, err)
	}
	r.ApplyMetadata(metadata)

	releases, err := c.FetchReleases(ctx, r.FullName)
	if err != nil && !errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("fetching releases of %s: %w", r, err)
	}
	applyReleases(r, releases)

	tree, err := c.FetchTree(ctx, r.FullName, version.ToDownload(r))
	if err != nil {
		return fmt.Errorf("fetching tree of %s: %w", r, err)
	}
	r.Tree = tree

	lastCommit, err := c.LastCommit(ctx, r.FullName, r.DefaultBranch)
	if err != nil {
		return fmt.Errorf("resolving head of %s: %w", r, err)
	}
	r.LastCommit = lastCommit

	if r.HasFile(check.HacsManifestFile) {
		bytes, err := c.FetchFile(ctx, r.FullName, version.ToDownload(r), check.HacsManifestFile)
		if err != nil {
			return fmt.Errorf("fetching %s of %s: %w", check.HacsManifestFile, r, err)
		}
		manifest, err := types.ParseHacsManifest(bytes)
		if err != nil {
			return fmt.Errorf("%s: %w", r, err)
		}
		manifest.Apply(r)
	}

	if err := handler.Refresh(ctx, r, releases); err != nil {
		return err
	}
	r.LastFetched = time.Now()
	return nil
}

// applyReleases records the published tags, the newest stable release and a
// newer prerelease if there is one. Releases come newest first.
func applyReleases(r *types.Repository, releases []types.Release) {
	r.PublishedTags = nil
	r.LastVersion = ""
	r.Prerelease = ""
	r.Downloads = 0

	for _, release := range releases {
		r.PublishedTags = append(r.PublishedTags, release.Tag)
		if release.Prerelease {
			if r.Prerelease == "" && r.LastVersion == "" {
				r.Prerelease = release.Tag
			}
			continue
		}
		if r.LastVersion == "" {
			r.LastVersion = release.Tag
			for _, asset := range release.Assets {
				r.Downloads += asset.DownloadCount
			}
		}
	}
	r.Releases = r.LastVersion != ""
	if r.Prerelease != "" && r.LastVersion != "" && !version.Higher(r.Prerelease, r.LastVersion) {
		r.Prerelease = ""
	}
}

type UpdateConfig struct {
	Repository *types.Repository
	Host       version.Host

	Client   client.Client
	Handler  category.Handler
	Registry *registry.Registry
	Bus      event.Bus
	Logger   *zap.Logger
}

func NewUpdate(config UpdateConfig) *Update {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Update{
		repository: config.Repository,
		host:       config.Host,
		client:     config.Client,
		handler:    config.Handler,
		registry:   config.Registry,
		bus:        config.Bus,
		logger:     logger,
	}
}

// Update refreshes one tracked repository and stores it.
type Update struct {
	phases

	repository *types.Repository
	host       version.Host

	client   client.Client
	handler  category.Handler
	registry *registry.Registry
	bus      event.Bus
	logger   *zap.Logger
}

func (u *Update) Name() string {
	return "update"
}

func (u *Update) Execute(ctx context.Context) error {
	return u.execute(ctx, phase{state: StateRefresh, run: u.refresh})
}

func (u *Update) refresh(ctx context.Context) error {
	r := u.repository
	pending := version.PendingUpdate(r, u.host)

	if err := Refresh(ctx, u.client, u.handler, r); err != nil {
		return err
	}
	u.registry.Register(r, false)
	if err := u.registry.Store(r); err != nil {
		return err
	}

	if !pending && version.PendingUpdate(r, u.host) {
		u.logger.Info("update available",
			zap.Stringer("repository", r),
			zap.String("installed", r.DisplayInstalledVersion()),
			zap.String("available", r.DisplayAvailableVersion()),
		)
		u.bus.Publish(ctx, constant.RepositoryTopic, map[string]any{
			"action":     event.ActionUpdate,
			"repository": r.FullName,
		})
	}
	return nil
}
