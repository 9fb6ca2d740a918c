// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package category

import (
	"context"
	"errors"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/hacs/hacs/check"
	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/version"
)

var _ Handler = &Integration{}

type Integration struct {
	base
}

func (i *Integration) LocalPath(r *types.Repository) (string, error) {
	return i.path("custom_components", r.Name())
}

func (i *Integration) RemovalPath(r *types.Repository) (string, error) {
	return i.LocalPath(r)
}

// Refresh reads the domain and metadata from the integration manifest when
// the tree has one.
func (i *Integration) Refresh(ctx context.Context, r *types.Repository, _ []types.Release) error {
	if r.ContentInRoot {
		r.ContentPath = ""
	} else {
		r.ContentPath = r.IntegrationDirectory()
	}

	manifestPath := path.Join(r.ContentPath, check.IntegrationManifestFile)
	if r.ContentPath == "" && !r.ContentInRoot {
		return nil
	}
	if !r.HasFile(manifestPath) {
		return nil
	}

	bytes, err := i.config.Client.FetchFile(ctx, r.FullName, version.ToDownload(r), manifestPath)
	if errors.Is(err, client.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	manifest, err := types.ParseIntegrationManifest(bytes)
	if err != nil {
		i.config.Logger.Warn("ignoring integration manifest",
			zap.Stringer("repository", r),
			zap.Error(err),
		)
		return nil
	}
	r.Domain = manifest.Domain
	r.ManifestName = manifest.Name
	r.Authors = manifest.Codeowners
	r.ConfigFlow = manifest.ConfigFlow
	return nil
}

// PostInstall flags a restart unless a config flow integration is installed
// for the first time.
func (i *Integration) PostInstall(_ context.Context, r *types.Repository) error {
	r.PendingRestart = !(r.ConfigFlow && r.FirstInstall)
	return nil
}

func (i *Integration) PostUninstall(_ context.Context, r *types.Repository) error {
	if !r.ConfigFlow {
		r.PendingRestart = true
	}
	return nil
}

// PostRegistration re-runs the integration checks when validating in action
// mode.
func (i *Integration) PostRegistration(ctx context.Context, r *types.Repository) error {
	if i.config.Runner == nil || !i.config.Runner.Action() {
		return nil
	}

	result, err := i.config.Runner.Run(ctx, r, check.ForCategory(r.Category))
	if err != nil {
		return err
	}
	if result.Failed() {
		return fmt.Errorf("%s failed integration checks: %v", r, result.Reasons())
	}
	return nil
}
