// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/filesystem"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/url"
	"github.com/hacs/hacs/version"
)

// Installer places the content of a repository at ref into localPath.
type Installer interface {
	Install(ctx context.Context, r *types.Repository, ref string, localPath string) error
}

// Strategy is how content is fetched.
type Strategy int

const (
	// StrategyArchive extracts the source archive of the ref and copies the
	// content path out of it.
	StrategyArchive Strategy = iota
	// StrategyZipRelease extracts a zip asset attached to the release.
	StrategyZipRelease
	// StrategyReleaseAsset downloads a single file attached to the release.
	StrategyReleaseAsset
)

func (s Strategy) String() string {
	switch s {
	case StrategyZipRelease:
		return "zip-release"
	case StrategyReleaseAsset:
		return "release-asset"
	default:
		return "archive"
	}
}

// SelectStrategy picks the strategy for installing r at ref. Default branch
// installs always come from the source archive.
func SelectStrategy(r *types.Repository, ref string) Strategy {
	if ref == r.DefaultBranch {
		return StrategyArchive
	}
	if r.ZipRelease && strings.HasSuffix(r.FileName, ".zip") {
		return StrategyZipRelease
	}
	if r.ContentPath == category.ContentRelease && r.FileName != "" && r.Releases {
		return StrategyReleaseAsset
	}
	return StrategyArchive
}

var _ Installer = &ContentInstaller{}

type ContentInstallerConfig struct {
	Fs        filesystem.FileSystem
	UrlClient url.Client
	// Site serves the archives and release assets.
	Site   version.Site
	Logger *zap.Logger
}

func NewContentInstaller(config ContentInstallerConfig) *ContentInstaller {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentInstaller{
		fs:     config.Fs,
		Client: config.UrlClient,
		site:   config.Site,
		logger: logger,
	}
}

// ContentInstaller downloads into a temporary directory and copies the
// result into place.
type ContentInstaller struct {
	fs filesystem.FileSystem
	url.Client
	site   version.Site
	logger *zap.Logger
}

func (c *ContentInstaller) Install(ctx context.Context, r *types.Repository, ref string, localPath string) error {
	tmp, err := c.fs.TempDir(ctx, constant.AppName)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.fs.RemoveTree(context.Background(), tmp, true); err != nil {
			c.logger.Warn("failed to clean up temporary files", zap.String("path", tmp), zap.Error(err))
		}
	}()

	strategy := SelectStrategy(r, ref)
	c.logger.Debug("installing",
		zap.Stringer("repository", r),
		zap.String("ref", ref),
		zap.Stringer("strategy", strategy),
		zap.String("localPath", localPath),
	)

	if strategy != StrategyArchive {
		if err := types.ValidName(r.FileName); err != nil {
			return err
		}
	}

	switch strategy {
	case StrategyZipRelease:
		archive := filepath.Join(tmp, r.FileName)
		if err := c.Download(ctx, c.site.ReleaseAssetURL(r.FullName, ref, r.FileName), archive); err != nil {
			return err
		}
		return c.fs.ExtractZip(ctx, archive, localPath, 0)
	case StrategyReleaseAsset:
		asset := filepath.Join(tmp, r.FileName)
		if err := c.Download(ctx, c.site.ReleaseAssetURL(r.FullName, ref, r.FileName), asset); err != nil {
			return err
		}
		return c.fs.CopyTree(ctx, asset, filepath.Join(localPath, r.FileName))
	default:
		archive := filepath.Join(tmp, "source.zip")
		if err := c.Download(ctx, c.site.ArchiveURL(r.FullName, ref, isBranch(r, ref)), archive); err != nil {
			return err
		}
		source := filepath.Join(tmp, "source")
		// archives wrap everything in a single <repo>-<ref>/ directory
		if err := c.fs.ExtractZip(ctx, archive, source, 1); err != nil {
			return err
		}
		return c.fs.CopyTree(ctx, filepath.Join(source, filepath.FromSlash(path.Clean("/" + r.ContentPath))), localPath)
	}
}

// isBranch reports whether ref names a branch. Forced refs that are not
// published tags are branches.
func isBranch(r *types.Repository, ref string) bool {
	if ref == r.DefaultBranch {
		return true
	}
	if !r.ForceBranch {
		return false
	}
	for _, tag := range r.PublishedTags {
		if tag == ref {
			return false
		}
	}
	return true
}
