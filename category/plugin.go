// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package category

import (
	"context"
	"path"
	"strings"

	"github.com/hacs/hacs/types"
)

var _ Handler = &Plugin{}

// Plugin is a frontend resource served from www/community.
type Plugin struct {
	base
}

func (p *Plugin) LocalPath(r *types.Repository) (string, error) {
	return p.path("www", "community", r.Name())
}

func (p *Plugin) RemovalPath(r *types.Repository) (string, error) {
	return p.LocalPath(r)
}

// Refresh picks the file to install. A matching asset of the latest release
// wins, then the root, then dist/.
func (p *Plugin) Refresh(_ context.Context, r *types.Repository, releases []types.Release) error {
	candidates := p.candidates(r)

	if !r.ContentInRoot && len(releases) > 0 {
		for _, candidate := range candidates {
			for _, asset := range releases[0].Assets {
				if asset.Name == candidate {
					r.FileName = candidate
					r.ContentPath = ContentRelease
					return nil
				}
			}
		}
	}

	for _, candidate := range candidates {
		if r.HasFile(candidate) {
			r.FileName = candidate
			r.ContentPath = ""
			return nil
		}
		if !r.ContentInRoot && r.HasFile(path.Join("dist", candidate)) {
			r.FileName = candidate
			r.ContentPath = "dist"
			return nil
		}
	}

	if r.ContentInRoot {
		r.ContentPath = ""
	} else if hasDirectory(r, "dist") {
		r.ContentPath = "dist"
	}
	return nil
}

func (p *Plugin) candidates(r *types.Repository) []string {
	if r.FileName != "" {
		return []string{r.FileName}
	}
	name := r.Name()
	return []string{
		strings.TrimPrefix(name, "lovelace-") + ".js",
		name + ".js",
		name + ".umd.js",
		name + "-bundle.js",
	}
}

func hasDirectory(r *types.Repository, dir string) bool {
	for _, file := range r.Tree {
		if file.IsDirectory() && file.Filename == dir {
			return true
		}
		if file.Dir() == dir {
			return true
		}
	}
	return false
}
