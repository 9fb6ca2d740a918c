// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package category

import (
	"context"
	"path"
	"strings"

	"github.com/hacs/hacs/types"
)

var (
	_ Handler = &Theme{}
	_ Handler = &PythonScript{}
	_ Handler = &AppDaemon{}
	_ Handler = &NetDaemon{}
	_ Handler = &Template{}
)

type Theme struct {
	base
}

func (t *Theme) LocalPath(r *types.Repository) (string, error) {
	return t.path("themes", r.Name())
}

func (t *Theme) RemovalPath(r *types.Repository) (string, error) {
	return t.LocalPath(r)
}

func (t *Theme) Refresh(_ context.Context, r *types.Repository, _ []types.Release) error {
	r.ContentPath = contentPath(r, "themes")
	if r.FileName == "" {
		r.FileName = firstFileWithSuffix(r, r.ContentPath, ".yaml")
	}
	return nil
}

type PythonScript struct {
	base
}

func (p *PythonScript) LocalPath(*types.Repository) (string, error) {
	return p.path("python_scripts")
}

// RemovalPath is the script itself, the directory is shared.
func (p *PythonScript) RemovalPath(r *types.Repository) (string, error) {
	return p.path("python_scripts", fileName(r, ".py"))
}

func (p *PythonScript) Refresh(_ context.Context, r *types.Repository, _ []types.Release) error {
	r.ContentPath = contentPath(r, "python_scripts")
	if r.FileName == "" {
		r.FileName = firstFileWithSuffix(r, r.ContentPath, ".py")
	}
	return nil
}

type AppDaemon struct {
	base
}

func (a *AppDaemon) LocalPath(r *types.Repository) (string, error) {
	return a.path("appdaemon", "apps", r.Name())
}

func (a *AppDaemon) RemovalPath(r *types.Repository) (string, error) {
	return a.LocalPath(r)
}

func (a *AppDaemon) Refresh(_ context.Context, r *types.Repository, _ []types.Release) error {
	r.ContentPath = appsPath(r)
	return nil
}

type NetDaemon struct {
	base
}

func (n *NetDaemon) LocalPath(r *types.Repository) (string, error) {
	return n.path("netdaemon", "apps", r.Name())
}

func (n *NetDaemon) RemovalPath(r *types.Repository) (string, error) {
	return n.LocalPath(r)
}

func (n *NetDaemon) Refresh(_ context.Context, r *types.Repository, _ []types.Release) error {
	r.ContentPath = appsPath(r)
	return nil
}

type Template struct {
	base
}

func (t *Template) LocalPath(*types.Repository) (string, error) {
	return t.path("custom_templates")
}

func (t *Template) RemovalPath(r *types.Repository) (string, error) {
	return t.path("custom_templates", fileName(r, ".jinja"))
}

func (t *Template) Refresh(_ context.Context, r *types.Repository, _ []types.Release) error {
	r.ContentPath = ""
	if r.FileName == "" {
		r.FileName = firstFileWithSuffix(r, "", ".jinja")
	}
	return nil
}

// appsPath is the first app directory below apps/.
func appsPath(r *types.Repository) string {
	if r.ContentInRoot {
		return ""
	}
	if dir := firstDirectory(r, "apps"); dir != "" {
		return path.Join("apps", dir)
	}
	return "apps"
}

func fileName(r *types.Repository, suffix string) string {
	if r.FileName != "" {
		return r.FileName
	}
	return r.Name() + suffix
}

func contentPath(r *types.Repository, dir string) string {
	if r.ContentInRoot {
		return ""
	}
	return dir
}

func firstFileWithSuffix(r *types.Repository, dir string, suffix string) string {
	for _, file := range r.Tree {
		if !file.IsDirectory() && file.Dir() == dir && strings.HasSuffix(file.Filename, suffix) {
			return file.Name()
		}
	}
	return ""
}
