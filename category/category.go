// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package category

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/hacs/hacs/check"
	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/types"
)

// ContentRelease marks content shipped as a single release asset.
const ContentRelease = "release"

// Handler is the per category behaviour of the install and registration
// pipelines.
type Handler interface {
	Category() types.Category
	// LocalPath is where the content lives on disk once installed.
	// It is always below the configuration directory.
	LocalPath(r *types.Repository) (string, error)
	// RemovalPath is what uninstalling deletes.
	RemovalPath(r *types.Repository) (string, error)
	// Refresh derives the category specific fields, including ContentPath,
	// from a freshly fetched tree.
	Refresh(ctx context.Context, r *types.Repository, releases []types.Release) error

	PreInstall(ctx context.Context, r *types.Repository) error
	PostInstall(ctx context.Context, r *types.Repository) error
	PostUninstall(ctx context.Context, r *types.Repository) error
	PreRegistration(ctx context.Context, r *types.Repository) error
	PostRegistration(ctx context.Context, r *types.Repository) error
}

type Config struct {
	// ConfigDir is the host application's configuration directory.
	ConfigDir string
	Client    client.Client
	Runner    *check.Runner
	Logger    *zap.Logger
}

// Handlers resolves the handler of a category.
type Handlers struct {
	handlers map[types.Category]Handler
}

func New(config Config) *Handlers {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	b := base{config: config}

	handlers := []Handler{
		&AppDaemon{base: b.with(types.AppDaemon)},
		&Integration{base: b.with(types.Integration)},
		&NetDaemon{base: b.with(types.NetDaemon)},
		&Plugin{base: b.with(types.Plugin)},
		&PythonScript{base: b.with(types.PythonScript)},
		&Template{base: b.with(types.Template)},
		&Theme{base: b.with(types.Theme)},
	}

	h := &Handlers{handlers: make(map[types.Category]Handler, len(handlers))}
	for _, handler := range handlers {
		h.handlers[handler.Category()] = handler
	}
	return h
}

func (h *Handlers) For(c types.Category) (Handler, error) {
	handler, ok := h.handlers[c]
	if !ok {
		return nil, fmt.Errorf("no handler for category %q", c)
	}
	return handler, nil
}

// base holds the no-op hooks shared by every category.
type base struct {
	category types.Category
	config   Config
}

func (b base) with(c types.Category) base {
	b.category = c
	return b
}

func (b base) Category() types.Category {
	return b.category
}

// path joins single names below ConfigDir. A name carrying a separator or
// a dot element is rejected so the result cannot escape ConfigDir.
func (b base) path(elem ...string) (string, error) {
	if len(elem) == 0 {
		return "", fmt.Errorf("refusing to use the configuration directory itself")
	}
	for _, e := range elem {
		if err := types.ValidName(e); err != nil {
			return "", err
		}
	}
	root := filepath.Clean(b.config.ConfigDir)
	p := filepath.Join(append([]string{root}, elem...)...)
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q is outside %q: %w", p, root, types.ErrInvalidName)
	}
	return p, nil
}

func (b base) PreInstall(context.Context, *types.Repository) error       { return nil }
func (b base) PostInstall(context.Context, *types.Repository) error      { return nil }
func (b base) PostUninstall(context.Context, *types.Repository) error    { return nil }
func (b base) PreRegistration(context.Context, *types.Repository) error  { return nil }
func (b base) PostRegistration(context.Context, *types.Repository) error { return nil }

// firstDirectory returns the first directory directly below dir.
func firstDirectory(r *types.Repository, dir string) string {
	for _, file := range r.Tree {
		if file.IsDirectory() && file.Dir() == dir {
			return file.Name()
		}
	}
	return ""
}
