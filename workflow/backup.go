// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"

	"github.com/hacs/hacs/filesystem"
)

// backup holds a copy of a local path while it is being replaced. A nil
// backup is valid and does nothing.
type backup struct {
	fs     filesystem.FileSystem
	source string
	dir    string
}

// newBackup copies source aside and, when move is set, removes it. Returns
// nil when there is nothing at source.
func newBackup(ctx context.Context, fs filesystem.FileSystem, source string, move bool) (*backup, error) {
	ok, err := fs.Exists(ctx, source)
	if err != nil || !ok {
		return nil, err
	}

	dir, err := fs.TempDir(ctx, "backup")
	if err != nil {
		return nil, err
	}
	if err := fs.CopyTree(ctx, source, dir); err != nil {
		return nil, err
	}
	if move {
		if err := fs.RemoveTree(ctx, source, true); err != nil {
			return nil, err
		}
	}
	return &backup{fs: fs, source: source, dir: dir}, nil
}

func (b *backup) restore(ctx context.Context) error {
	if b == nil {
		return nil
	}
	if err := b.fs.RemoveTree(ctx, b.source, true); err != nil {
		return err
	}
	return b.fs.CopyTree(ctx, b.dir, b.source)
}

func (b *backup) cleanup(ctx context.Context) error {
	if b == nil {
		return nil
	}
	return b.fs.RemoveTree(ctx, b.dir, true)
}
