// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package filesystem

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/spf13/afero"
	"golang.org/x/sync/semaphore"

	"github.com/hacs/hacs/constant"
)

var _ FileSystem = &Afero{}

// FileSystem is the blocking file work done while installing content.
type FileSystem interface {
	Exists(ctx context.Context, path string) (bool, error)
	// CopyTree copies src into dst, overwriting files that already exist.
	CopyTree(ctx context.Context, src string, dst string) error
	// RemoveTree deletes path recursively. A missing path is an error unless
	// missingOk is set.
	RemoveTree(ctx context.Context, path string, missingOk bool) error
	// ExtractZip unpacks archive into dst, dropping the first
	// stripComponents elements of every entry path.
	ExtractZip(ctx context.Context, archive string, dst string, stripComponents int) error
	WriteFile(ctx context.Context, path string, data []byte) error
	TempDir(ctx context.Context, prefix string) (string, error)
}

type Config struct {
	Fs afero.Fs
	// MaxBlocking bounds concurrent blocking calls, constant.MaxBlockingIO
	// when zero.
	MaxBlocking int64
}

func New(config Config) *Afero {
	limit := config.MaxBlocking
	if limit <= 0 {
		limit = constant.MaxBlockingIO
	}
	return &Afero{
		fs:   config.Fs,
		pool: semaphore.NewWeighted(limit),
	}
}

// Afero runs every operation on a bounded pool over an afero.Fs.
type Afero struct {
	fs   afero.Fs
	pool *semaphore.Weighted
}

func (a *Afero) run(ctx context.Context, f func() error) error {
	if err := a.pool.Acquire(ctx, 1); err != nil {
		return err
	}
	defer a.pool.Release(1)

	return f()
}

func (a *Afero) Exists(ctx context.Context, path string) (bool, error) {
	var ok bool
	err := a.run(ctx, func() error {
		var err error
		ok, err = afero.Exists(a.fs, path)
		return err
	})
	return ok, err
}

func (a *Afero) CopyTree(ctx context.Context, src string, dst string) error {
	return a.run(ctx, func() error {
		return afero.Walk(a.fs, src, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			rel, err := filepath.Rel(src, path)
			if err != nil {
				return err
			}
			target := filepath.Join(dst, rel)

			if info.IsDir() {
				return a.fs.MkdirAll(target, perms.ReadWriteExecute)
			}
			return a.copyFile(path, target)
		})
	})
}

func (a *Afero) copyFile(src string, dst string) error {
	in, err := a.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := a.fs.MkdirAll(filepath.Dir(dst), perms.ReadWriteExecute); err != nil {
		return err
	}
	out, err := a.fs.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perms.ReadWrite)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (a *Afero) RemoveTree(ctx context.Context, path string, missingOk bool) error {
	return a.run(ctx, func() error {
		ok, err := afero.Exists(a.fs, path)
		if err != nil {
			return err
		}
		if !ok {
			if missingOk {
				return nil
			}
			return fmt.Errorf("remove %s: %w", path, fs.ErrNotExist)
		}
		return a.fs.RemoveAll(path)
	})
}

func (a *Afero) ExtractZip(ctx context.Context, archive string, dst string, stripComponents int) error {
	return a.run(ctx, func() error {
		file, err := a.fs.Open(archive)
		if err != nil {
			return err
		}
		defer file.Close()

		info, err := file.Stat()
		if err != nil {
			return err
		}
		reader, err := zip.NewReader(file, info.Size())
		if err != nil {
			return err
		}

		for _, entry := range reader.File {
			if err := ctx.Err(); err != nil {
				return err
			}

			name, ok := strip(entry.Name, stripComponents)
			if !ok {
				continue
			}
			target := filepath.Join(dst, filepath.FromSlash(name))
			if !withinDir(dst, target) {
				return fmt.Errorf("illegal path %q in %s", entry.Name, archive)
			}

			if entry.FileInfo().IsDir() {
				if err := a.fs.MkdirAll(target, perms.ReadWriteExecute); err != nil {
					return err
				}
				continue
			}
			if err := a.extractFile(entry, target); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *Afero) extractFile(entry *zip.File, target string) error {
	in, err := entry.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	if err := a.fs.MkdirAll(filepath.Dir(target), perms.ReadWriteExecute); err != nil {
		return err
	}
	out, err := a.fs.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perms.ReadWrite)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (a *Afero) WriteFile(ctx context.Context, path string, data []byte) error {
	return a.run(ctx, func() error {
		if err := a.fs.MkdirAll(filepath.Dir(path), perms.ReadWriteExecute); err != nil {
			return err
		}
		return afero.WriteFile(a.fs, path, data, perms.ReadWrite)
	})
}

func (a *Afero) TempDir(ctx context.Context, prefix string) (string, error) {
	var dir string
	err := a.run(ctx, func() error {
		var err error
		dir, err = afero.TempDir(a.fs, "", prefix)
		return err
	})
	return dir, err
}

// strip drops the leading n elements of a slash separated archive path. The
// second return is false when nothing is left.
func strip(name string, n int) (string, bool) {
	name = strings.TrimPrefix(name, "/")
	for i := 0; i < n; i++ {
		_, rest, found := strings.Cut(name, "/")
		if !found {
			return "", false
		}
		name = rest
	}
	name = strings.TrimSuffix(name, "/")
	return name, name != ""
}

func withinDir(dir string, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsNotExist reports whether err is a missing path error.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
