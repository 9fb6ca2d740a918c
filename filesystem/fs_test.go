// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package filesystem

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func zipBytes(t *testing.T, files map[string]string) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, contents := range files {
		f, err := w.Create(name)
		assert.NoError(t, err)
		_, err = f.Write([]byte(contents))
		assert.NoError(t, err)
	}
	assert.NoError(t, w.Close())
	return buf.Bytes()
}

func TestAfero_Exists(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "config/file", nil, perms.ReadWrite))

	a := New(Config{Fs: fs})

	ok, err := a.Exists(ctx, "config/file")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Exists(ctx, "config/missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestAfero_RemoveTree(t *testing.T) {
	tests := []struct {
		name      string
		create    bool
		missingOk bool
		wantErr   assert.ErrorAssertionFunc
	}{
		{
			name:    "existing",
			create:  true,
			wantErr: assert.NoError,
		},
		{
			name:      "missing allowed",
			missingOk: true,
			wantErr:   assert.NoError,
		},
		{
			name: "missing not allowed",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.True(t, IsNotExist(err))
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()
			fs := afero.NewMemMapFs()
			if test.create {
				assert.NoError(t, afero.WriteFile(fs, "dir/sub/file", nil, perms.ReadWrite))
			}

			a := New(Config{Fs: fs})
			test.wantErr(t, a.RemoveTree(ctx, "dir", test.missingOk))

			ok, err := afero.Exists(fs, "dir")
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestAfero_CopyTree(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, "src/a.py", []byte("a"), perms.ReadWrite))
	assert.NoError(t, afero.WriteFile(fs, "src/sub/b.py", []byte("b"), perms.ReadWrite))
	assert.NoError(t, afero.WriteFile(fs, "dst/a.py", []byte("old"), perms.ReadWrite))

	a := New(Config{Fs: fs})
	assert.NoError(t, a.CopyTree(ctx, "src", "dst"))

	contents, err := afero.ReadFile(fs, "dst/a.py")
	assert.NoError(t, err)
	assert.Equal(t, "a", string(contents))

	contents, err = afero.ReadFile(fs, filepath.Join("dst", "sub", "b.py"))
	assert.NoError(t, err)
	assert.Equal(t, "b", string(contents))
}

func TestAfero_ExtractZip(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	archive := zipBytes(t, map[string]string{
		"repo-main/hacs.json":                             "{}",
		"repo-main/custom_components/example/__init__.py": "",
	})
	assert.NoError(t, afero.WriteFile(fs, "archive.zip", archive, perms.ReadWrite))

	a := New(Config{Fs: fs})
	assert.NoError(t, a.ExtractZip(ctx, "archive.zip", "out", 1))

	ok, err := afero.Exists(fs, filepath.Join("out", "hacs.json"))
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = afero.Exists(fs, filepath.Join("out", "custom_components", "example", "__init__.py"))
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestAfero_ExtractZipRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	archive := zipBytes(t, map[string]string{
		"../escape.txt": "nope",
	})
	assert.NoError(t, afero.WriteFile(fs, "archive.zip", archive, perms.ReadWrite))

	a := New(Config{Fs: fs})
	assert.Error(t, a.ExtractZip(ctx, "archive.zip", "out", 0))
}

func TestAfero_WriteFile(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	a := New(Config{Fs: fs})
	assert.NoError(t, a.WriteFile(ctx, "www/community/card/card.js", []byte("js")))

	contents, err := afero.ReadFile(fs, "www/community/card/card.js")
	assert.NoError(t, err)
	assert.Equal(t, "js", string(contents))
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		want   string
		wantOk bool
	}{
		{name: "repo-main/", n: 1, want: "", wantOk: false},
		{name: "repo-main/a/b.js", n: 1, want: "a/b.js", wantOk: true},
		{name: "a/b.js", n: 0, want: "a/b.js", wantOk: true},
		{name: "file", n: 1, want: "", wantOk: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := strip(test.name, test.n)
			assert.Equal(t, test.want, got)
			assert.Equal(t, test.wantOk, ok)
		})
	}
}
