// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hacs

import (
	"archive/zip"
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/url"
	"github.com/hacs/hacs/version"
)

const (
	themeRepository = "owner/theme"
	configDir       = "/config"
	headCommit      = "0123456789abcdef0123456789abcdef01234567"
)

type mocks struct {
	client    *client.MockClient
	urlClient *url.MockClient
}

type fixture struct {
	hacs *HACS
	fs   afero.Fs
	out  *bytes.Buffer
}

func themeZip(t *testing.T) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	f, err := w.Create("theme-main/themes/theme.yaml")
	assert.NoError(t, err)
	_, err = f.Write([]byte("theme:\n  primary-color: red\n"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	return buf.Bytes()
}

func newFixture(t *testing.T, setup func(mocks)) fixture {
	ctrl := gomock.NewController(t)
	m := mocks{
		client:    client.NewMockClient(ctrl),
		urlClient: url.NewMockClient(ctrl),
	}
	if setup != nil {
		setup(m)
	}

	fs := afero.NewMemMapFs()
	out := &bytes.Buffer{}
	h, err := New(context.Background(), Config{
		Directory:    t.TempDir(),
		ConfigDir:    configDir,
		Host:         version.Host{HomeAssistant: "2024.1.0"},
		RequestDelay: time.Millisecond,
		Fs:           fs,
		Client:       m.client,
		UrlClient:    m.urlClient,
		DB:           memdb.New(),
		Out:          out,
		Logger:       zaptest.NewLogger(t),
	})
	assert.NoError(t, err)
	t.Cleanup(func() {
		_ = h.Close()
	})
	return fixture{hacs: h, fs: fs, out: out}
}

// theme serves a theme repository without releases.
func theme(t *testing.T, fs func() afero.Fs) func(mocks) {
	return func(m mocks) {
		m.client.EXPECT().FetchMetadata(gomock.Any(), themeRepository).Return(types.Metadata{
			ID:            1,
			FullName:      themeRepository,
			Description:   "A red theme",
			Topics:        []string{"theme"},
			DefaultBranch: "main",
		}, nil).AnyTimes()
		m.client.EXPECT().FetchReleases(gomock.Any(), themeRepository).Return(nil, client.ErrNotFound).AnyTimes()
		m.client.EXPECT().FetchTree(gomock.Any(), themeRepository, "main").Return([]types.TreeFile{
			{Filename: "themes", Type: types.TreeTypeTree},
			{Filename: "themes/theme.yaml", Type: types.TreeTypeBlob},
		}, nil).AnyTimes()
		m.client.EXPECT().LastCommit(gomock.Any(), themeRepository, "main").Return(headCommit, nil).AnyTimes()
		m.client.EXPECT().RateLimit(gomock.Any()).Return(types.RateLimit{Limit: 5000, Remaining: 5000}, nil).AnyTimes()
		m.urlClient.EXPECT().Download(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, path string) error {
				return afero.WriteFile(fs(), path, themeZip(t), 0o644)
			},
		).AnyTimes()
	}
}

func newThemeFixture(t *testing.T) fixture {
	var f fixture
	f = newFixture(t, theme(t, func() afero.Fs { return f.fs }))
	return f
}

func TestHACS_RegisterInstallUninstall(t *testing.T) {
	f := newThemeFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.hacs.Register(ctx, themeRepository, "theme", ""))
	r, err := f.hacs.registry.GetByFullName(themeRepository)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, headCommit, r.LastCommit)

	assert.NoError(t, f.hacs.Install(ctx, themeRepository, ""))
	assert.True(t, r.Installed)
	assert.Equal(t, headCommit, r.InstalledCommit)
	installed := filepath.Join(configDir, "themes", "theme", "theme.yaml")
	ok, err := afero.Exists(f.fs, installed)
	assert.NoError(t, err)
	assert.True(t, ok)

	f.out.Reset()
	assert.NoError(t, f.hacs.Install(ctx, themeRepository, ""))
	assert.Contains(t, f.out.String(), "Skipping")

	assert.NoError(t, f.hacs.Uninstall(ctx, themeRepository))
	assert.False(t, r.Installed)
	ok, err = afero.Exists(f.fs, installed)
	assert.NoError(t, err)
	assert.False(t, ok)

	f.out.Reset()
	assert.NoError(t, f.hacs.Uninstall(ctx, themeRepository))
	assert.Contains(t, f.out.String(), "not installed")
}

func TestHACS_RegisterTwice(t *testing.T) {
	f := newThemeFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.hacs.Register(ctx, themeRepository, "theme", ""))
	f.out.Reset()
	assert.NoError(t, f.hacs.Register(ctx, themeRepository, "theme", ""))
	assert.Contains(t, f.out.String(), "already tracked")
}

func TestHACS_RegisterUnknownCategory(t *testing.T) {
	f := newFixture(t, nil)

	assert.Error(t, f.hacs.Register(context.Background(), themeRepository, "wallpaper", ""))
	assert.Error(t, f.hacs.Register(context.Background(), "theme", "theme", ""))
	assert.False(t, f.hacs.registry.IsRegistered(themeRepository))
}

func TestHACS_RegisterRemoved(t *testing.T) {
	f := newFixture(t, nil)
	f.hacs.registry.MarkRemoved(types.Removal{Repository: themeRepository, Reason: "archived"})

	err := f.hacs.Register(context.Background(), themeRepository, "theme", "")
	assert.ErrorIs(t, err, ErrRemovedRepository)
	assert.Contains(t, err.Error(), "archived")
	assert.False(t, f.hacs.registry.IsRegistered(themeRepository))
}

func TestHACS_Remove(t *testing.T) {
	f := newThemeFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.hacs.Register(ctx, themeRepository, "theme", ""))
	assert.NoError(t, f.hacs.Install(ctx, themeRepository, ""))
	assert.NoError(t, f.hacs.Remove(ctx, themeRepository))

	assert.False(t, f.hacs.registry.IsRegistered(themeRepository))
	ok, err := afero.Exists(f.fs, filepath.Join(configDir, "themes", "theme"))
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, f.hacs.Remove(ctx, themeRepository), registry.ErrNotFound)
}

func TestHACS_List(t *testing.T) {
	f := newThemeFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.hacs.Register(ctx, themeRepository, "theme", ""))
	f.out.Reset()
	assert.NoError(t, f.hacs.List())

	assert.Contains(t, f.out.String(), "repository")
	assert.Contains(t, f.out.String(), themeRepository)
	assert.Contains(t, f.out.String(), "theme")
}

func TestHACS_UpdateAndValidate(t *testing.T) {
	f := newThemeFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.hacs.Register(ctx, themeRepository, "theme", ""))
	assert.NoError(t, f.hacs.Update(ctx, themeRepository))
	assert.NoError(t, f.hacs.Update(ctx, ""))

	f.out.Reset()
	assert.NoError(t, f.hacs.Validate(ctx, themeRepository))
	assert.Contains(t, f.out.String(), "passed validation")
	assert.NoError(t, f.hacs.Validate(ctx, ""))
}

func TestHACS_Unregistered(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	assert.ErrorIs(t, f.hacs.Install(ctx, themeRepository, ""), registry.ErrNotFound)
	assert.ErrorIs(t, f.hacs.Uninstall(ctx, themeRepository), registry.ErrNotFound)
	assert.ErrorIs(t, f.hacs.Update(ctx, themeRepository), registry.ErrNotFound)
	assert.ErrorIs(t, f.hacs.Validate(ctx, themeRepository), registry.ErrNotFound)
}

func TestHACS_Run(t *testing.T) {
	f := newFixture(t, func(m mocks) {
		m.client.EXPECT().FetchMetadata(gomock.Any(), constant.IntegrationFullName).Return(types.Metadata{}, client.ErrNotFound).AnyTimes()
		m.client.EXPECT().FetchFile(gomock.Any(), constant.DataRepository, constant.DataRepositoryRef, constant.RemovedFile).
			Return([]byte(`[{"repository": "owner/theme", "reason": "archived"}]`), nil)
	})
	f.hacs.metricsAddr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- f.hacs.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		_, ok := f.hacs.registry.Removal(themeRepository)
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
