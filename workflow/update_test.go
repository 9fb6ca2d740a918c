// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/storage"
	"github.com/hacs/hacs/types"
)

func TestApplyReleases(t *testing.T) {
	tests := []struct {
		name           string
		releases       []types.Release
		wantLast       string
		wantPrerelease string
		wantTags       []string
		wantDownloads  int
	}{
		{
			name: "no releases",
		},
		{
			name: "stable only",
			releases: []types.Release{
				{Tag: "1.1.0", Assets: []types.Asset{{Name: "a.zip", DownloadCount: 3}, {Name: "b.zip", DownloadCount: 4}}},
				{Tag: "1.0.0", Assets: []types.Asset{{Name: "a.zip", DownloadCount: 100}}},
			},
			wantLast:      "1.1.0",
			wantTags:      []string{"1.1.0", "1.0.0"},
			wantDownloads: 7,
		},
		{
			name: "newer prerelease",
			releases: []types.Release{
				{Tag: "1.2.0b1", Prerelease: true},
				{Tag: "1.1.0"},
			},
			wantLast:       "1.1.0",
			wantPrerelease: "1.2.0b1",
			wantTags:       []string{"1.2.0b1", "1.1.0"},
		},
		{
			name: "older prerelease is ignored",
			releases: []types.Release{
				{Tag: "1.1.0"},
				{Tag: "1.1.0b1", Prerelease: true},
			},
			wantLast: "1.1.0",
			wantTags: []string{"1.1.0", "1.1.0b1"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repository := &types.Repository{PublishedTags: []string{"stale"}, LastVersion: "0.1.0"}
			applyReleases(repository, test.releases)

			assert.Equal(t, test.wantLast, repository.LastVersion)
			assert.Equal(t, test.wantPrerelease, repository.Prerelease)
			assert.Equal(t, test.wantTags, repository.PublishedTags)
			assert.Equal(t, test.wantDownloads, repository.Downloads)
			assert.Equal(t, test.wantLast != "", repository.Releases)
		})
	}
}

func TestRefresh(t *testing.T) {
	errWrong := fmt.Errorf("something went wrong")
	tree := []types.TreeFile{{Filename: "hacs.json", Type: types.TreeTypeBlob}}

	type mocks struct {
		client  *client.MockClient
		handler *category.MockHandler
	}
	tests := []struct {
		name    string
		setup   func(mocks)
		wantErr assert.ErrorAssertionFunc
		check   func(*testing.T, *types.Repository)
	}{
		{
			name: "applies hacs.json",
			setup: func(mocks mocks) {
				mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil)
				mocks.client.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return([]types.Release{{Tag: "1.0.0"}}, nil)
				mocks.client.EXPECT().FetchTree(gomock.Any(), "owner/example", "1.0.0").Return(tree, nil)
				mocks.client.EXPECT().LastCommit(gomock.Any(), "owner/example", "main").Return("abc1234", nil)
				mocks.client.EXPECT().FetchFile(gomock.Any(), "owner/example", "1.0.0", "hacs.json").
					Return([]byte(`{"name": "Example", "render_readme": true, "homeassistant": "2024.1.0"}`), nil)
				mocks.handler.EXPECT().Refresh(gomock.Any(), gomock.Any(), []types.Release{{Tag: "1.0.0"}}).Return(nil)
			},
			wantErr: assert.NoError,
			check: func(t *testing.T, r *types.Repository) {
				assert.Equal(t, int64(42), r.ID)
				assert.Equal(t, "Example", r.DisplayName)
				assert.True(t, r.RenderReadme)
				assert.Equal(t, "2024.1.0", r.HomeAssistantMinVersion)
				assert.Equal(t, "1.0.0", r.LastVersion)
				assert.Equal(t, "abc1234", r.LastCommit)
				assert.Equal(t, tree, r.Tree)
				assert.False(t, r.LastFetched.IsZero())
			},
		},
		{
			name: "invalid hacs.json",
			setup: func(mocks mocks) {
				mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil)
				mocks.client.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return(nil, nil)
				mocks.client.EXPECT().FetchTree(gomock.Any(), "owner/example", "main").Return(tree, nil)
				mocks.client.EXPECT().LastCommit(gomock.Any(), "owner/example", "main").Return("abc1234", nil)
				mocks.client.EXPECT().FetchFile(gomock.Any(), "owner/example", "main", "hacs.json").Return([]byte(`{`), nil)
			},
			wantErr: assert.Error,
		},
		{
			name: "releases fail",
			setup: func(mocks mocks) {
				mocks.client.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil)
				mocks.client.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return(nil, errWrong)
			},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errWrong)
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mocks := mocks{
				client:  client.NewMockClient(ctrl),
				handler: category.NewMockHandler(ctrl),
			}
			test.setup(mocks)

			repository := types.NewRepository("owner/example", types.Integration)
			test.wantErr(t, Refresh(context.Background(), mocks.client, mocks.handler, repository))
			if test.check != nil {
				test.check(t, repository)
			}
		})
	}
}

func TestUpdateExecute(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := client.NewMockClient(ctrl)
	handler := category.NewMockHandler(ctrl)
	bus := event.NewMockBus(ctrl)

	c.EXPECT().FetchMetadata(gomock.Any(), "owner/example").Return(exampleMetadata, nil)
	c.EXPECT().FetchReleases(gomock.Any(), "owner/example").Return([]types.Release{{Tag: "1.1.0"}}, nil)
	c.EXPECT().FetchTree(gomock.Any(), "owner/example", "1.1.0").Return(nil, nil)
	c.EXPECT().LastCommit(gomock.Any(), "owner/example", "main").Return("def5678", nil)
	handler.EXPECT().Refresh(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	bus.EXPECT().Publish(gomock.Any(), constant.RepositoryTopic, map[string]any{
		"action":     event.ActionUpdate,
		"repository": "owner/example",
	})

	repositories := registry.New(registry.Config{Storage: storage.NewRepositories(memdb.New())})
	repository := &types.Repository{
		ID:               42,
		FullName:         "owner/example",
		Category:         types.Integration,
		DefaultBranch:    "main",
		Installed:        true,
		InstalledVersion: "1.0.0",
		LastVersion:      "1.0.0",
		Releases:         true,
	}

	update := NewUpdate(UpdateConfig{
		Repository: repository,
		Client:     c,
		Handler:    handler,
		Registry:   repositories,
		Bus:        bus,
	})

	assert.NoError(t, update.Execute(context.Background()))
	assert.Equal(t, StateDone, update.State())
	assert.Equal(t, "1.1.0", repository.LastVersion)

	stored, err := repositories.GetByFullName("owner/example")
	assert.NoError(t, err)
	assert.Same(t, repository, stored)
}
